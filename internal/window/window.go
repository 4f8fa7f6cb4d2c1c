// Package window runs the game in a desktop window using ebiten.
package window

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
	"github.com/tomz197/asteroidfield/internal/loop"
	"github.com/tomz197/asteroidfield/internal/loop/config"
)

const strokeWidth = 2

var (
	background = color.RGBA{A: 255}
	foreground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// bindings maps keyboard keys to game keys.
var bindings = []struct {
	key  ebiten.Key
	game input.Key
}{
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeySpace, input.KeySpace},
	{ebiten.KeyEscape, input.KeyQuit},
	{ebiten.KeyQ, input.KeyQuit},
}

// App adapts a loop.Game to ebiten's Update/Draw/Layout callbacks. The game
// draws into a display list during Update, which Draw replays onto the window.
type App struct {
	game   *loop.Game
	frame  draw.DisplayList
	clock  loop.Clock
	width  int
	height int
	err    error
}

// Ensure App satisfies ebiten.Game and input.Source.
var (
	_ ebiten.Game  = (*App)(nil)
	_ input.Source = (*App)(nil)
)

// NewApp wraps game for a window of the game's arena size.
func NewApp(game *loop.Game) *App {
	s := game.Settings()
	return &App{
		game: game,
		// ebiten paces Update itself; the clock only measures.
		clock:  loop.NewSleepClock(0),
		width:  int(s.Width),
		height: int(s.Height),
	}
}

// Poll reads the keyboard. ebiten reports real key state, so no hold timer is needed.
func (a *App) Poll() input.Input {
	var held [input.NumKeys]bool
	for _, b := range bindings {
		if ebiten.IsKeyPressed(b.key) {
			held[b.game] = true
		}
	}
	return input.Input{
		Quit:  held[input.KeyQuit],
		Left:  held[input.KeyLeft],
		Right: held[input.KeyRight],
		Up:    held[input.KeyUp],
		Down:  held[input.KeyDown],
		Space: held[input.KeySpace],
	}
}

// Update steps the game once per tick.
func (a *App) Update() error {
	phase := a.game.Step(a.clock.Tick(), a.Poll())
	if phase == loop.PhaseQuit {
		return ebiten.Termination
	}
	if err := a.game.Draw(&a.frame); err != nil {
		a.err = err
		return err
	}
	if phase != loop.PhaseRunning {
		return ebiten.Termination
	}
	return nil
}

// Draw replays the last frame onto the window.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	a.frame.Replay(&imageRenderer{dst: screen})
}

// Layout keeps the arena's logical size; ebiten scales it to the window.
func (a *App) Layout(int, int) (int, int) {
	return a.width, a.height
}

// Run opens a window and plays game until it ends or the window is closed.
func Run(game *loop.Game, title string) (loop.Result, error) {
	app := NewApp(game)

	ebiten.SetWindowSize(app.width, app.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return game.Result(), err
	}
	return game.Result(), app.err
}

// imageRenderer draws onto an ebiten image with vector strokes.
type imageRenderer struct {
	dst *ebiten.Image
}

func (r *imageRenderer) DrawCircle(center draw.Point, radius float64, filled bool) {
	if filled || radius < 1 {
		vector.DrawFilledCircle(r.dst, float32(center.X), float32(center.Y), float32(max(radius, 1)), foreground, true)
		return
	}
	vector.StrokeCircle(r.dst, float32(center.X), float32(center.Y), float32(radius), strokeWidth, foreground, true)
}

func (r *imageRenderer) DrawPolygon(points []draw.Point) {
	n := len(points)
	for i := 0; i < n; i++ {
		p, q := points[i], points[(i+1)%n]
		vector.StrokeLine(r.dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), strokeWidth, foreground, true)
	}
}

func (r *imageRenderer) DrawText(pos draw.Point, s string) {
	ebitenutil.DebugPrintAt(r.dst, s, int(pos.X), int(pos.Y))
}

func (r *imageRenderer) Clear() {
	r.dst.Fill(background)
}

func (r *imageRenderer) Present() error {
	return nil
}
