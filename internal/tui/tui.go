// Package tui renders the game and reads keys through a tcell screen.
package tui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
)

type text struct {
	pos draw.Point
	s   string
}

// Screen is a draw.Renderer and input.Source backed by a tcell.Screen.
// Shapes are rasterized onto a half-block canvas sized to the screen.
type Screen struct {
	screen   tcell.Screen
	canvas   *draw.Canvas
	arenaW   float64
	arenaH   float64
	texts    []text
	style    tcell.Style
	hudStyle tcell.Style

	mu      sync.Mutex // Guards tracker and quit
	tracker *input.Tracker
	quit    bool
	now     func() time.Time
}

// Ensure Screen satisfies the game collaborator interfaces.
var (
	_ draw.Renderer = (*Screen)(nil)
	_ input.Source  = (*Screen)(nil)
)

// Open creates and initializes the terminal screen.
func Open(arenaW, arenaH float64) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen, arenaW, arenaH), nil
}

// New wraps an initialized tcell screen for an arenaW x arenaH arena.
func New(screen tcell.Screen, arenaW, arenaH float64) *Screen {
	s := &Screen{
		screen:   screen,
		arenaW:   arenaW,
		arenaH:   arenaH,
		style:    tcell.StyleDefault.Foreground(tcell.ColorWhite),
		hudStyle: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		tracker:  input.NewTracker(),
		now:      time.Now,
	}
	screen.HideCursor()
	s.canvas = draw.NewCanvas(arenaW, arenaH, s.viewport())
	return s
}

// Start reads screen events on a goroutine until the screen is closed.
func (s *Screen) Start() {
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			s.handleEvent(ev)
		}
	}()
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

func (s *Screen) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := keyFor(ev)
		if !ok {
			return
		}
		s.mu.Lock()
		if k == input.KeyQuit {
			s.quit = true
		}
		s.tracker.Press(k, s.now())
		s.mu.Unlock()
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

// keyFor maps a tcell key event to a game key.
func keyFor(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyQuit, true
	case tcell.KeyRune:
		return input.KeyForRune(ev.Rune())
	default:
		return 0, false
	}
}

// Poll returns the held-key state. Quit stays set once requested.
func (s *Screen) Poll() input.Input {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.tracker.Snapshot(s.now())
	in.Quit = in.Quit || s.quit
	return in
}

// viewport fits the arena to the current screen size.
func (s *Screen) viewport() draw.Viewport {
	w, h := s.screen.Size()
	return draw.Fit(max(w, 1), max(h, 1), s.arenaW, s.arenaH)
}

// Clear picks up screen resizes and starts a new frame.
func (s *Screen) Clear() {
	s.canvas.SetViewport(s.viewport())
	s.canvas.Clear()
	s.texts = s.texts[:0]
}

// DrawCircle draws a circle onto the canvas.
func (s *Screen) DrawCircle(center draw.Point, radius float64, filled bool) {
	s.canvas.DrawCircle(center, radius, filled)
}

// DrawPolygon draws a polygon outline onto the canvas.
func (s *Screen) DrawPolygon(points []draw.Point) {
	s.canvas.DrawPolygon(points, false)
}

// DrawText queues text drawn over the canvas.
func (s *Screen) DrawText(pos draw.Point, str string) {
	s.texts = append(s.texts, text{pos: pos, s: str})
}

// Present copies the canvas and text to the screen and shows it.
func (s *Screen) Present() error {
	s.screen.Clear()
	view := s.canvas.Viewport()

	s.canvas.Cells(func(col, row int, ch rune) {
		s.screen.SetContent(view.Col+col, view.Row+row, ch, nil, s.style)
	})

	for _, t := range s.texts {
		col, row := s.canvas.Cell(t.pos)
		x, y := view.Col+col, view.Row+row
		for i, r := range []rune(t.s) {
			s.screen.SetContent(x+i, y, r, nil, s.hudStyle)
		}
	}

	s.screen.Show()
	return nil
}
