package loop

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
	"github.com/tomz197/asteroidfield/internal/loop/config"
	"github.com/tomz197/asteroidfield/internal/object"
	"github.com/tomz197/asteroidfield/internal/physics"
	"github.com/tomz197/asteroidfield/internal/world"
)

// Phase is the game's state machine position.
type Phase int

const (
	PhaseRunning  Phase = iota // Active gameplay
	PhaseGameOver              // Lives exhausted
	PhaseQuit                  // Player quit; score discarded
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	case PhaseQuit:
		return "quit"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is the per-game score keeping.
type Session struct {
	Score int
	Lives int
	Level int
	Phase Phase
}

// Result is what a finished game reports.
type Result struct {
	Score  int
	Level  int
	Phase  Phase
	Frames int
}

// HUD layout in arena units.
var (
	scorePos = physics.Vector{X: 10, Y: 10}
	livesPos = physics.Vector{X: 10, Y: 50}
	levelPos = physics.Vector{X: 10, Y: 90}
)

// Debris bursts when the ship is hit.
const (
	shipDebrisCount    = 12
	shipDebrisSpeed    = 80.0
	shipDebrisLifetime = 0.8
)

// Game is one single-player session: the arena, the ship, the asteroid field
// and the score keeping. It is not safe for concurrent use.
type Game struct {
	settings config.Settings
	screen   object.Screen
	arena    *world.Arena
	ship     *object.Ship
	field    *object.Field
	session  Session
	rng      *rand.Rand
	logger   *log.Logger
	frames   int

	// Collision scratch, reused every frame
	grid      *physics.SpatialGrid
	asteroids []*object.Asteroid
	shots     []*object.Shot

	hud [3]*object.Label
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for game events.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithRand sets the random source used for spawning and splitting.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// NewGame creates a game with the ship at rest in the arena center.
func NewGame(settings config.Settings, opts ...Option) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		settings: settings,
		screen:   settings.Screen(),
		arena:    world.New(),
		session: Session{
			Lives: settings.Lives,
			Level: 1,
			Phase: PhaseRunning,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.rng == nil {
		seed := settings.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}

	margin := settings.AsteroidMaxRadius() * 2
	g.grid = physics.NewSpatialGrid(
		physics.Vector{X: -margin, Y: -margin},
		physics.Vector{X: g.screen.Width + margin, Y: g.screen.Height + margin},
		settings.GridCellSize(),
	)

	g.ship = object.NewShip(g.screen.Center(), settings.ShipSpec())
	g.arena.Add(g.ship)
	g.field = object.NewField(g.screen, settings.FieldSpec())

	g.hud = [3]*object.Label{
		object.NewLabel(scorePos, ""),
		object.NewLabel(livesPos, ""),
		object.NewLabel(levelPos, ""),
	}

	g.logger.Debug("game started", "lives", g.session.Lives, "width", g.screen.Width, "height", g.screen.Height)
	return g, nil
}

// Session returns a copy of the score keeping.
func (g *Game) Session() Session {
	return g.session
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.session.Phase
}

// Result returns the game's outcome so far.
func (g *Game) Result() Result {
	return Result{
		Score:  g.session.Score,
		Level:  g.session.Level,
		Phase:  g.session.Phase,
		Frames: g.frames,
	}
}

// Ship returns the player's ship.
func (g *Game) Ship() *object.Ship {
	return g.ship
}

// Arena returns the entity store.
func (g *Game) Arena() *world.Arena {
	return g.arena
}

// Field returns the asteroid spawner.
func (g *Game) Field() *object.Field {
	return g.field
}

// Settings returns the parameters the game runs with.
func (g *Game) Settings() config.Settings {
	return g.settings
}

// Step advances the game by one frame of length dt and returns the phase
// afterward. It does nothing once the game has ended.
func (g *Game) Step(dt time.Duration, in input.Input) Phase {
	if g.session.Phase != PhaseRunning {
		return g.session.Phase
	}
	if in.QuitRequested() {
		g.session.Phase = PhaseQuit
		g.logger.Info("quit", "score", g.session.Score, "level", g.session.Level)
		return g.session.Phase
	}

	g.frames++
	ctx := object.UpdateContext{
		Delta:   dt,
		Input:   in,
		Screen:  g.screen,
		Spawner: g.arena,
		Rand:    g.rng,
	}

	g.updateObjects(ctx)

	if a := g.field.Update(ctx); a != nil {
		g.logger.Debug("asteroid spawned", "radius", a.Radius, "x", a.Position.X, "y", a.Position.Y)
	}
	g.arena.Flush()

	g.resolveCollisions()
	g.arena.Flush()

	if g.session.Phase == PhaseRunning {
		g.checkLevelUp()
	}

	g.arena.Compact()
	return g.session.Phase
}

// updateObjects updates every updatable object and removes any that request
// removal. Objects spawned during the pass join after it.
func (g *Game) updateObjects(ctx object.UpdateContext) {
	g.arena.Each(world.Updatable, func(obj object.Object) bool {
		if obj.Update(ctx) {
			g.arena.Despawn(obj)
		}
		return true
	})
	g.arena.Flush()
}

// checkLevelUp raises the level by one once the score reaches the threshold
// and restarts the spawn interval.
func (g *Game) checkLevelUp() {
	if g.session.Score < g.session.Level*g.settings.LevelUpScore {
		return
	}
	g.session.Level++
	g.field.ResetTimer()
	g.logger.Info("level up", "level", g.session.Level, "score", g.session.Score,
		"asteroids", g.arena.Count(world.Asteroid))
}

// Draw renders the current frame: every drawable object, then the HUD.
func (g *Game) Draw(r draw.Renderer) error {
	r.Clear()

	g.arena.Each(world.Drawable, func(obj object.Object) bool {
		obj.Draw(r)
		return true
	})

	g.hud[0].Text = fmt.Sprintf("Score: %d", g.session.Score)
	g.hud[1].Text = fmt.Sprintf("Lives: %d", g.session.Lives)
	g.hud[2].Text = fmt.Sprintf("Level: %d", g.session.Level)
	for _, l := range g.hud {
		l.Draw(r)
	}

	return r.Present()
}
