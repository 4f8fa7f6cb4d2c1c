package loop

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
	"github.com/tomz197/asteroidfield/internal/loop/config"
	"github.com/tomz197/asteroidfield/internal/object"
	"github.com/tomz197/asteroidfield/internal/physics"
	"github.com/tomz197/asteroidfield/internal/world"
)

const frame = time.Second / 60

// recordRenderer records the calls of one or more frames.
type recordRenderer struct {
	clears   int
	presents int
	circles  int
	polygons int
	texts    []string
	err      error
}

func (r *recordRenderer) DrawCircle(draw.Point, float64, bool) { r.circles++ }
func (r *recordRenderer) DrawPolygon([]draw.Point)             { r.polygons++ }
func (r *recordRenderer) DrawText(_ draw.Point, s string)      { r.texts = append(r.texts, s) }
func (r *recordRenderer) Clear() {
	r.clears++
	r.circles, r.polygons, r.texts = 0, 0, nil
}
func (r *recordRenderer) Present() error {
	r.presents++
	return r.err
}

// quietSettings returns settings where the field never spawns on its own.
func quietSettings() config.Settings {
	s := config.Default()
	s.AsteroidSpawnRate = 1e6
	return s
}

func newTestGame(t *testing.T, s config.Settings) *Game {
	t.Helper()
	g, err := NewGame(s, WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func addAsteroid(g *Game, pos physics.Vector, radius float64) *object.Asteroid {
	a := object.NewAsteroid(pos, physics.Zero, radius, g.Field().AsteroidSpec())
	g.Arena().Add(a)
	return a
}

func addShot(g *Game, pos physics.Vector) *object.Shot {
	s := object.NewShot(pos, physics.Zero, config.ShotRadius, 10)
	g.Arena().Add(s)
	return s
}

func asteroidRadii(g *Game) []float64 {
	var radii []float64
	g.Arena().Each(world.Asteroid, func(obj object.Object) bool {
		radii = append(radii, obj.(*object.Asteroid).Radius)
		return true
	})
	return radii
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, config.Default())
	s := g.Session()
	if s.Score != 0 || s.Lives != 3 || s.Level != 1 || s.Phase != PhaseRunning {
		t.Errorf("initial session = %+v", s)
	}
	if g.Ship().Position != (physics.Vector{X: 640, Y: 360}) {
		t.Errorf("ship at %v, want arena center", g.Ship().Position)
	}
	if !g.Arena().Alive(g.Ship()) {
		t.Error("ship not in the arena")
	}
	if g.Arena().Count(world.Asteroid) != 0 || g.Arena().Count(world.Shot) != 0 {
		t.Error("new game should start without asteroids or shots")
	}
}

func TestNewGameInvalidSettings(t *testing.T) {
	s := config.Default()
	s.Lives = 0
	if _, err := NewGame(s); err == nil {
		t.Error("NewGame accepted zero lives")
	}
}

func TestShipHitLosesLife(t *testing.T) {
	g := newTestGame(t, quietSettings())
	center := g.Ship().Position
	g.Ship().Position = center.Add(physics.Vector{X: 5})
	g.Ship().Velocity = physics.Vector{X: 30, Y: -10}
	addAsteroid(g, center, 20)

	if phase := g.Step(frame, input.Input{}); phase != PhaseRunning {
		t.Fatalf("phase = %v, want running", phase)
	}
	if lives := g.Session().Lives; lives != 2 {
		t.Errorf("lives = %d, want 2", lives)
	}
	if g.Ship().Position != center {
		t.Errorf("ship at %v, want %v", g.Ship().Position, center)
	}
	if g.Ship().Velocity != physics.Zero {
		t.Errorf("ship velocity = %v, want zero", g.Ship().Velocity)
	}
}

func TestShipHitOncePerFrame(t *testing.T) {
	g := newTestGame(t, quietSettings())
	center := g.Ship().Position
	addAsteroid(g, center.Add(physics.Vector{X: 10}), 20)
	addAsteroid(g, center.Add(physics.Vector{X: -10}), 40)

	g.Step(frame, input.Input{})
	if lives := g.Session().Lives; lives != 2 {
		t.Errorf("lives = %d, want 2", lives)
	}
	if n := g.Arena().Count(world.Asteroid); n != 2 {
		t.Errorf("asteroids = %d, want 2: ship hits do not destroy asteroids", n)
	}
}

func TestShipHitLastLife(t *testing.T) {
	s := quietSettings()
	s.Lives = 1
	g := newTestGame(t, s)
	addAsteroid(g, g.Ship().Position, 20)

	if phase := g.Step(frame, input.Input{}); phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", phase)
	}
	if lives := g.Session().Lives; lives != 0 {
		t.Errorf("lives = %d, want 0", lives)
	}

	// Terminal: further steps change nothing.
	before := g.Result()
	if phase := g.Step(frame, input.Input{Up: true}); phase != PhaseGameOver {
		t.Errorf("phase after game over = %v", phase)
	}
	if g.Result() != before {
		t.Errorf("result changed after game over: %+v -> %+v", before, g.Result())
	}
}

func TestShotSplitsAsteroid(t *testing.T) {
	g := newTestGame(t, quietSettings())
	pos := physics.Vector{X: 300, Y: 300}
	a := addAsteroid(g, pos, 40)
	shot := addShot(g, pos)

	g.Step(frame, input.Input{})

	if score := g.Session().Score; score != 20 {
		t.Errorf("score = %d, want 20", score)
	}
	if g.Arena().Alive(a) {
		t.Error("split asteroid still alive")
	}
	if g.Arena().Alive(shot) {
		t.Error("shot still alive after hitting")
	}
	radii := asteroidRadii(g)
	if len(radii) != 2 || radii[0] != 20 || radii[1] != 20 {
		t.Errorf("asteroid radii after split = %v, want [20 20]", radii)
	}
}

func TestLargeShotRadiusHitsDistantAsteroid(t *testing.T) {
	s := quietSettings()
	s.ShotRadius = 300
	g := newTestGame(t, s)
	a := addAsteroid(g, physics.Vector{X: 200, Y: 200}, 20)
	shot := object.NewShot(physics.Vector{X: 500, Y: 200}, physics.Zero, s.ShotRadius, 10)
	g.Arena().Add(shot)

	if !shot.CollidesWith(a) {
		t.Fatal("shot and asteroid do not overlap")
	}

	g.Step(frame, input.Input{})

	if g.Arena().Alive(a) {
		t.Error("asteroid survived an overlapping shot")
	}
	if score := g.Session().Score; score != 50 {
		t.Errorf("score = %d, want 50", score)
	}
}

func TestSmallestAsteroidIsDestroyed(t *testing.T) {
	g := newTestGame(t, quietSettings())
	pos := physics.Vector{X: 300, Y: 300}
	addAsteroid(g, pos, 20)
	addShot(g, pos)

	g.Step(frame, input.Input{})

	if score := g.Session().Score; score != 50 {
		t.Errorf("score = %d, want 50", score)
	}
	if n := g.Arena().Count(world.Asteroid); n != 0 {
		t.Errorf("asteroids = %d, want 0", n)
	}
}

func TestUnknownRadiusScoresNothing(t *testing.T) {
	g := newTestGame(t, quietSettings())
	pos := physics.Vector{X: 300, Y: 300}
	addAsteroid(g, pos, 30)
	addShot(g, pos)

	g.Step(frame, input.Input{})

	if score := g.Session().Score; score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if radii := asteroidRadii(g); len(radii) != 2 || radii[0] != 10 {
		t.Errorf("radii = %v, want two of 10", radii)
	}
}

func TestOneShotPerAsteroid(t *testing.T) {
	g := newTestGame(t, quietSettings())
	pos := physics.Vector{X: 300, Y: 300}
	addAsteroid(g, pos, 60)
	first := addShot(g, pos.Add(physics.Vector{X: 10}))
	second := addShot(g, pos)

	g.Step(frame, input.Input{})

	if g.Arena().Alive(first) {
		t.Error("earliest shot should be consumed")
	}
	if !g.Arena().Alive(second) {
		t.Error("second shot should survive")
	}
	if score := g.Session().Score; score != 10 {
		t.Errorf("score = %d, want 10", score)
	}
}

func TestFragmentsCheckedNextFrame(t *testing.T) {
	g := newTestGame(t, quietSettings())
	pos := physics.Vector{X: 300, Y: 300}
	addAsteroid(g, pos, 40)
	addShot(g, pos)
	spare := addShot(g, pos)

	g.Step(frame, input.Input{})
	if score := g.Session().Score; score != 20 {
		t.Fatalf("score after first frame = %d, want 20", score)
	}
	if !g.Arena().Alive(spare) {
		t.Fatal("fragments were checked in the frame they were created")
	}

	g.Step(frame, input.Input{})
	if score := g.Session().Score; score != 70 {
		t.Errorf("score after second frame = %d, want 70", score)
	}
	if g.Arena().Alive(spare) {
		t.Error("spare shot should hit a fragment next frame")
	}
	if n := g.Arena().Count(world.Asteroid); n != 1 {
		t.Errorf("asteroids = %d, want 1", n)
	}
}

func TestShipHitDoesNotStopShots(t *testing.T) {
	g := newTestGame(t, quietSettings())
	center := g.Ship().Position
	addAsteroid(g, center, 20)
	far := physics.Vector{X: 200, Y: 200}
	addAsteroid(g, far, 20)
	addShot(g, far)

	g.Step(frame, input.Input{})

	if lives := g.Session().Lives; lives != 2 {
		t.Errorf("lives = %d, want 2", lives)
	}
	if score := g.Session().Score; score != 50 {
		t.Errorf("score = %d, want 50", score)
	}
}

func TestLevelUp(t *testing.T) {
	s := quietSettings()
	s.LevelUpScore = 20
	g := newTestGame(t, s)
	g.Field().Timer = 0.5

	pos := physics.Vector{X: 300, Y: 300}
	addAsteroid(g, pos, 40)
	addShot(g, pos)

	g.Step(frame, input.Input{})

	if level := g.Session().Level; level != 2 {
		t.Errorf("level = %d, want 2", level)
	}
	if g.Field().Timer != 0 {
		t.Errorf("spawn timer = %f, want 0", g.Field().Timer)
	}

	// 20 < 2*20: no further level.
	g.Step(frame, input.Input{})
	if level := g.Session().Level; level != 2 {
		t.Errorf("level = %d, want 2", level)
	}
}

func TestLevelUpOneAtATime(t *testing.T) {
	s := quietSettings()
	s.LevelUpScore = 10
	g := newTestGame(t, s)

	pos := physics.Vector{X: 300, Y: 300}
	addAsteroid(g, pos, 20) // 50 points, enough for several levels
	addShot(g, pos)

	g.Step(frame, input.Input{})
	if level := g.Session().Level; level != 2 {
		t.Errorf("level = %d, want 2", level)
	}
	g.Step(frame, input.Input{})
	if level := g.Session().Level; level != 3 {
		t.Errorf("level = %d, want 3", level)
	}
}

func TestQuitStopsImmediately(t *testing.T) {
	g := newTestGame(t, quietSettings())
	start := g.Ship().Position

	if phase := g.Step(frame, input.Input{Quit: true, Up: true}); phase != PhaseQuit {
		t.Fatalf("phase = %v, want quit", phase)
	}
	if g.Ship().Position != start {
		t.Error("ship moved on the quit frame")
	}
	if g.Result().Frames != 0 {
		t.Errorf("frames = %d, want 0", g.Result().Frames)
	}
}

func TestFiringSpawnsShot(t *testing.T) {
	g := newTestGame(t, quietSettings())

	g.Step(frame, input.Input{Space: true})
	if n := g.Arena().Count(world.Shot); n != 1 {
		t.Fatalf("shots = %d, want 1", n)
	}
	g.Step(frame, input.Input{Space: true})
	if n := g.Arena().Count(world.Shot); n != 1 {
		t.Errorf("shots during cooldown = %d, want 1", n)
	}
}

func TestFieldSpawnsDuringStep(t *testing.T) {
	g := newTestGame(t, config.Default())
	for i := 0; i < 60; i++ {
		g.Step(frame, input.Input{})
	}
	if n := g.Arena().Count(world.Asteroid); n != 1 {
		t.Errorf("asteroids after one second = %d, want 1", n)
	}
}

func TestDrawFrame(t *testing.T) {
	g := newTestGame(t, quietSettings())
	addAsteroid(g, physics.Vector{X: 100, Y: 100}, 40)
	r := &recordRenderer{}

	if err := g.Draw(r); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if r.clears != 1 || r.presents != 1 {
		t.Errorf("clears=%d presents=%d, want 1 each", r.clears, r.presents)
	}
	if r.polygons != 1 || r.circles != 1 {
		t.Errorf("polygons=%d circles=%d, want ship and asteroid", r.polygons, r.circles)
	}
	want := []string{"Score: 0", "Lives: 3", "Level: 1"}
	if strings.Join(r.texts, "|") != strings.Join(want, "|") {
		t.Errorf("HUD = %q, want %q", r.texts, want)
	}
}

func TestLongRunInvariants(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := config.Default()
		s.AsteroidSpawnRate = 0.1
		s.Lives = 1000
		g, err := NewGame(s, WithRand(rand.New(rand.NewSource(seed))))
		if err != nil {
			t.Fatal(err)
		}

		in := input.Input{Space: true, Right: true}
		prevLevel := 1
		for i := 0; i < 6000 && g.Phase() == PhaseRunning; i++ {
			g.Step(frame, in)

			sess := g.Session()
			if sess.Score < 0 || sess.Level < prevLevel {
				t.Fatalf("seed %d frame %d: bad session %+v", seed, i, sess)
			}
			prevLevel = sess.Level
			for _, r := range asteroidRadii(g) {
				if r < s.AsteroidMinRadius {
					t.Fatalf("seed %d: asteroid radius %f below minimum", seed, r)
				}
			}
		}
		// 1000 spawns without culling; culled asteroids keep the field bounded.
		if n := g.Arena().Count(world.Asteroid); n > 600 {
			t.Errorf("seed %d: %d asteroids alive", seed, n)
		}
		if n := g.Arena().Count(world.Shot); n > 50 {
			t.Errorf("seed %d: %d shots alive", seed, n)
		}
		if g.Arena().Len() != g.Arena().Count(world.None) {
			t.Errorf("seed %d: despawned entries left after compaction", seed)
		}
	}
}

func TestLoggerReceivesEvents(t *testing.T) {
	var buf bytes.Buffer
	s := quietSettings()
	s.Lives = 2
	g, err := NewGame(s, WithLogger(log.New(&buf)), WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatal(err)
	}
	addAsteroid(g, g.Ship().Position, 60)

	g.Step(frame, input.Input{})
	g.Step(frame, input.Input{})

	out := buf.String()
	if !strings.Contains(out, "life lost") || !strings.Contains(out, "game over") {
		t.Errorf("log output missing events:\n%s", out)
	}
}
