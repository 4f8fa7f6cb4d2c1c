// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	env "github.com/tomz197/asteroidfield/internal/config"
	"github.com/tomz197/asteroidfield/internal/object"
)

// Arena size in logical units. Renderers scale to fit.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Player
const (
	PlayerRadius        = 20
	PlayerTurnSpeed     = 300 // Degrees per second
	PlayerSpeed         = 200 // Units per second
	PlayerShootSpeed    = 500 // Units per second
	PlayerShootCooldown = 0.3 // Seconds
	InitialLives        = 3
)

// Shots
const (
	ShotRadius = 5
)

// Asteroids
const (
	AsteroidMinRadius = 20
	AsteroidKinds     = 3
	AsteroidMaxRadius = AsteroidMinRadius * AsteroidKinds
	AsteroidSpawnRate = 0.8 // Seconds between spawns
)

// Progression
const (
	LevelUpScore = 200
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// ScoreTable maps an asteroid radius to the points for shooting it.
// Radii missing from the table score nothing.
var ScoreTable = map[float64]int{
	AsteroidMaxRadius: 10,
	2 * AsteroidMinRadius: 20,
	AsteroidMinRadius: 50,
}

// Environment variables read by FromEnv.
const (
	EnvLives        = "ASTEROIDS_LIVES"
	EnvSpawnRate    = "ASTEROIDS_SPAWN_RATE"
	EnvLevelUpScore = "ASTEROIDS_LEVEL_UP_SCORE"
	EnvSeed         = "ASTEROIDS_SEED"
)

// ErrInvalid is returned for settings outside their allowed range.
var ErrInvalid = errors.New("invalid setting")

// Settings is the set of parameters a game session runs with.
type Settings struct {
	Width  float64
	Height float64

	PlayerRadius        float64
	PlayerTurnSpeed     float64
	PlayerSpeed         float64
	PlayerShootSpeed    float64
	PlayerShootCooldown float64
	Lives               int

	ShotRadius float64

	AsteroidMinRadius float64
	AsteroidKinds     int
	AsteroidSpawnRate float64

	ScoreTable   map[float64]int
	LevelUpScore int

	Seed int64 // 0 picks a time-based seed
}

// Default returns the standard settings.
func Default() Settings {
	table := make(map[float64]int, len(ScoreTable))
	for r, pts := range ScoreTable {
		table[r] = pts
	}
	return Settings{
		Width:               ScreenWidth,
		Height:              ScreenHeight,
		PlayerRadius:        PlayerRadius,
		PlayerTurnSpeed:     PlayerTurnSpeed,
		PlayerSpeed:         PlayerSpeed,
		PlayerShootSpeed:    PlayerShootSpeed,
		PlayerShootCooldown: PlayerShootCooldown,
		Lives:               InitialLives,
		ShotRadius:          ShotRadius,
		AsteroidMinRadius:   AsteroidMinRadius,
		AsteroidKinds:       AsteroidKinds,
		AsteroidSpawnRate:   AsteroidSpawnRate,
		ScoreTable:          table,
		LevelUpScore:        LevelUpScore,
	}
}

// FromEnv returns Default overridden by the ASTEROIDS_* environment variables.
func FromEnv() (Settings, error) {
	s := Default()

	var err error
	if s.Lives, err = env.GetEnvInt(EnvLives, s.Lives); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.AsteroidSpawnRate, err = env.GetEnvFloat(EnvSpawnRate, s.AsteroidSpawnRate); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.LevelUpScore, err = env.GetEnvInt(EnvLevelUpScore, s.LevelUpScore); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	seed, err := env.GetEnvInt(EnvSeed, 0)
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	s.Seed = int64(seed)

	return s, s.Validate()
}

// Validate checks that every setting is in range.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: screen %vx%v", ErrInvalid, s.Width, s.Height)
	case s.Lives < 1:
		return fmt.Errorf("%w: lives %d", ErrInvalid, s.Lives)
	case s.PlayerRadius <= 0 || s.ShotRadius <= 0 || s.AsteroidMinRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalid)
	case s.PlayerShootSpeed <= 0:
		return fmt.Errorf("%w: shoot speed %v", ErrInvalid, s.PlayerShootSpeed)
	case s.PlayerShootCooldown < 0:
		return fmt.Errorf("%w: shoot cooldown %v", ErrInvalid, s.PlayerShootCooldown)
	case s.AsteroidKinds < 1:
		return fmt.Errorf("%w: asteroid kinds %d", ErrInvalid, s.AsteroidKinds)
	case s.AsteroidSpawnRate <= 0:
		return fmt.Errorf("%w: spawn rate %v", ErrInvalid, s.AsteroidSpawnRate)
	case s.LevelUpScore < 1:
		return fmt.Errorf("%w: level-up score %d", ErrInvalid, s.LevelUpScore)
	}
	return nil
}

// Screen returns the arena bounds.
func (s Settings) Screen() object.Screen {
	return object.Screen{Width: s.Width, Height: s.Height}
}

// AsteroidMaxRadius returns the radius of the largest asteroid kind.
func (s Settings) AsteroidMaxRadius() float64 {
	return s.AsteroidMinRadius * float64(s.AsteroidKinds)
}

// ShotLifetime returns how long a shot lives: long enough to cross the arena
// diagonal, plus a second.
func (s Settings) ShotLifetime() float64 {
	return s.Screen().Diagonal()/s.PlayerShootSpeed + 1
}

// ShipSpec returns the player ship parameters.
func (s Settings) ShipSpec() object.ShipSpec {
	return object.ShipSpec{
		Radius:        s.PlayerRadius,
		Speed:         s.PlayerSpeed,
		TurnSpeed:     s.PlayerTurnSpeed,
		ShotSpeed:     s.PlayerShootSpeed,
		ShotRadius:    s.ShotRadius,
		ShotLifetime:  s.ShotLifetime(),
		ShootCooldown: s.PlayerShootCooldown,
	}
}

// FieldSpec returns the asteroid field parameters.
func (s Settings) FieldSpec() object.FieldSpec {
	return object.FieldSpec{
		MinRadius: s.AsteroidMinRadius,
		MaxRadius: s.AsteroidMaxRadius(),
		Kinds:     s.AsteroidKinds,
		SpawnRate: s.AsteroidSpawnRate,
	}
}

// Score returns the points for an asteroid of the given radius.
func (s Settings) Score(radius float64) int {
	return s.ScoreTable[radius]
}

// GridCellSize returns the broad-phase cell size: at least the largest sum of
// radii of any shot-asteroid pair, and never below two asteroid radii.
func (s Settings) GridCellSize() float64 {
	return max(2*s.AsteroidMaxRadius(), s.AsteroidMaxRadius()+s.ShotRadius)
}
