package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tomz197/asteroidfield/internal/config"
	"github.com/tomz197/asteroidfield/internal/loop"
	gameconfig "github.com/tomz197/asteroidfield/internal/loop/config"
	"github.com/tomz197/asteroidfield/internal/window"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	envFile := flag.String("env", ".env", "environment file to load")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "asteroids", *debug)

	if err := config.LoadDotEnv(*envFile); err != nil {
		logger.Fatal("load environment", "err", err)
	}
	settings, err := gameconfig.FromEnv()
	if err != nil {
		logger.Fatal("invalid settings", "err", err)
	}
	if *seed != 0 {
		settings.Seed = *seed
	}

	game, err := loop.NewGame(settings, loop.WithLogger(logger))
	if err != nil {
		logger.Fatal("create game", "err", err)
	}

	res, err := window.Run(game, "Asteroids")
	if err != nil {
		logger.Fatal("window", "err", err)
	}

	logger.Info("session ended", "phase", res.Phase, "score", res.Score, "level", res.Level)
	if res.Phase == loop.PhaseGameOver {
		fmt.Printf("Game over! Final score: %d\n", res.Score)
	}
}
