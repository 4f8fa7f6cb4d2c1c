package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/asteroidfield/internal/config"
	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
	"github.com/tomz197/asteroidfield/internal/loop"
	gameconfig "github.com/tomz197/asteroidfield/internal/loop/config"
	"github.com/tomz197/asteroidfield/internal/tui"
)

func main() {
	renderer := flag.String("renderer", "ansi", "terminal backend: ansi or tcell")
	logPath := flag.String("log", "", "write logs to this file")
	debug := flag.Bool("debug", false, "enable debug logging")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	envFile := flag.String("env", ".env", "environment file to load")
	flag.Parse()

	if err := run(*renderer, *logPath, *debug, *seed, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(renderer, logPath string, debug bool, seed int64, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	settings, err := gameconfig.FromEnv()
	if err != nil {
		return err
	}
	if seed != 0 {
		settings.Seed = seed
	}

	logger, closeLog, err := config.OpenLogFile(logPath, "asteroids", debug)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := loop.NewGame(settings, loop.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var res loop.Result
	switch renderer {
	case "ansi":
		res, err = runANSI(ctx, game, settings)
	case "tcell":
		res, err = runTcell(ctx, game, settings)
	default:
		return fmt.Errorf("unknown renderer %q", renderer)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("session ended", "phase", res.Phase, "score", res.Score, "level", res.Level, "frames", res.Frames)
	if res.Phase == loop.PhaseGameOver {
		fmt.Printf("Game over! Final score: %d\n", res.Score)
	}
	return nil
}

// runANSI plays in raw mode on stdin/stdout with the half-block renderer.
func runANSI(ctx context.Context, game *loop.Game, settings gameconfig.Settings) (loop.Result, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return loop.Result{}, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	stream := input.StartStream(bufio.NewReader(os.Stdin))
	r := draw.NewTerminalRenderer(os.Stdout, draw.DefaultTermSizeFunc, settings.Width, settings.Height)

	draw.HideCursor(os.Stdout)
	defer draw.ResetScreen(os.Stdout)

	return loop.Run(ctx, game, stream, r, loop.NewSleepClock(gameconfig.TargetFrameTime))
}

// runTcell plays through a tcell screen.
func runTcell(ctx context.Context, game *loop.Game, settings gameconfig.Settings) (loop.Result, error) {
	screen, err := tui.Open(settings.Width, settings.Height)
	if err != nil {
		return loop.Result{}, fmt.Errorf("open screen: %w", err)
	}
	defer screen.Close()
	screen.Start()

	return loop.Run(ctx, game, screen, screen, loop.NewSleepClock(gameconfig.TargetFrameTime))
}
