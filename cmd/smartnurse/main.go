// Command smartnurse is a terminal chat client for the Smart Diagnosis
// triage service.
//
// Usage:
//
//	smartnurse [flags]
//
// Flags:
//
//	-screen string    Screen preset: smartdiag, medschool, ajuda, sintomas (default "smartdiag")
//	-endpoint string  Triage service base URL (overrides config)
//	-config string    Path to YAML config file
//	-list-screens     Print the available screen presets and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jpalves/smartnurse"
	bt "github.com/jpalves/smartnurse/bubbletea"
	"github.com/jpalves/smartnurse/config"
	"github.com/jpalves/smartnurse/triage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "smartnurse: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse flags.
	var (
		screenName  = flag.String("screen", "smartdiag", "Screen preset")
		endpoint    = flag.String("endpoint", "", "Triage service base URL (overrides config)")
		configPath  = flag.String("config", "", "Path to YAML config file")
		listScreens = flag.Bool("list-screens", false, "Print the available screen presets and exit")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load config.
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if *listScreens {
		fmt.Println(strings.Join(cfg.ScreenNames(), "\n"))
		return nil
	}

	screen, err := cfg.Screen(*screenName)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	// Build the triage client. Direct-mode screens never call it, but the
	// controller still uses it for the startup probe when present.
	baseURL := cfg.Service.BaseURL
	if *endpoint != "" {
		baseURL = *endpoint
	}
	var client smartnurse.TriageClient
	if screen.Mode == string(smartnurse.ModeTriage) {
		client = triage.New(triage.WithBaseURL(baseURL))
	}

	ctrl := smartnurse.NewController(screen.SessionConfig(), client)
	defer ctrl.Close()

	logger.Info().
		Str("screen", *screenName).
		Str("mode", screen.Mode).
		Str("endpoint", baseURL).
		Msg("session started")

	theme := smartnurse.DefaultTheme()
	tuiModel := bt.New(ctrl, theme, bt.Config{
		Title:       screen.Title,
		Placeholder: screen.Placeholder,
	})

	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	logger.Info().Msg("session ended")
	return nil
}

// newLogger builds the session logger. The TUI owns the terminal, so logs go
// to the configured file or nowhere.
func newLogger(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var w io.Writer = io.Discard
	closeLog := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, closeLog, nil
}
