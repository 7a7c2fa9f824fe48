package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/stonefight/internal/config"
	"github.com/lox/stonefight/internal/game"
	"github.com/lox/stonefight/internal/history"
	"github.com/muesli/termenv"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config        string `help:"HCL config file" default:"stonefight.hcl" type:"path"`
	Seed          string `help:"Game seed, a number or any word (overrides config)"`
	OpponentsSeed string `help:"Opponents seed, a number or any word (overrides config)"`
	SaveFile      string `help:"Save file (overrides config)" type:"path"`
	HistoryDB     string `name:"history-db" help:"Fight history database (overrides config)" type:"path"`
	Debug         bool   `help:"Enable debug logging"`
	LogFile       string `help:"Write logs to this file instead of stderr" type:"path"`
	NoColor       bool   `help:"Disable colored output"`

	Stdout io.Writer `kong:"-"`
}

func (g *Globals) out() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// loadConfig reads the config file and applies flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Seed != "" {
		cfg.Game.Seed = g.Seed
	}
	if g.OpponentsSeed != "" {
		cfg.Game.OpponentsSeed = g.OpponentsSeed
	}
	if g.SaveFile != "" {
		cfg.Game.SaveFile = g.SaveFile
	}
	if g.HistoryDB != "" {
		cfg.Game.HistoryDB = g.HistoryDB
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger builds the logger. Without a log file, logs go to fallback.
// The returned func closes the log file.
func (g *Globals) setupLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	w, closer := fallback, func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, func() { _ = f.Close() }
	}

	level := cfg.LogLevel()
	if g.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger, closer, nil
}

// session is what most commands need: config, logger, game and history.
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	game    *game.Game
	history *history.Store
	closers []func()
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// save writes the game to the configured save file.
func (s *session) save() error {
	if s.cfg.Game.SaveFile == "" {
		return nil
	}
	return s.game.Save(s.cfg.Game.SaveFile)
}

// open loads config, logger, the history ledger and the saved game.
func (g *Globals) open(ctx context.Context, logOut io.Writer) (*session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := g.setupLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, closers: []func(){closeLog}}

	opts := []game.Option{game.WithLogger(logger)}
	if cfg.Game.HistoryDB != "" {
		store, err := history.Open(cfg.Game.HistoryDB)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = store.Close() })
		if err := store.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		s.history = store
		opts = append(opts, game.WithRecorder(store))
	}

	path := cfg.Game.SaveFile
	if path == "" {
		s.game, err = game.New(cfg.GameConfig(), opts...)
	} else {
		s.game, err = game.LoadOrNew(path, cfg.GameConfig(), opts...)
	}
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
