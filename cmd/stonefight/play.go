package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/stonefight/internal/tui"
)

// PlayCmd opens the interactive fight screen
type PlayCmd struct{}

func (c *PlayCmd) Run(g *Globals) error {
	// The TUI owns the terminal; logs only go to a file when one is set.
	s, err := g.open(context.Background(), io.Discard)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(s.logger)
	defer cancel()

	err = tui.Run(ctx, s.game,
		tui.WithLogger(s.logger),
		tui.WithSavePath(s.cfg.Game.SaveFile))
	if err != nil && !isCancelled(err) && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	// Interrupted sessions never reach the TUI's own quit handler.
	return s.save()
}
