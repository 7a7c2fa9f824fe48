package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/stonefight/internal/history"
)

// HistoryCmd lists recorded fights and totals
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of recent fights to show"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Game.HistoryDB == "" {
		return fmt.Errorf("no history database configured")
	}

	ctx := context.Background()
	store, err := history.Open(cfg.Game.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	entries, err := store.Recent(ctx, c.Limit)
	if err != nil {
		return err
	}
	sum, err := store.Summary(ctx)
	if err != nil {
		return err
	}

	out := g.out()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("PLAYED", "RESULT", "ROUNDS", "STONE", "OPPONENT", "CURRENCY")
	for _, e := range entries {
		t.Row(
			e.PlayedAt.Local().Format("2006-01-02 15:04"),
			resultLabel(e),
			strconv.Itoa(e.Rounds),
			e.PlayerName,
			e.OpponentName,
			fmt.Sprintf("%+d", e.Currency),
		)
	}
	fmt.Fprintln(out, t.Render())

	fmt.Fprintf(out, "\n%d fights: %d wins, %d losses, %d ties (%.1f%% win rate)\n",
		sum.Fights, sum.Wins, sum.Losses, sum.Ties, sum.WinRate()*100)
	fmt.Fprintf(out, "Currency earned: %d  Stones found: %d  Stones lost: %d\n",
		sum.Currency, sum.StonesGained, sum.StonesLost)
	return nil
}

func resultLabel(e history.Entry) string {
	label := e.Winner
	switch {
	case e.StoneGained:
		label += " +stone"
	case e.StoneLost:
		label += " -stone"
	}
	return label
}
