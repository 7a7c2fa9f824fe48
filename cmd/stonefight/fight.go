package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/stonefight/internal/bot"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/game"
	"github.com/lox/stonefight/internal/randutil"
)

var (
	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	tieStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	headStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true)
)

// FightCmd auto-plays fights against the ladder and saves the result
type FightCmd struct {
	Strategy  string `short:"s" default:"aggressive" enum:"${strategies}" help:"Bot strategy (${strategies})"`
	Count     int    `short:"n" default:"1" help:"Number of fights to play"`
	MaxRounds int    `default:"500" help:"Concede a fight after this many rounds"`
	Verbose   bool   `help:"Print every round of each fight"`
}

func (c *FightCmd) Run(g *Globals) error {
	s, err := g.open(context.Background(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(s.logger)
	defer cancel()

	seed := randutil.Mix(int64(s.cfg.GameConfig().Seed), int64(len(s.game.Stones())), int64(s.game.Currency()))
	strategy, err := bot.New(c.Strategy, randutil.New(int64(seed)), s.logger)
	if err != nil {
		return err
	}

	out := g.out()
	for i := 0; i < c.Count; i++ {
		st, log, err := c.playOne(ctx, s, strategy)
		if errors.Is(err, game.ErrNoEquippedStone) {
			fmt.Fprintln(out, lossStyle.Render("No stones left to fight with"))
			break
		}
		if err != nil {
			if isCancelled(err) {
				break
			}
			return err
		}
		printFight(out, st, log, c.Verbose)
	}

	fmt.Fprintf(out, "\nCurrency: %d  Stones: %d\n", s.game.Currency(), len(s.game.Stones()))
	return s.save()
}

func (c *FightCmd) playOne(ctx context.Context, s *session, strategy bot.Strategy) (combat.Settlement, []string, error) {
	if _, ok := s.game.EquippedStone(); !ok {
		if q, ok := s.game.EquipStrongest(); ok {
			s.logger.Info("Equipped strongest remaining stone", "stone", q.DisplayName())
		}
	}
	fight, err := s.game.StartFight()
	if err != nil {
		return combat.Settlement{}, nil, err
	}
	if err := bot.PlayFight(ctx, fight, strategy, s.game, c.MaxRounds); err != nil {
		return combat.Settlement{}, nil, err
	}
	log := fight.Log()
	st, err := s.game.EndFight(ctx)
	return st, log, err
}

func printFight(w io.Writer, st combat.Settlement, log []string, verbose bool) {
	fmt.Fprintln(w, headStyle.Render(fmt.Sprintf(" %s vs %s ",
		st.PlayerStone.DisplayName(), st.OpponentStone.DisplayName())))
	if verbose {
		for _, line := range log {
			fmt.Fprintln(w, dimStyle.Render("  "+line))
		}
	}

	style := tieStyle
	switch st.Winner {
	case combat.WinnerPlayer:
		style = winStyle
	case combat.WinnerOpponent:
		style = lossStyle
	}
	fmt.Fprintln(w, style.Render(st.Summary()))
}
