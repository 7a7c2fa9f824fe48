package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/stone"
)

// StoneCmd prints the stone derived from a seed
type StoneCmd struct {
	Seed string `arg:"" help:"Stone seed, a number or any word"`
}

func (c *StoneCmd) Run(g *Globals) error {
	q := stone.Derive(stone.Seed(randutil.ParseSeed(c.Seed)))
	printStone(g.out(), q)
	return nil
}

func printStone(w io.Writer, q stone.Qualities) {
	fmt.Fprintln(w, headStyle.Render(" "+q.DisplayName()+" "))
	fmt.Fprintf(w, "Seed:     %d\n", q.Seed)
	fmt.Fprintf(w, "Tier:     %s\n", q.Tier())
	fmt.Fprintf(w, "Color:    %s\n", q.Color)
	fmt.Fprintf(w, "Shape:    %s\n", q.Shape)
	fmt.Fprintf(w, "Weight:   %d\n", q.Weight)
	fmt.Fprintf(w, "Rarity:   %d\n", q.Rarity)
	fmt.Fprintf(w, "Hardness: %d\n", q.Hardness)
	fmt.Fprintf(w, "Magic:    %d\n", q.Magic)
	fmt.Fprintf(w, "Power:    %.1f\n", stone.Power(q))
}

// OpponentsCmd lists the next opponents on the ladder
type OpponentsCmd struct {
	Count int `short:"n" default:"10" help:"Number of opponents to list"`
}

func (c *OpponentsCmd) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", c.Count)
	}
	return nil
}

func (c *OpponentsCmd) Run(g *Globals) error {
	s, err := g.open(context.Background(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	out := g.out()
	ladder := s.game.Ladder()
	fmt.Fprintf(out, "Ladder position %d of %d (cycle %d)\n", ladder.Cursor()+1, ladder.Size(), ladder.Cycles()+1)
	for i, q := range s.game.UpcomingOpponents(c.Count) {
		fmt.Fprintf(out, "%3d. %s\n", i+1, q)
	}
	return nil
}
