package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/stonefight/internal/simulator"
)

// SimulateCmd plays many independent games with a bot
type SimulateCmd struct {
	Games         int    `short:"g" default:"1000" help:"Number of games to simulate"`
	FightsPerGame int    `default:"10" help:"Fights played in each game"`
	Strategy      string `short:"s" default:"aggressive" enum:"${strategies}" help:"Bot strategy (${strategies})"`
	Workers       int    `short:"w" default:"0" help:"Concurrent workers (0 = number of CPUs)"`
	SimSeed       *int64 `name:"sim-seed" help:"Seed of the first game (defaults to the game seed)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := g.setupLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext(logger)
	defer cancel()

	gameCfg := cfg.GameConfig()
	seed := int64(gameCfg.Seed)
	if c.SimSeed != nil {
		seed = *c.SimSeed
	}

	logger.Info("Starting simulation",
		"games", c.Games,
		"fightsPerGame", c.FightsPerGame,
		"strategy", c.Strategy,
		"seed", seed)

	start := time.Now()
	stats, err := simulator.Run(ctx, simulator.Config{
		Games:         c.Games,
		FightsPerGame: c.FightsPerGame,
		Strategy:      c.Strategy,
		Seed:          seed,
		Workers:       c.Workers,
		Game:          gameCfg,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	out := g.out()
	simulator.PrintSummary(out, stats, c.Strategy)
	fmt.Fprintf(out, "\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
