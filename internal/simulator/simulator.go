package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/stonefight/internal/bot"
	"github.com/lox/stonefight/internal/game"
	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games         int
	FightsPerGame int
	Strategy      string
	Seed          int64
	Workers       int
	Game          game.Config
	Logger        *log.Logger
}

// Simulator plays many independent games with a bot strategy
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.FightsPerGame <= 0 {
		config.FightsPerGame = 10
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the combined statistics. Game i is seeded
// with Seed+i, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if _, err := bot.New(s.config.Strategy, randutil.New(0), s.config.Logger); err != nil {
		return nil, err
	}

	results := make([]*statistics.Statistics, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			stats, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

// playGame plays one game until its fights run out or it has no stone left.
func (s *Simulator) playGame(ctx context.Context, seed int64) (*statistics.Statistics, error) {
	logger := s.config.Logger.With("seed", seed)

	cfg := s.config.Game
	cfg.Seed = int32(seed)
	cfg.OpponentsSeed = randutil.Mix(seed, int64(cfg.OpponentsSeed))

	g, err := game.New(cfg, game.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	strategy, err := bot.New(s.config.Strategy, randutil.New(seed), logger)
	if err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	eliminated := false
	for fight := 0; fight < s.config.FightsPerGame; fight++ {
		if _, ok := g.EquippedStone(); !ok {
			if _, ok := g.EquipStrongest(); !ok {
				eliminated = true
				break
			}
		}
		session, err := g.StartFight()
		if err != nil {
			return nil, err
		}
		if err := bot.PlayFight(ctx, session, strategy, g, bot.DefaultMaxRounds); err != nil {
			return nil, err
		}
		st, err := g.EndFight(ctx)
		if err != nil {
			return nil, err
		}
		stats.Add(statistics.FromSettlement(seed, st))
	}
	if len(g.Stones()) == 0 {
		eliminated = true
	}
	stats.AddGame(eliminated)
	logger.Debug("Game finished", "fights", stats.Fights, "wins", stats.Wins, "currency", g.Currency())
	return stats, nil
}

// Run is a convenience function for running a simulation
func Run(ctx context.Context, config Config) (*statistics.Statistics, error) {
	return New(config).Run(ctx)
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, strategy string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS for %s strategy ===\n", strategy)
	fmt.Fprintf(w, "Games played: %d (%d eliminated)\n", stats.Games, stats.Eliminated)
	fmt.Fprintf(w, "Fights: %d  Wins: %d  Losses: %d  Ties: %d\n", stats.Fights, stats.Wins, stats.Losses, stats.Ties)
	fmt.Fprintf(w, "Win rate: %.1f%%\n", stats.WinRate()*100)

	fmt.Fprintf(w, "\n=== FIGHT LENGTH ===\n")
	fmt.Fprintf(w, "Mean: %.2f rounds (median %.1f, std dev %.2f)\n", stats.MeanRounds(), stats.Median(), stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f] rounds\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== REWARDS ===\n")
	fmt.Fprintf(w, "Currency: %d total, %.2f per fight\n", stats.Currency, stats.MeanCurrency())
	fmt.Fprintf(w, "Stones gained: %d  Stones lost: %d\n", stats.StonesGained, stats.StonesLost)
}
