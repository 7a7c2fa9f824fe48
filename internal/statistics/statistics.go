package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/stonefight/internal/combat"
)

// FightResult is the outcome of one settled fight
type FightResult struct {
	Seed        int64         // Game seed the fight was played under (for replay)
	Winner      combat.Winner // Who won
	Rounds      int           // Rounds the fight lasted
	Currency    int           // Currency paid out
	StoneGained bool          // Loot roll succeeded
	StoneLost   bool          // Equipped stone was destroyed
}

// FromSettlement converts a settlement into a result.
func FromSettlement(seed int64, st combat.Settlement) FightResult {
	return FightResult{
		Seed:        seed,
		Winner:      st.Winner,
		Rounds:      st.Rounds,
		Currency:    st.Currency,
		StoneGained: st.StoneGained != nil,
		StoneLost:   st.StoneLost != nil,
	}
}

// Statistics aggregates fight results across simulated games
type Statistics struct {
	Fights int
	Wins   int
	Losses int
	Ties   int

	SumRounds  float64
	SumRounds2 float64   // Sum of squares for variance calculation
	Rounds     []float64 // Every fight length, for median/percentiles

	Currency     int
	StonesGained int
	StonesLost   int

	Games      int // Games played to completion
	Eliminated int // Games that ended with no stone left to fight with
}

// Add incorporates a fight result
func (s *Statistics) Add(r FightResult) {
	s.Fights++
	switch r.Winner {
	case combat.WinnerPlayer:
		s.Wins++
	case combat.WinnerOpponent:
		s.Losses++
	default:
		s.Ties++
	}

	rounds := float64(r.Rounds)
	s.SumRounds += rounds
	s.SumRounds2 += rounds * rounds
	s.Rounds = append(s.Rounds, rounds)

	s.Currency += r.Currency
	if r.StoneGained {
		s.StonesGained++
	}
	if r.StoneLost {
		s.StonesLost++
	}
}

// AddGame records that one game finished.
func (s *Statistics) AddGame(eliminated bool) {
	s.Games++
	if eliminated {
		s.Eliminated++
	}
}

// Merge folds other into s. Used to combine per-worker statistics.
func (s *Statistics) Merge(other *Statistics) {
	s.Fights += other.Fights
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.SumRounds += other.SumRounds
	s.SumRounds2 += other.SumRounds2
	s.Rounds = append(s.Rounds, other.Rounds...)
	s.Currency += other.Currency
	s.StonesGained += other.StonesGained
	s.StonesLost += other.StonesLost
	s.Games += other.Games
	s.Eliminated += other.Eliminated
}

// WinRate returns wins per fight
func (s *Statistics) WinRate() float64 {
	if s.Fights == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Fights)
}

// MeanCurrency returns the currency earned per fight
func (s *Statistics) MeanCurrency() float64 {
	if s.Fights == 0 {
		return 0
	}
	return float64(s.Currency) / float64(s.Fights)
}

// MeanRounds returns the arithmetic mean fight length
func (s *Statistics) MeanRounds() float64 {
	if s.Fights == 0 {
		return 0
	}
	return s.SumRounds / float64(s.Fights)
}

// Variance returns the sample variance of fight lengths
func (s *Statistics) Variance() float64 {
	if s.Fights < 2 {
		return 0
	}
	mean := s.MeanRounds()
	return (s.SumRounds2 - float64(s.Fights)*mean*mean) / float64(s.Fights-1)
}

// StdDev returns the sample standard deviation of fight lengths
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean fight length
func (s *Statistics) StdError() float64 {
	if s.Fights == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Fights))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean fight length
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.MeanRounds()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median fight length
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the fight length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Rounds))
	copy(sorted, s.Rounds)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses+s.Ties != s.Fights {
		return fmt.Errorf("outcomes (%d+%d+%d) do not match fights (%d)", s.Wins, s.Losses, s.Ties, s.Fights)
	}
	if len(s.Rounds) != s.Fights {
		return fmt.Errorf("rounds array length (%d) does not match fights count (%d)", len(s.Rounds), s.Fights)
	}
	if s.StonesGained > s.Wins {
		return fmt.Errorf("stones gained (%d) exceeds wins (%d)", s.StonesGained, s.Wins)
	}
	if s.StonesLost > s.Losses {
		return fmt.Errorf("stones lost (%d) exceeds losses (%d)", s.StonesLost, s.Losses)
	}
	if s.Eliminated > s.Games {
		return fmt.Errorf("eliminated games (%d) exceeds games (%d)", s.Eliminated, s.Games)
	}
	return nil
}
