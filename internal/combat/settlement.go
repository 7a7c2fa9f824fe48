package combat

import (
	"fmt"

	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/stone"
)

// Settlement is what a finished fight paid out or took away.
type Settlement struct {
	SessionID     string           `json:"sessionId"`
	Winner        Winner           `json:"winner"`
	Rounds        int              `json:"rounds"`
	PlayerStone   stone.Qualities  `json:"playerStone"`
	OpponentStone stone.Qualities  `json:"opponentStone"`
	Currency      int              `json:"currency"`
	StoneGained   *stone.Qualities `json:"stoneGained,omitempty"`
	StoneLost     *stone.Qualities `json:"stoneLost,omitempty"`
}

// Summary returns a one-line, human readable outcome.
func (st Settlement) Summary() string {
	switch st.Winner {
	case WinnerPlayer:
		s := fmt.Sprintf("Victory after %d rounds: +%d currency", st.Rounds, st.Currency)
		if st.StoneGained != nil {
			s += fmt.Sprintf(", found %s", st.StoneGained.DisplayName())
		}
		return s
	case WinnerOpponent:
		s := fmt.Sprintf("Defeat after %d rounds", st.Rounds)
		if st.StoneLost != nil {
			s += fmt.Sprintf(", %s shattered", st.StoneLost.DisplayName())
		}
		return s
	case WinnerTie:
		return fmt.Sprintf("Tie after %d rounds", st.Rounds)
	default:
		return "No result"
	}
}

// EndFight settles a finished fight against the inventory and spends the
// session. It may be called exactly once, after the fight is over.
func (s *Session) EndFight() (Settlement, error) {
	switch s.phase {
	case PhaseSettled:
		return Settlement{}, ErrSessionEnded
	case PhaseOver:
	default:
		return Settlement{}, ErrFightNotOver
	}

	winner := s.winner
	if winner == WinnerNone {
		winner = decideWinner(s.player.state, s.opponent.state)
	}

	st := Settlement{
		SessionID:     s.id,
		Winner:        winner,
		Rounds:        s.round,
		PlayerStone:   s.player.state.Stone,
		OpponentStone: s.opponent.state.Stone,
	}

	prng := randutil.NewMulberry32(s.rewardSeed())
	inv := s.deps.Inventory

	switch winner {
	case WinnerPlayer:
		st.Currency = s.rules.WinReward
		if inv != nil && st.Currency != 0 {
			inv.AddCurrency(st.Currency)
		}
		if prng.Float64() < s.rules.LootChance {
			loot := stone.Mint(prng, s.clock)
			st.StoneGained = &loot
			if inv != nil {
				inv.AddStone(loot)
			}
		}
	case WinnerOpponent:
		if prng.Float64() < s.rules.DestroyChance && inv != nil {
			if equipped, ok := inv.EquippedStone(); ok {
				if err := inv.RemoveStone(equipped.Seed); err != nil {
					s.logger.Warn("Failed to remove lost stone", "stone", equipped.Seed, "error", err)
				} else {
					st.StoneLost = &equipped
				}
			}
		}
	}

	s.phase = PhaseSettled
	s.choices = nil
	s.appendLog(st.Summary())
	s.logger.Info("Fight settled",
		"winner", string(winner),
		"rounds", st.Rounds,
		"currency", st.Currency,
		"stoneGained", st.StoneGained != nil,
		"stoneLost", st.StoneLost != nil)
	s.events.Publish(FightEndedEvent{SessionID: s.id, Settlement: st, timestamp: s.clock.Now()})
	return st, nil
}

func (s *Session) rewardSeed() int32 {
	parts := []int64{
		int64(s.gameSeed),
		int64(s.round),
		int64(s.player.state.Stone.Seed),
		int64(s.opponent.state.Stone.Seed),
	}
	if s.rules.TimeSaltedRewards {
		parts = append(parts, s.clock.Now().UnixNano())
	}
	return randutil.Mix(parts...)
}
