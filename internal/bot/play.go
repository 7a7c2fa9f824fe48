package bot

import (
	"context"
	"fmt"

	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/combat"
)

// DefaultMaxRounds bounds an auto-played fight; past it the bot concedes.
const DefaultMaxRounds = 500

// HandSource reports the player's current hand.
type HandSource interface {
	Hand() []card.Card
}

// PlayRound plays one full round of s using strategy.
func PlayRound(s *combat.Session, strategy Strategy, hand HandSource) (combat.Resolution, error) {
	rs, err := s.StartNewRound()
	if err != nil {
		return combat.Resolution{}, err
	}

	d := strategy.Decide(Situation{
		Round:    rs.Round,
		Choices:  rs.Choices,
		Hand:     hand.Hand(),
		Player:   s.Player(),
		Opponent: s.Opponent(),
	})
	if d.Pick != "" {
		if _, err := s.SelectCard(d.Pick); err != nil {
			return combat.Resolution{}, fmt.Errorf("%s select %s: %w", strategy.Name(), d.Pick, err)
		}
	}
	if d.Play != "" {
		if _, err := s.PlayCard(d.Play, d.Target); err != nil {
			return combat.Resolution{}, fmt.Errorf("%s play %s: %w", strategy.Name(), d.Play, err)
		}
	}
	return s.ResolveRound()
}

// PlayFight plays rounds until the fight is over. It concedes after
// maxRounds rounds and stops early if ctx is cancelled.
func PlayFight(ctx context.Context, s *combat.Session, strategy Strategy, hand HandSource, maxRounds int) error {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	for !s.IsOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Round() >= maxRounds {
			return s.Concede()
		}
		if _, err := PlayRound(s, strategy, hand); err != nil {
			return err
		}
	}
	return nil
}
