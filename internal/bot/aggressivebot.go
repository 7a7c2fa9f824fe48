package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/stonefight/internal/card"
)

// AggressiveBot stacks power: attacks first, then attack buffs, then
// debuffs on the opponent.
type AggressiveBot struct {
	logger *log.Logger
}

// NewAggressiveBot creates a new AggressiveBot instance
func NewAggressiveBot(logger *log.Logger) *AggressiveBot {
	return &AggressiveBot{logger: logger}
}

func (a *AggressiveBot) Name() string { return Aggressive }

func (a *AggressiveBot) Decide(s Situation) Decision {
	d := decide(s, aggressiveScore, "aggressive-bot")
	a.logger.Debug("Aggressive decision", "pick", d.Pick, "play", d.Play)
	return d
}

func aggressiveScore(c card.Card, s Situation) float64 {
	switch c.Type {
	case card.Attack:
		return 10
	case card.BuffAttack:
		return 8
	case card.Special:
		if c.DefaultTarget == card.TargetOpponent {
			return 6
		}
		return 5
	case card.BuffDefense:
		return 2
	case card.Heal:
		return healValue(s) / 2
	}
	return 0
}
