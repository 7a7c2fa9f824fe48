package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/stonefight/internal/card"
)

// lowHealth is the health fraction below which heals come first.
const lowHealth = 0.5

// DefensiveBot heals when hurt and otherwise raises its guard.
type DefensiveBot struct {
	logger *log.Logger
}

// NewDefensiveBot creates a new DefensiveBot instance
func NewDefensiveBot(logger *log.Logger) *DefensiveBot {
	return &DefensiveBot{logger: logger}
}

func (b *DefensiveBot) Name() string { return Defensive }

func (b *DefensiveBot) Decide(s Situation) Decision {
	d := decide(s, defensiveScore, "defensive-bot")
	b.logger.Debug("Defensive decision", "pick", d.Pick, "play", d.Play, "health", s.Player.CurrentHealth)
	return d
}

func defensiveScore(c card.Card, s Situation) float64 {
	switch c.Type {
	case card.Heal:
		if s.HealthFraction() < lowHealth {
			return 20
		}
		return healValue(s)
	case card.BuffDefense:
		return 8
	case card.Special:
		return 6
	case card.BuffAttack:
		return 4
	case card.Attack:
		return 3
	}
	return 0
}
