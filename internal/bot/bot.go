// Package bot provides card-play strategies for auto-played fights.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/combat"
)

// Situation is everything a strategy sees when deciding a round.
type Situation struct {
	Round    int
	Choices  []card.Card
	Hand     []card.Card
	Player   combat.Participant
	Opponent combat.Participant
}

// HealthFraction returns the player's health as a fraction of maximum.
func (s Situation) HealthFraction() float64 {
	if s.Player.MaxHealth <= 0 {
		return 0
	}
	return s.Player.CurrentHealth / s.Player.MaxHealth
}

// Decision is one round's plan: the card to take from the offer and the card
// to play afterwards. Empty ids mean skip.
type Decision struct {
	Pick      string
	Play      string
	Target    card.Target
	Reasoning string
}

// Strategy decides how to play a round.
type Strategy interface {
	Name() string
	Decide(s Situation) Decision
}

// Strategy names accepted by New.
const (
	Random     = "random"
	Aggressive = "aggressive"
	Defensive  = "defensive"
)

// Names lists the available strategies.
func Names() []string {
	return []string{Random, Aggressive, Defensive}
}

// New creates the named strategy.
func New(name string, rng *rand.Rand, logger *log.Logger) (Strategy, error) {
	switch name {
	case Random:
		return NewRandomBot(rng, logger), nil
	case Aggressive:
		return NewAggressiveBot(logger), nil
	case Defensive:
		return NewDefensiveBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// scorer ranks a card for the situation; higher is better.
type scorer func(c card.Card, s Situation) float64

// decide picks the best offered card by score, then plays the best card in
// the resulting hand on its default target.
func decide(s Situation, score scorer, name string) Decision {
	var d Decision
	hand := append([]card.Card(nil), s.Hand...)
	if best, ok := bestCard(s.Choices, s, score); ok {
		d.Pick = best.ID
		hand = append(hand, best)
	}
	if best, ok := bestCard(hand, s, score); ok && score(best, s) > 0 {
		d.Play = best.ID
		d.Target = best.DefaultTarget
		d.Reasoning = fmt.Sprintf("%s: playing %s on %s", name, best.Name, best.DefaultTarget)
	} else {
		d.Reasoning = fmt.Sprintf("%s: holding", name)
	}
	return d
}

func bestCard(cards []card.Card, s Situation, score scorer) (card.Card, bool) {
	if len(cards) == 0 {
		return card.Card{}, false
	}
	ranked := append([]card.Card(nil), cards...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i], s) > score(ranked[j], s)
	})
	return ranked[0], true
}

// healValue is worthless at full health and grows as health drops.
func healValue(s Situation) float64 {
	return (1 - s.HealthFraction()) * 10
}
