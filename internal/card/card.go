// Package card defines the fight cards, their effects and the deck, hand and
// discard piles a player draws from.
package card

import (
	"fmt"
	"strings"

	"github.com/lox/stonefight/internal/effect"
)

// Type classifies a card.
type Type string

const (
	BuffAttack  Type = "BUFF_ATTACK"
	BuffDefense Type = "BUFF_DEFENSE"
	Heal        Type = "HEAL"
	Attack      Type = "ATTACK"
	Special     Type = "SPECIAL"
)

// Target selects which combatant a card is played on.
type Target int

const (
	TargetPlayer Target = iota
	TargetOpponent
)

// String returns the string representation of a target
func (t Target) String() string {
	switch t {
	case TargetPlayer:
		return "player"
	case TargetOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// ParseTarget accepts "player"/"self"/"me" and "opponent"/"foe"/"enemy".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "self", "me":
		return TargetPlayer, nil
	case "opponent", "foe", "enemy":
		return TargetOpponent, nil
	default:
		return 0, fmt.Errorf("unknown target %q", s)
	}
}

// EffectFunc maps a target and its current effects to the target's new
// effect list. Implementations must not modify existing.
type EffectFunc func(ctx effect.Context, target effect.Stats, existing []effect.Active) []effect.Active

// Card is an immutable catalog entry.
type Card struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          Type       `json:"type"`
	Description   string     `json:"description"`
	DefaultTarget Target     `json:"defaultTarget"`
	Effect        EffectFunc `json:"-"`
}

// Apply runs the card's effect. Cards without an effect return a copy of
// existing.
func (c Card) Apply(ctx effect.Context, target effect.Stats, existing []effect.Active) []effect.Active {
	if c.Effect == nil {
		return effect.Clone(existing)
	}
	return c.Effect(ctx, target, existing)
}

// String returns the card's name and type
func (c Card) String() string {
	return fmt.Sprintf("%s [%s]", c.Name, c.Type)
}

// IDs returns the ids of cards in order.
func IDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// IndexOf returns the position of the first card with id, or -1.
func IndexOf(cards []Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
