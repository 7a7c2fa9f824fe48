// Package effect models timed modifiers on a combatant.
//
// Effect lists are values: every function here returns a new slice and never
// modifies its argument.
package effect

import "fmt"

// Active is one timed modifier on a combatant. Remaining is always positive
// while the effect is in a list; Decay drops it once it reaches zero.
type Active struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Remaining    int     `json:"remainingDuration"`
	PowerBoost   float64 `json:"powerBoost,omitempty"`
	DefenseBoost float64 `json:"defenseBoost,omitempty"`
	HealAmount   float64 `json:"healAmount,omitempty"`
	SourceCardID string  `json:"sourceCardId,omitempty"`
}

// String returns a short description like "Sharpen (+5 pow, 2 left)"
func (a Active) String() string {
	s := a.Name + " ("
	if a.PowerBoost != 0 {
		s += fmt.Sprintf("%+g pow, ", a.PowerBoost)
	}
	if a.DefenseBoost != 0 {
		s += fmt.Sprintf("%+g def, ", a.DefenseBoost)
	}
	if a.HealAmount != 0 {
		s += fmt.Sprintf("heal %g, ", a.HealAmount)
	}
	return s + fmt.Sprintf("%d left)", a.Remaining)
}

// Context carries the values an effect needs to mint instance ids without
// reaching for global state.
type Context struct {
	Round    int
	Sequence int
}

// InstanceID builds the id for an effect created from cardID in ctx.
func (c Context) InstanceID(cardID string) string {
	return fmt.Sprintf("%s-r%d-%d", cardID, c.Round, c.Sequence)
}

// Stats is the read-only view of a combatant that effects may consult.
type Stats struct {
	MaxHealth      float64
	CurrentHealth  float64
	BasePower      float64
	BaseDefense    float64
	CurrentPower   float64
	CurrentDefense float64
}

// Clone returns a copy of effects. A nil or empty list clones to an empty,
// non-nil slice.
func Clone(effects []Active) []Active {
	out := make([]Active, len(effects))
	copy(out, effects)
	return out
}

// Append returns a new list holding effects followed by extra.
func Append(effects []Active, extra ...Active) []Active {
	out := make([]Active, 0, len(effects)+len(extra))
	out = append(out, effects...)
	return append(out, extra...)
}

// Decay ticks every effect down by one round and drops those that expire.
func Decay(effects []Active) []Active {
	out := make([]Active, 0, len(effects))
	for _, e := range effects {
		e.Remaining--
		if e.Remaining > 0 {
			out = append(out, e)
		}
	}
	return out
}

// Totals sums the power and defense boosts in effects.
func Totals(effects []Active) (power, defense float64) {
	for _, e := range effects {
		power += e.PowerBoost
		defense += e.DefenseBoost
	}
	return power, defense
}

// Contains reports whether an effect with id is in effects.
func Contains(effects []Active, id string) bool {
	for _, e := range effects {
		if e.ID == id {
			return true
		}
	}
	return false
}
