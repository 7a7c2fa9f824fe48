package combat

import (
	"slices"

	"github.com/lox/stonefight/internal/effect"
	"github.com/lox/stonefight/internal/stone"
)

// DefaultMaxHealth is each combatant's starting health.
const DefaultMaxHealth = 100

// Participant is one side's per-fight stats. Current power and defense are
// always base plus the boosts in ActiveEffects; ApplyEffects recomputes them
// from scratch.
type Participant struct {
	Stone          stone.Qualities `json:"stone"`
	MaxHealth      float64         `json:"maxHealth"`
	CurrentHealth  float64         `json:"currentHealth"`
	BasePower      float64         `json:"basePower"`
	BaseDefense    float64         `json:"baseDefense"`
	CurrentPower   float64         `json:"currentPower"`
	CurrentDefense float64         `json:"currentDefense"`
	ActiveEffects  []effect.Active `json:"activeEffects"`

	// HealedEffects holds the ids of heal effects whose heal has already
	// landed, so reapplying the same list never heals twice.
	HealedEffects []string `json:"healedEffects,omitempty"`
}

// NewParticipant builds the starting state for a stone. Stones have no
// intrinsic defense; defense only comes from cards.
func NewParticipant(q stone.Qualities, maxHealth float64) Participant {
	if maxHealth <= 0 {
		maxHealth = DefaultMaxHealth
	}
	power := stone.Power(q)
	return Participant{
		Stone:          q,
		MaxHealth:      maxHealth,
		CurrentHealth:  maxHealth,
		BasePower:      power,
		BaseDefense:    0,
		CurrentPower:   power,
		CurrentDefense: 0,
		ActiveEffects:  []effect.Active{},
	}
}

// Stats returns the read-only view passed to card effects.
func (p Participant) Stats() effect.Stats {
	return effect.Stats{
		MaxHealth:      p.MaxHealth,
		CurrentHealth:  p.CurrentHealth,
		BasePower:      p.BasePower,
		BaseDefense:    p.BaseDefense,
		CurrentPower:   p.CurrentPower,
		CurrentDefense: p.CurrentDefense,
	}
}

// Defeated reports whether the participant has no health left.
func (p Participant) Defeated() bool {
	return p.CurrentHealth <= 0
}

// ApplyEffects returns p with its stats recomputed from effects. Heals land
// once per effect instance: applying the same list again changes nothing.
func ApplyEffects(p Participant, effects []effect.Active) Participant {
	next := p
	next.ActiveEffects = effect.Clone(effects)

	power, defense := effect.Totals(effects)
	next.CurrentPower = p.BasePower + power
	next.CurrentDefense = p.BaseDefense + defense

	healed := make([]string, 0, len(p.HealedEffects))
	for _, id := range p.HealedEffects {
		if effect.Contains(effects, id) {
			healed = append(healed, id)
		}
	}
	for _, e := range effects {
		if e.HealAmount == 0 || slices.Contains(healed, e.ID) {
			continue
		}
		next.CurrentHealth += e.HealAmount
		healed = append(healed, e.ID)
	}
	next.HealedEffects = healed
	next.CurrentHealth = clamp(next.CurrentHealth, 0, next.MaxHealth)
	return next
}

// TakeDamage returns p with damage subtracted, floored at zero health.
func (p Participant) TakeDamage(damage float64) Participant {
	p.CurrentHealth = clamp(p.CurrentHealth-damage, 0, p.MaxHealth)
	return p
}

// Damage is what an attacker with power deals through defense. It is never
// negative.
func Damage(power, defense float64) float64 {
	if d := power - defense; d > 0 {
		return d
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
