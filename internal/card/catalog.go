package card

import (
	"fmt"
	"math"

	"github.com/lox/stonefight/internal/effect"
)

// Catalog is the fixed set of cards available to players.
type Catalog struct {
	order []string
	cards map[string]Card
}

// NewCatalog builds a catalog. Duplicate ids are rejected.
func NewCatalog(cards ...Card) (*Catalog, error) {
	c := &Catalog{cards: make(map[string]Card, len(cards))}
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has no id", card.Name)
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.cards[card.ID] = card
		c.order = append(c.order, card.ID)
	}
	return c, nil
}

// Lookup returns the card with id.
func (c *Catalog) Lookup(id string) (Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// All returns every card in catalog order.
func (c *Catalog) All() []Card {
	out := make([]Card, len(c.order))
	for i, id := range c.order {
		out[i] = c.cards[id]
	}
	return out
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int { return len(c.order) }

// StartingDeck returns copies of every card, in catalog order.
func (c *Catalog) StartingDeck(copies int) []Card {
	if copies < 1 {
		copies = 1
	}
	out := make([]Card, 0, copies*len(c.order))
	for i := 0; i < copies; i++ {
		out = append(out, c.All()...)
	}
	return out
}

// Timed returns an effect that adds a single timed boost.
func Timed(cardID, name, description string, duration int, power, defense float64) EffectFunc {
	return func(ctx effect.Context, _ effect.Stats, existing []effect.Active) []effect.Active {
		return effect.Append(existing, effect.Active{
			ID:           ctx.InstanceID(cardID),
			Name:         name,
			Description:  description,
			Remaining:    duration,
			PowerBoost:   power,
			DefenseBoost: defense,
			SourceCardID: cardID,
		})
	}
}

// InstantHeal returns an effect that heals a fixed amount once.
func InstantHeal(cardID, name, description string, amount float64) EffectFunc {
	return func(ctx effect.Context, _ effect.Stats, existing []effect.Active) []effect.Active {
		return effect.Append(existing, effect.Active{
			ID:           ctx.InstanceID(cardID),
			Name:         name,
			Description:  description,
			Remaining:    1,
			HealAmount:   amount,
			SourceCardID: cardID,
		})
	}
}

// MissingHealthHeal heals a fraction of the target's missing health, never
// less than floor.
func MissingHealthHeal(cardID, name, description string, fraction, floor float64) EffectFunc {
	return func(ctx effect.Context, target effect.Stats, existing []effect.Active) []effect.Active {
		missing := target.MaxHealth - target.CurrentHealth
		amount := math.Max(floor, math.Round(missing*fraction))
		return effect.Append(existing, effect.Active{
			ID:           ctx.InstanceID(cardID),
			Name:         name,
			Description:  description,
			Remaining:    1,
			HealAmount:   amount,
			SourceCardID: cardID,
		})
	}
}

// Standard card ids.
const (
	Sharpen      = "sharpen"
	PowerSurge   = "power_surge"
	StoneSkin    = "stone_skin"
	Fortify      = "fortify"
	Mend         = "mend"
	Renewal      = "renewal"
	CrushingBlow = "crushing_blow"
	Resonance    = "resonance"
	Erode        = "erode"
	Shatter      = "shatter"
)

// Standard returns the game's built-in catalog.
func Standard() *Catalog {
	cat, err := NewCatalog(
		Card{
			ID: Sharpen, Name: "Sharpen", Type: BuffAttack,
			Description: "+5 power for 3 rounds",
			Effect:      Timed(Sharpen, "Sharpen", "+5 power", 3, 5, 0),
		},
		Card{
			ID: PowerSurge, Name: "Power Surge", Type: BuffAttack,
			Description: "+10 power for 2 rounds",
			Effect:      Timed(PowerSurge, "Power Surge", "+10 power", 2, 10, 0),
		},
		Card{
			ID: StoneSkin, Name: "Stone Skin", Type: BuffDefense,
			Description: "+8 defense for 2 rounds",
			Effect:      Timed(StoneSkin, "Stone Skin", "+8 defense", 2, 0, 8),
		},
		Card{
			ID: Fortify, Name: "Fortify", Type: BuffDefense,
			Description: "+4 defense for 3 rounds",
			Effect:      Timed(Fortify, "Fortify", "+4 defense", 3, 0, 4),
		},
		Card{
			ID: Mend, Name: "Mend", Type: Heal,
			Description: "Heal 20 health",
			Effect:      InstantHeal(Mend, "Mend", "heal 20", 20),
		},
		Card{
			ID: Renewal, Name: "Renewal", Type: Heal,
			Description: "Heal a quarter of missing health (at least 10)",
			Effect:      MissingHealthHeal(Renewal, "Renewal", "heal 25% of missing health", 0.25, 10),
		},
		Card{
			ID: CrushingBlow, Name: "Crushing Blow", Type: Attack,
			Description: "+20 power this round",
			Effect:      Timed(CrushingBlow, "Crushing Blow", "+20 power", 1, 20, 0),
		},
		Card{
			ID: Resonance, Name: "Resonance", Type: Special,
			Description: "+3 power and +3 defense for 2 rounds",
			Effect:      Timed(Resonance, "Resonance", "+3 power, +3 defense", 2, 3, 3),
		},
		Card{
			ID: Erode, Name: "Erode", Type: Special, DefaultTarget: TargetOpponent,
			Description: "-8 power for 2 rounds",
			Effect:      Timed(Erode, "Erode", "-8 power", 2, -8, 0),
		},
		Card{
			ID: Shatter, Name: "Shatter", Type: Special, DefaultTarget: TargetOpponent,
			Description: "-6 defense for 2 rounds",
			Effect:      Timed(Shatter, "Shatter", "-6 defense", 2, 0, -6),
		},
	)
	if err != nil {
		panic(err)
	}
	return cat
}
