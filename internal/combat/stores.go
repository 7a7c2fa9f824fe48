package combat

import (
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/effect"
	"github.com/lox/stonefight/internal/stone"
)

// CardPiles is the deck, hand and discard pile a player fights with.
type CardPiles interface {
	DrawCards(n int) []card.Card
	AddToHand(cards ...card.Card)
	RemoveFromHand(id string) (card.Card, bool)
	AddToDiscard(cards ...card.Card)
}

// EffectStore holds one side's active effects. The player's store outlives
// the fight; the opponent's lives only as long as the session.
type EffectStore interface {
	ActiveEffects() []effect.Active
	SetActiveEffects(effects []effect.Active)
}

// Inventory receives the outcome of a fight.
type Inventory interface {
	EquippedStone() (stone.Qualities, bool)
	AddCurrency(amount int)
	RemoveStone(seed stone.Seed) error
	AddStone(q stone.Qualities)
}

// LocalEffects is an in-memory EffectStore.
type LocalEffects struct {
	effects []effect.Active
}

// ActiveEffects returns a copy of the stored effects.
func (l *LocalEffects) ActiveEffects() []effect.Active {
	return effect.Clone(l.effects)
}

// SetActiveEffects replaces the stored effects.
func (l *LocalEffects) SetActiveEffects(effects []effect.Active) {
	l.effects = effect.Clone(effects)
}
