package card

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck holds a player's draw pile, hand and discard pile.
type Deck struct {
	draw    []Card
	hand    []Card
	discard []Card
	rng     *rand.Rand
}

// NewDeck creates a deck from cards and shuffles the draw pile.
func NewDeck(rng *rand.Rand, cards []Card) *Deck {
	d := &Deck{
		draw: make([]Card, len(cards)),
		rng:  rng,
	}
	copy(d.draw, cards)
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of the draw pile
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// DrawCards removes up to n cards from the top of the draw pile. When the
// draw pile runs out the discard pile is shuffled back in. If both piles are
// empty fewer than n cards are returned.
func (d *Deck) DrawCards(n int) []Card {
	out := make([]Card, 0, n)
	for len(out) < n {
		if len(d.draw) == 0 {
			if len(d.discard) == 0 {
				break
			}
			d.reshuffle()
		}
		out = append(out, d.draw[0])
		d.draw = d.draw[1:]
	}
	return out
}

func (d *Deck) reshuffle() {
	d.draw = append(d.draw, d.discard...)
	d.discard = nil
	d.Shuffle()
}

// AddToHand puts cards into the player's hand.
func (d *Deck) AddToHand(cards ...Card) {
	d.hand = append(d.hand, cards...)
}

// RemoveFromHand takes the first card with id out of the hand.
func (d *Deck) RemoveFromHand(id string) (Card, bool) {
	i := IndexOf(d.hand, id)
	if i < 0 {
		return Card{}, false
	}
	c := d.hand[i]
	d.hand = append(d.hand[:i:i], d.hand[i+1:]...)
	return c, true
}

// AddToDiscard puts cards on the discard pile.
func (d *Deck) AddToDiscard(cards ...Card) {
	d.discard = append(d.discard, cards...)
}

// Hand returns a copy of the cards in hand.
func (d *Deck) Hand() []Card {
	out := make([]Card, len(d.hand))
	copy(out, d.hand)
	return out
}

// HandContains reports whether a card with id is in hand.
func (d *Deck) HandContains(id string) bool {
	return IndexOf(d.hand, id) >= 0
}

// CardsRemaining returns the number of cards left in the draw pile
func (d *Deck) CardsRemaining() int {
	return len(d.draw)
}

// DiscardCount returns the number of cards in the discard pile
func (d *Deck) DiscardCount() int {
	return len(d.discard)
}

// Piles is the serialisable form of a deck: card ids per pile, top of the
// draw pile first.
type Piles struct {
	Draw    []string `json:"draw"`
	Hand    []string `json:"hand"`
	Discard []string `json:"discard"`
}

// Piles returns the deck's current layout.
func (d *Deck) Piles() Piles {
	return Piles{
		Draw:    IDs(d.draw),
		Hand:    IDs(d.hand),
		Discard: IDs(d.discard),
	}
}

// RestoreDeck rebuilds a deck from a saved layout without shuffling.
func RestoreDeck(rng *rand.Rand, catalog *Catalog, p Piles) (*Deck, error) {
	resolve := func(pile string, ids []string) ([]Card, error) {
		cards := make([]Card, 0, len(ids))
		for _, id := range ids {
			c, ok := catalog.Lookup(id)
			if !ok {
				return nil, fmt.Errorf("%s pile: unknown card %q", pile, id)
			}
			cards = append(cards, c)
		}
		return cards, nil
	}

	draw, err := resolve("draw", p.Draw)
	if err != nil {
		return nil, err
	}
	hand, err := resolve("hand", p.Hand)
	if err != nil {
		return nil, err
	}
	discard, err := resolve("discard", p.Discard)
	if err != nil {
		return nil, err
	}
	return &Deck{draw: draw, hand: hand, discard: discard, rng: rng}, nil
}
