package combat

import (
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/stone"
	"github.com/stretchr/testify/require"
)

// stoneWithPower returns a stone whose power is weight/2.
func stoneWithPower(seed stone.Seed, power float64) stone.Qualities {
	return stone.Qualities{Seed: seed, Color: stone.Slate, Shape: stone.Round, Weight: int(power * 2)}
}

type fakeInventory struct {
	stones   []stone.Qualities
	equipped stone.Seed
	currency int
}

func (f *fakeInventory) EquippedStone() (stone.Qualities, bool) {
	for _, s := range f.stones {
		if s.Seed == f.equipped {
			return s, true
		}
	}
	return stone.Qualities{}, false
}

func (f *fakeInventory) AddCurrency(amount int) { f.currency += amount }

func (f *fakeInventory) RemoveStone(seed stone.Seed) error {
	for i, s := range f.stones {
		if s.Seed == seed {
			f.stones = append(f.stones[:i], f.stones[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeInventory) AddStone(q stone.Qualities) { f.stones = append(f.stones, q) }

type fixture struct {
	session   *Session
	deck      *card.Deck
	effects   *LocalEffects
	inventory *fakeInventory
	clock     *quartz.Mock
	player    stone.Qualities
	opponent  stone.Qualities
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	playerPower   float64
	opponentPower float64
	deckIDs       []string
	opts          []Option
}

func withPowers(player, opponent float64) fixtureOption {
	return func(c *fixtureConfig) { c.playerPower, c.opponentPower = player, opponent }
}

func withDeck(ids ...string) fixtureOption {
	return func(c *fixtureConfig) { c.deckIDs = ids }
}

func withSessionOptions(opts ...Option) fixtureOption {
	return func(c *fixtureConfig) { c.opts = append(c.opts, opts...) }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	cfg := &fixtureConfig{playerPower: 50, opponentPower: 30}
	for _, opt := range opts {
		opt(cfg)
	}

	cat := card.Standard()
	cards := make([]card.Card, 0, len(cfg.deckIDs))
	for _, id := range cfg.deckIDs {
		c, ok := cat.Lookup(id)
		require.True(t, ok, "unknown card %s", id)
		cards = append(cards, c)
	}

	f := &fixture{
		deck:     card.NewDeck(randutil.New(1), cards),
		effects:  &LocalEffects{},
		clock:    quartz.NewMock(t),
		player:   stoneWithPower(1, cfg.playerPower),
		opponent: stoneWithPower(2, cfg.opponentPower),
	}
	f.inventory = &fakeInventory{stones: []stone.Qualities{f.player}, equipped: f.player.Seed}

	sessionOpts := append([]Option{WithClock(f.clock), WithGameSeed(77)}, cfg.opts...)
	s, err := StartFight(&f.player, &f.opponent, Deps{
		Cards:         f.deck,
		PlayerEffects: f.effects,
		Inventory:     f.inventory,
	}, sessionOpts...)
	require.NoError(t, err)
	f.session = s
	return f
}

// playRound starts a round, optionally selects and plays cardID, and resolves.
func (f *fixture) playRound(t *testing.T, cardID string, target card.Target) Resolution {
	t.Helper()
	_, err := f.session.StartNewRound()
	require.NoError(t, err)
	if cardID != "" {
		_, err = f.session.SelectCard(cardID)
		require.NoError(t, err)
		_, err = f.session.PlayCard(cardID, target)
		require.NoError(t, err)
	}
	res, err := f.session.ResolveRound()
	require.NoError(t, err)
	return res
}
