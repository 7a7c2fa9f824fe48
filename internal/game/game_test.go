package game

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/history"
	"github.com/lox/stonefight/internal/stone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	entries []history.Entry
}

func (f *fakeRecorder) Record(_ context.Context, e history.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.StartingCurrency = 5
	g, err := New(cfg, append([]Option{WithClock(quartz.NewMock(t))}, opts...)...)
	require.NoError(t, err)
	return g
}

// equipChampion adds and equips a stone that wins any fight in one round.
func equipChampion(t *testing.T, g *Game) stone.Qualities {
	t.Helper()
	champ := stone.Qualities{Seed: 424242, Color: stone.Ivory, Shape: stone.Crystal, Weight: 2000}
	g.AddStone(champ)
	require.NoError(t, g.Equip(champ.Seed))
	return champ
}

func championRules() Config {
	cfg := DefaultConfig()
	cfg.Rules.MaxHealth = 1000
	cfg.Rules.LootChance = 0
	return cfg
}

func playOut(t *testing.T, s *combat.Session) {
	t.Helper()
	for i := 0; i < 1000 && !s.IsOver(); i++ {
		_, err := s.StartNewRound()
		require.NoError(t, err)
		_, err = s.ResolveRound()
		require.NoError(t, err)
	}
	require.True(t, s.IsOver())
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t)

	stones := g.Stones()
	require.Len(t, stones, 1)
	equipped, ok := g.EquippedStone()
	require.True(t, ok)
	assert.Equal(t, stones[0].Seed, equipped.Seed)
	assert.Equal(t, 5, g.Currency())
	assert.Equal(t, 2*card.Standard().Len(), g.Deck().CardsRemaining())
	assert.Empty(t, g.Hand())

	_, err := g.Fight()
	assert.ErrorIs(t, err, ErrNoFight)
}

func TestNewGameIsDeterministic(t *testing.T) {
	a := newTestGame(t)
	b := newTestGame(t)

	assert.Equal(t, a.Stones()[0].Seed, b.Stones()[0].Seed)
	assert.Equal(t, a.MintStone().Seed, b.MintStone().Seed)
	assert.Equal(t, a.Deck().Piles(), b.Deck().Piles())

	oa, err := a.CurrentOpponent()
	require.NoError(t, err)
	ob, err := b.CurrentOpponent()
	require.NoError(t, err)
	assert.True(t, stone.SameStone(oa, ob))
}

func TestMintStone(t *testing.T) {
	g := newTestGame(t)
	first := g.Stones()[0]

	minted := g.MintStone()

	assert.NotEqual(t, first.Seed, minted.Seed)
	assert.Len(t, g.Stones(), 2)
	equipped, _ := g.EquippedStone()
	assert.Equal(t, first.Seed, equipped.Seed, "minting does not change the equipped stone")
}

func TestInventory(t *testing.T) {
	g := newTestGame(t)
	first := g.Stones()[0]
	second := g.MintStone()

	require.NoError(t, g.Equip(second.Seed))
	equipped, _ := g.EquippedStone()
	assert.Equal(t, second.Seed, equipped.Seed)

	assert.ErrorIs(t, g.Equip(stone.Seed(-1)), ErrStoneNotFound)
	assert.ErrorIs(t, g.RemoveStone(stone.Seed(-1)), ErrStoneNotFound)

	require.NoError(t, g.RemoveStone(second.Seed))
	_, ok := g.EquippedStone()
	assert.False(t, ok)

	_, err := g.StartFight()
	assert.ErrorIs(t, err, ErrNoEquippedStone)

	require.NoError(t, g.Equip(first.Seed))
	g.AddCurrency(7)
	assert.Equal(t, 12, g.Currency())
}

func TestAddStoneEquipsWhenEmpty(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.RemoveStone(g.Stones()[0].Seed))

	q := stone.Derive(7)
	g.AddStone(q)

	equipped, ok := g.EquippedStone()
	require.True(t, ok)
	assert.Equal(t, q.Seed, equipped.Seed)
}

func TestEquipStrongest(t *testing.T) {
	g := newTestGame(t)
	champ := stone.Qualities{Seed: 424242, Color: stone.Ivory, Shape: stone.Crystal, Weight: 2000}
	g.AddStone(champ)

	best, ok := g.EquipStrongest()
	require.True(t, ok)
	assert.Equal(t, champ.Seed, best.Seed)
	equipped, _ := g.EquippedStone()
	assert.Equal(t, champ.Seed, equipped.Seed)

	for _, q := range g.Stones() {
		require.NoError(t, g.RemoveStone(q.Seed))
	}
	_, ok = g.EquipStrongest()
	assert.False(t, ok)
}

func TestPlayerEffectStore(t *testing.T) {
	g := newTestGame(t)
	g.SetActiveEffects(nil)
	assert.Empty(t, g.ActiveEffects())
}

func TestFightWinAdvancesLadder(t *testing.T) {
	rec := &fakeRecorder{}
	g, err := New(championRules(), WithClock(quartz.NewMock(t)), WithRecorder(rec))
	require.NoError(t, err)
	champ := equipChampion(t, g)
	opponent, err := g.CurrentOpponent()
	require.NoError(t, err)

	s, err := g.StartFight()
	require.NoError(t, err)
	current, err := g.Fight()
	require.NoError(t, err)
	assert.Same(t, s, current)

	assert.ErrorIs(t, g.Equip(g.Stones()[0].Seed), ErrFightInProgress)

	playOut(t, s)
	st, err := g.EndFight(context.Background())
	require.NoError(t, err)

	assert.Equal(t, combat.WinnerPlayer, st.Winner)
	assert.Equal(t, champ.Seed, st.PlayerStone.Seed)
	assert.True(t, stone.SameStone(opponent, st.OpponentStone))
	assert.Equal(t, 10, g.Currency())
	assert.Equal(t, 1, g.Ladder().Cursor())

	require.Len(t, rec.entries, 1)
	assert.Equal(t, st.SessionID, rec.entries[0].SessionID)
	assert.Equal(t, "player", rec.entries[0].Winner)

	_, err = g.Fight()
	assert.ErrorIs(t, err, ErrNoFight)
	_, err = g.EndFight(context.Background())
	assert.ErrorIs(t, err, ErrNoFight)
}

func TestFightLossKeepsLadder(t *testing.T) {
	g := newTestGame(t)
	s, err := g.StartFight()
	require.NoError(t, err)
	require.NoError(t, s.Concede())

	st, err := g.EndFight(context.Background())
	require.NoError(t, err)

	assert.Equal(t, combat.WinnerOpponent, st.Winner)
	assert.Zero(t, g.Ladder().Cursor())
}

func TestEndFightBeforeOver(t *testing.T) {
	g := newTestGame(t)
	_, err := g.StartFight()
	require.NoError(t, err)

	_, err = g.EndFight(context.Background())
	assert.ErrorIs(t, err, combat.ErrFightNotOver)

	_, err = g.Fight()
	assert.NoError(t, err, "a failed settlement keeps the fight")
}

func TestStartFightReplacesSession(t *testing.T) {
	g := newTestGame(t)
	first, err := g.StartFight()
	require.NoError(t, err)
	second, err := g.StartFight()
	require.NoError(t, err)

	current, err := g.Fight()
	require.NoError(t, err)
	assert.Same(t, second, current)
	assert.NotEqual(t, first.ID(), second.ID())
}

func pileSize(p card.Piles) int {
	return len(p.Draw) + len(p.Hand) + len(p.Discard)
}

func TestStartFightMidRoundKeepsOfferedCards(t *testing.T) {
	g := newTestGame(t)
	total := pileSize(g.Deck().Piles())

	first, err := g.StartFight()
	require.NoError(t, err)
	rs, err := first.StartNewRound()
	require.NoError(t, err)
	require.Len(t, rs.Choices, 3)
	require.Equal(t, total-3, pileSize(g.Deck().Piles()))

	_, err = g.StartFight()
	require.NoError(t, err)

	assert.Equal(t, total, pileSize(g.Deck().Piles()))
	assert.Equal(t, 3, g.Deck().DiscardCount())
	assert.Equal(t, combat.PhaseSettled, first.Phase())
	assert.Empty(t, first.Choices())
	_, err = first.SelectCard(rs.Choices[0].ID)
	assert.ErrorIs(t, err, combat.ErrSessionEnded)
}

func TestFightEventsReachBus(t *testing.T) {
	bus := combat.NewEventBus()
	var types []combat.EventType
	bus.Subscribe(combat.SubscriberFunc(func(e combat.Event) { types = append(types, e.EventType()) }))

	g := newTestGame(t, WithEventBus(bus))
	s, err := g.StartFight()
	require.NoError(t, err)
	require.NoError(t, s.Concede())
	_, err = g.EndFight(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []combat.EventType{combat.EventTypeFightStarted, combat.EventTypeFightEnded}, types)
}

func TestCardsFlowThroughDeck(t *testing.T) {
	g := newTestGame(t)
	s, err := g.StartFight()
	require.NoError(t, err)

	rs, err := s.StartNewRound()
	require.NoError(t, err)
	require.Len(t, rs.Choices, 3)
	picked := rs.Choices[0]

	_, err = s.SelectCard(picked.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{picked.ID}, card.IDs(g.Hand()))

	_, err = s.PlayCard(picked.ID, picked.DefaultTarget)
	require.NoError(t, err)
	assert.Empty(t, g.Hand())
	assert.Equal(t, 3, g.Deck().DiscardCount())
}
