package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/effect"
	"github.com/lox/stonefight/internal/stone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeds(stones []stone.Qualities) []stone.Seed {
	out := make([]stone.Seed, len(stones))
	for i, q := range stones {
		out[i] = q.Seed
	}
	return out
}

func TestSaveAndLoad(t *testing.T) {
	cfg := championRules()
	clock := quartz.NewMock(t)
	g, err := New(cfg, WithClock(clock))
	require.NoError(t, err)
	g.MintStone()
	equipChampion(t, g)

	s, err := g.StartFight()
	require.NoError(t, err)
	playOut(t, s)
	_, err = g.EndFight(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, g.Save(path))

	loaded, err := Load(path, cfg, WithClock(clock))
	require.NoError(t, err)

	assert.Equal(t, seeds(g.Stones()), seeds(loaded.Stones()))
	assert.Equal(t, g.Currency(), loaded.Currency())
	assert.Equal(t, g.Ladder().Cursor(), loaded.Ladder().Cursor())
	assert.Equal(t, g.Deck().Piles(), loaded.Deck().Piles())

	want, _ := g.EquippedStone()
	got, ok := loaded.EquippedStone()
	require.True(t, ok)
	assert.Equal(t, want.Seed, got.Seed)

	assert.Equal(t, g.MintStone().Seed, loaded.MintStone().Seed, "restored PRNG continues where it left off")
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t)
	g.SetActiveEffects([]effect.Active{{ID: "x", Remaining: 1}})

	st := g.Snapshot()

	assert.Equal(t, SaveVersion, st.Version)
	assert.Equal(t, DefaultConfig().Seed, st.Seed)
	assert.Equal(t, 1, st.SeedDraws)
	assert.Len(t, st.Stones, 1)
	require.NotNil(t, st.Equipped)
	assert.Equal(t, st.Stones[0].Seed, *st.Equipped)
	assert.Len(t, st.PlayerEffects, 1)
	assert.Equal(t, 5, st.Currency)
}

func TestSnapshotWithoutEquippedStone(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.RemoveStone(g.Stones()[0].Seed))

	restored, err := Restore(g.Snapshot(), DefaultConfig())
	require.NoError(t, err)

	_, ok := restored.EquippedStone()
	assert.False(t, ok)
	assert.Empty(t, restored.Stones())
}

func TestSnapshotMidRoundKeepsOfferedCards(t *testing.T) {
	g := newTestGame(t)
	total := pileSize(g.Deck().Piles())

	s, err := g.StartFight()
	require.NoError(t, err)
	rs, err := s.StartNewRound()
	require.NoError(t, err)
	require.Len(t, rs.Choices, 3)

	st := g.Snapshot()
	assert.Equal(t, total, pileSize(st.Deck))
	assert.Subset(t, st.Deck.Discard, card.IDs(rs.Choices))
	assert.Equal(t, card.IDs(rs.Choices), card.IDs(s.Choices()), "snapshot leaves the live fight alone")

	restored, err := Restore(st, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, total, pileSize(restored.Deck().Piles()))
	assert.Equal(t, 3, restored.Deck().DiscardCount())
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	g := newTestGame(t)
	st := g.Snapshot()
	st.Version = 99

	_, err := Restore(st, DefaultConfig())
	assert.ErrorIs(t, err, ErrUnsupportedSave)
}

func TestRestoreRejectsUnknownCard(t *testing.T) {
	g := newTestGame(t)
	st := g.Snapshot()
	st.Deck.Hand = []string{"no_such_card"}

	_, err := Restore(st, DefaultConfig())
	assert.Error(t, err)
}

func TestRestoreUsesSavedSeeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.OpponentsSeed = 2
	g, err := New(cfg, WithClock(quartz.NewMock(t)))
	require.NoError(t, err)

	other := DefaultConfig()
	restored, err := Restore(g.Snapshot(), other)
	require.NoError(t, err)

	assert.Equal(t, int32(1), restored.Config().Seed)
	assert.Equal(t, int32(2), restored.Config().OpponentsSeed)
	oa, _ := g.CurrentOpponent()
	ob, _ := restored.CurrentOpponent()
	assert.Equal(t, oa.Seed, ob.Seed)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := Load(path, DefaultConfig())
	assert.ErrorIs(t, err, os.ErrNotExist)

	g, err := LoadOrNew(path, DefaultConfig(), WithClock(quartz.NewMock(t)))
	require.NoError(t, err)
	assert.Len(t, g.Stones(), 1)
}

func TestLoadOrNewCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	_, err := LoadOrNew(path, DefaultConfig())
	assert.Error(t, err)
}
