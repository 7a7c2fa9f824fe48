package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/stone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func entry(id string, at time.Time, winner combat.Winner, currency int) Entry {
	return Entry{
		SessionID:    id,
		PlayedAt:     at,
		Winner:       string(winner),
		Rounds:       3,
		PlayerSeed:   1,
		PlayerName:   "Jade Round",
		OpponentSeed: 2,
		OpponentName: "Slate Oval",
		Currency:     currency,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, entry(fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Minute), combat.WinnerPlayer, 10)))
	}

	recent, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "s4", recent[0].SessionID)
	assert.Equal(t, "s2", recent[2].SessionID)
	assert.True(t, base.Add(4*time.Minute).Equal(recent[0].PlayedAt))
	assert.Equal(t, "Jade Round", recent[0].PlayerName)
	assert.Equal(t, 3, recent[0].Rounds)
}

func TestRecordDuplicateSession(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	e := entry("dup", time.Now(), combat.WinnerTie, 0)

	require.NoError(t, s.Record(ctx, e))
	assert.Error(t, s.Record(ctx, e))
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	empty, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, empty)
	assert.Zero(t, empty.WinRate())

	now := time.Now()
	win := entry("a", now, combat.WinnerPlayer, 10)
	win.StoneGained = true
	loss := entry("b", now, combat.WinnerOpponent, 0)
	loss.StoneLost = true
	require.NoError(t, s.Record(ctx, win))
	require.NoError(t, s.Record(ctx, loss))
	require.NoError(t, s.Record(ctx, entry("c", now, combat.WinnerTie, 0)))
	require.NoError(t, s.Record(ctx, entry("d", now, combat.WinnerPlayer, 10)))

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Fights: 4, Wins: 2, Losses: 1, Ties: 1, Currency: 20, StonesGained: 1, StonesLost: 1}, sum)
	assert.Equal(t, 0.5, sum.WinRate())
}

func TestFromSettlement(t *testing.T) {
	gained := stone.Derive(99)
	st := combat.Settlement{
		SessionID:     "abc",
		Winner:        combat.WinnerPlayer,
		Rounds:        4,
		PlayerStone:   stone.Derive(1),
		OpponentStone: stone.Derive(2),
		Currency:      10,
		StoneGained:   &gained,
	}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	e := FromSettlement(st, at)

	assert.Equal(t, "abc", e.SessionID)
	assert.Equal(t, "player", e.Winner)
	assert.Equal(t, int32(1), e.PlayerSeed)
	assert.Equal(t, stone.Derive(2).DisplayName(), e.OpponentName)
	assert.True(t, e.StoneGained)
	assert.False(t, e.StoneLost)
	assert.Equal(t, at, e.PlayedAt)
}
