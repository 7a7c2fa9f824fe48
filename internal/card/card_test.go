package card

import (
	"testing"

	"github.com/lox/stonefight/internal/effect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardCatalog(t *testing.T) {
	cat := Standard()
	require.Equal(t, 10, cat.Len())

	types := map[Type]bool{}
	for _, c := range cat.All() {
		types[c.Type] = true
		assert.NotEmpty(t, c.Name)
		assert.NotNil(t, c.Effect, c.ID)
	}
	for _, want := range []Type{BuffAttack, BuffDefense, Heal, Attack, Special} {
		assert.True(t, types[want], "catalog missing %s", want)
	}

	erode, ok := cat.Lookup(Erode)
	require.True(t, ok)
	assert.Equal(t, TargetOpponent, erode.DefaultTarget)

	_, ok = cat.Lookup("nope")
	assert.False(t, ok)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(Card{ID: "a"}, Card{ID: "a"})
	assert.Error(t, err)

	_, err = NewCatalog(Card{Name: "nameless"})
	assert.Error(t, err)
}

func TestEffectsArePure(t *testing.T) {
	ctx := effect.Context{Round: 2, Sequence: 5}
	target := effect.Stats{MaxHealth: 100, CurrentHealth: 40}
	existing := []effect.Active{{ID: "old", Remaining: 2, PowerBoost: 1}}

	for _, c := range Standard().All() {
		t.Run(c.ID, func(t *testing.T) {
			before := effect.Clone(existing)
			a := c.Apply(ctx, target, existing)
			b := c.Apply(ctx, target, existing)

			assert.Equal(t, before, existing, "existing effects were modified")
			assert.Equal(t, a, b, "same inputs should give same output")
			require.Len(t, a, 2)
			assert.Equal(t, "old", a[0].ID)
			assert.Equal(t, c.ID+"-r2-5", a[1].ID)
			assert.Equal(t, c.ID, a[1].SourceCardID)
			assert.Positive(t, a[1].Remaining)
		})
	}
}

func TestSharpen(t *testing.T) {
	c, _ := Standard().Lookup(Sharpen)
	out := c.Apply(effect.Context{Round: 1, Sequence: 1}, effect.Stats{}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 5.0, out[0].PowerBoost)
	assert.Equal(t, 3, out[0].Remaining)
}

func TestRenewalScalesWithMissingHealth(t *testing.T) {
	c, _ := Standard().Lookup(Renewal)
	ctx := effect.Context{Round: 1, Sequence: 1}

	low := c.Apply(ctx, effect.Stats{MaxHealth: 100, CurrentHealth: 20}, nil)
	assert.Equal(t, 20.0, low[0].HealAmount)

	high := c.Apply(ctx, effect.Stats{MaxHealth: 100, CurrentHealth: 95}, nil)
	assert.Equal(t, 10.0, high[0].HealAmount)
}

func TestApplyWithoutEffect(t *testing.T) {
	existing := []effect.Active{{ID: "a", Remaining: 1}}
	out := Card{ID: "blank"}.Apply(effect.Context{}, effect.Stats{}, existing)
	assert.Equal(t, existing, out)
}

func TestParseTarget(t *testing.T) {
	for _, s := range []string{"player", "self", "ME"} {
		got, err := ParseTarget(s)
		require.NoError(t, err)
		assert.Equal(t, TargetPlayer, got)
	}
	for _, s := range []string{"opponent", "foe", "enemy"} {
		got, err := ParseTarget(s)
		require.NoError(t, err)
		assert.Equal(t, TargetOpponent, got)
	}
	_, err := ParseTarget("sideways")
	assert.Error(t, err)
}
