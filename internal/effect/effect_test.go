package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecayMonotonic(t *testing.T) {
	for d := 1; d <= 6; d++ {
		effects := []Active{{ID: "x", Remaining: d}}
		for i := 0; i < d-1; i++ {
			effects = Decay(effects)
		}
		require.True(t, Contains(effects, "x"), "duration %d should survive %d cycles", d, d-1)
		effects = Decay(effects)
		assert.False(t, Contains(effects, "x"), "duration %d should be gone after %d cycles", d, d)
	}
}

func TestDecayDoesNotMutate(t *testing.T) {
	in := []Active{{ID: "a", Remaining: 2}, {ID: "b", Remaining: 1}}
	out := Decay(in)

	assert.Equal(t, 2, in[0].Remaining)
	assert.Equal(t, 1, in[1].Remaining)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, 1, out[0].Remaining)
}

func TestTotals(t *testing.T) {
	p, d := Totals([]Active{
		{PowerBoost: 5, DefenseBoost: 1},
		{PowerBoost: -2},
		{DefenseBoost: 4, HealAmount: 10},
	})
	assert.Equal(t, 3.0, p)
	assert.Equal(t, 5.0, d)

	p, d = Totals(nil)
	assert.Zero(t, p)
	assert.Zero(t, d)
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := make([]Active, 1, 4)
	base[0] = Active{ID: "a"}
	one := Append(base, Active{ID: "b"})
	two := Append(base, Active{ID: "c"})

	assert.Equal(t, "b", one[1].ID)
	assert.Equal(t, "c", two[1].ID)
	assert.Len(t, base, 1)
}

func TestClone(t *testing.T) {
	assert.NotNil(t, Clone(nil))
	in := []Active{{ID: "a"}}
	out := Clone(in)
	out[0].ID = "z"
	assert.Equal(t, "a", in[0].ID)
}

func TestInstanceID(t *testing.T) {
	assert.Equal(t, "mend-r3-7", Context{Round: 3, Sequence: 7}.InstanceID("mend"))
}

func TestActiveString(t *testing.T) {
	a := Active{Name: "Sharpen", PowerBoost: 5, Remaining: 2}
	assert.Equal(t, "Sharpen (+5 pow, 2 left)", a.String())
}
