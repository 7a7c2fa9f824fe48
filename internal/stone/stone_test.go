package stone

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/stonefight/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterministic(t *testing.T) {
	for seed := Seed(-500); seed < 500; seed += 7 {
		a := Derive(seed)
		b := Derive(seed)
		require.Equal(t, a, b, "seed %d", seed)
	}
}

func TestDeriveRanges(t *testing.T) {
	for seed := Seed(0); seed < 2000; seed++ {
		q := Derive(seed)
		assert.Contains(t, Palette, q.Color)
		assert.Contains(t, Shapes, q.Shape)
		assert.GreaterOrEqual(t, q.Weight, MinWeight)
		assert.LessOrEqual(t, q.Weight, MaxWeight)
		assert.GreaterOrEqual(t, q.Rarity, 0)
		assert.LessOrEqual(t, q.Rarity, MaxRarity)
		assert.GreaterOrEqual(t, q.Hardness, 0)
		assert.LessOrEqual(t, q.Hardness, MaxHard)
		assert.GreaterOrEqual(t, q.Magic, 0)
		assert.LessOrEqual(t, q.Magic, MaxMagic)
		assert.True(t, q.CreatedAt.IsZero())
	}
}

func TestDeriveDrawOrder(t *testing.T) {
	// Draw order is colour, shape, weight, rarity, hardness, magic.
	seed := Seed(31337)
	prng := randutil.NewMulberry32(int32(seed))
	want := Qualities{Seed: seed}
	want.Color = Palette[int(prng.Float64()*float64(len(Palette)))]
	want.Shape = Shapes[int(prng.Float64()*float64(len(Shapes)))]
	want.Weight = 1 + int(prng.Float64()*100)
	want.Rarity = int(prng.Float64() * 101)
	want.Hardness = int(prng.Float64() * 101)
	want.Magic = int(prng.Float64() * 101)

	assert.Equal(t, want, Derive(seed))
}

func TestDeriveVaries(t *testing.T) {
	seen := map[Color]bool{}
	for seed := Seed(0); seed < 200; seed++ {
		seen[Derive(seed).Color] = true
	}
	assert.Len(t, seen, len(Palette))
}

func TestPower(t *testing.T) {
	q := Qualities{Rarity: 10, Magic: 5, Weight: 20}
	assert.Equal(t, 15.5, Power(q))

	assert.Equal(t, 0.0, Power(Qualities{}))
	assert.InDelta(t, 120.0, Power(Qualities{Rarity: 100, Magic: 100, Weight: 100}), 1e-9)
}

func TestMint(t *testing.T) {
	clock := quartz.NewMock(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(now)

	a := Mint(randutil.NewMulberry32(8), clock)
	b := Mint(randutil.NewMulberry32(8), clock)

	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, a, b)
	assert.True(t, SameStone(a, Derive(a.Seed)))
}

func TestSameStoneIgnoresIncidentalFields(t *testing.T) {
	a := Derive(77)
	b := a
	b.Name = "Lucky"
	b.CreatedAt = time.Now()
	assert.True(t, SameStone(a, b))

	c := Derive(78)
	assert.False(t, SameStone(a, c))
}

func TestTier(t *testing.T) {
	tests := []struct {
		rarity int
		want   Tier
	}{
		{0, Common},
		{34, Common},
		{35, Uncommon},
		{60, Rare},
		{80, Epic},
		{95, Legendary},
		{100, Legendary},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Qualities{Rarity: tt.rarity}.Tier())
		})
	}
}

func TestDisplayName(t *testing.T) {
	q := Qualities{Color: Jade, Shape: Crystal}
	assert.Equal(t, "Jade Crystal", q.DisplayName())
	q.Name = "Pebbles"
	assert.Equal(t, "Pebbles", q.DisplayName())
}
