package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedFromString(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*31 + 98},
		{"abc", (97*31+98)*31 + 99},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SeedFromString(tt.in))
		})
	}
}

func TestSeedFromStringWraps(t *testing.T) {
	long := "the quick brown fox jumps over the lazy dog, repeatedly and at length"
	assert.Equal(t, SeedFromString(long), SeedFromString(long))
	assert.NotEqual(t, SeedFromString(long), SeedFromString(long+"!"))
}

func TestParseSeed(t *testing.T) {
	assert.Equal(t, int32(42), ParseSeed("42"))
	assert.Equal(t, int32(-7), ParseSeed(" -7 "))
	assert.Equal(t, int32(-1), ParseSeed("4294967295"))
	assert.Equal(t, SeedFromString("pebble"), ParseSeed("pebble"))
}

func TestMix(t *testing.T) {
	assert.Equal(t, Mix(1, 2, 3), Mix(1, 2, 3))
	assert.NotEqual(t, Mix(1, 2, 3), Mix(1, 2, 4))
	assert.NotEqual(t, Mix(1, 2), Mix(2, 1))
}

func TestNewDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
