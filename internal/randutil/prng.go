package randutil

import "math"

// Source is anything that yields floats in [0,1).
type Source interface {
	Float64() float64
}

// Mulberry32 is a small 32-bit generator whose whole state is one word. A
// generator created from a given seed always yields the same sequence, which
// is what stone derivation and save files rely on.
type Mulberry32 struct {
	state uint32
	draws int
}

// NewMulberry32 creates a generator from a 32-bit seed.
func NewMulberry32(seed int32) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Uint32 returns the next raw 32-bit value.
func (m *Mulberry32) Uint32() uint32 {
	m.draws++
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns the next value in [0,1). It never returns 1.0 because the
// largest Uint32 divided by 2^32 is strictly below one.
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// Draws reports how many values have been taken from the generator.
func (m *Mulberry32) Draws() int {
	return m.draws
}

// Skip advances the generator by n draws. Used to restore a generator's
// position after loading a save file.
func (m *Mulberry32) Skip(n int) {
	for i := 0; i < n; i++ {
		m.Uint32()
	}
}

// NewSeed draws one value from src and scales it onto the 32-bit range.
// Every new stone seed is minted through this call.
func NewSeed(src Source) int32 {
	f := src.Float64()
	return int32(uint32(math.Floor(f * 4294967296.0)))
}
