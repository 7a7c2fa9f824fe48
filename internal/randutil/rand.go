package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Deck shuffles and bot decisions use it; anything that must survive a save
// file uses Mulberry32 instead.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Mix folds a list of integers into a single well-mixed 32-bit seed. The same
// inputs always produce the same seed.
func Mix(values ...int64) int32 {
	x := uint64(goldenRatio64)
	for _, v := range values {
		x = mix(x ^ uint64(v))
		x += goldenRatio64
	}
	return int32(uint32(mix(x)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
