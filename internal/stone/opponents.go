package stone

import (
	"github.com/lox/stonefight/internal/randutil"
)

// DefaultQueueSize is the number of opponents generated per ladder cycle.
const DefaultQueueSize = 10

// GenerateOpponents derives count opponent stones from a single generator
// seeded with opponentsSeed. The same seed and count always give the same
// queue in the same order. Opponents carry no creation time.
func GenerateOpponents(opponentsSeed Seed, count int) []Qualities {
	if count <= 0 {
		return nil
	}
	prng := randutil.NewMulberry32(int32(opponentsSeed))
	queue := make([]Qualities, count)
	for i := range queue {
		queue[i] = Derive(Seed(randutil.NewSeed(prng)))
	}
	return queue
}

// Ladder walks an opponent queue with a cursor. When the cursor runs off the
// end the queue is regenerated from the same seed and the cursor resets, so
// the ladder cycles through the same opponents forever.
type Ladder struct {
	seed   Seed
	size   int
	queue  []Qualities
	cursor int
	cycles int
}

// NewLadder creates a ladder over size opponents derived from seed.
func NewLadder(seed Seed, size int) *Ladder {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Ladder{
		seed:  seed,
		size:  size,
		queue: GenerateOpponents(seed, size),
	}
}

// Seed returns the opponents seed.
func (l *Ladder) Seed() Seed { return l.seed }

// Size returns the number of opponents per cycle.
func (l *Ladder) Size() int { return l.size }

// Cursor returns the index of the current opponent.
func (l *Ladder) Cursor() int { return l.cursor }

// Cycles returns how many times the ladder has wrapped.
func (l *Ladder) Cycles() int { return l.cycles }

// Current returns the opponent at the cursor.
func (l *Ladder) Current() Qualities {
	return l.queue[l.cursor]
}

// Upcoming returns up to n opponents starting at the cursor, without wrapping.
// A negative n yields none.
func (l *Ladder) Upcoming(n int) []Qualities {
	n = max(n, 0)
	end := l.cursor + n
	if end > len(l.queue) {
		end = len(l.queue)
	}
	out := make([]Qualities, end-l.cursor)
	copy(out, l.queue[l.cursor:end])
	return out
}

// Advance moves to the next opponent, regenerating the queue on exhaustion.
func (l *Ladder) Advance() Qualities {
	l.cursor++
	if l.cursor >= len(l.queue) {
		l.queue = GenerateOpponents(l.seed, l.size)
		l.cursor = 0
		l.cycles++
	}
	return l.Current()
}

// SetCursor positions the ladder, used when restoring a save. Out of range
// values are wrapped into the queue.
func (l *Ladder) SetCursor(cursor int) {
	if cursor < 0 {
		cursor = 0
	}
	l.cursor = cursor % len(l.queue)
}
