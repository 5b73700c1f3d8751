package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the uniform random source consumed by the games. Both
// shuffles and single draws (wheel pockets, reel symbols) go through IntN,
// which must return a uniformly distributed value in [0, n).
//
// *rand.Rand from math/rand/v2 satisfies Source.
type Source interface {
	IntN(n int) int
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromConfig returns a deterministic source when seed is non-zero and a
// time-seeded one otherwise.
func NewFromConfig(seed int64) *rand.Rand {
	if seed != 0 {
		return New(seed)
	}
	return New(time.Now().UnixNano())
}

// Sequence is a Source that replays fixed values, wrapping each into range.
// It is intended for tests that need a specific pocket or reel outcome.
type Sequence struct {
	values []int
	next   int
}

// NewSequence returns a Source that yields values in order, cycling when exhausted.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// IntN returns the next scripted value modulo n.
func (s *Sequence) IntN(n int) int {
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return ((v % n) + n) % n
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
