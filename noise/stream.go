package noise

import (
	"encoding/binary"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

// DefaultSeed seeds the master stream when the caller provides none.
const DefaultSeed uint64 = 1

// Stream is a seeded source of pseudo-random values with a stable sequence.
// The zero value is not usable; construct streams with NewStream or Fork.
type Stream struct {
	seed uint64
	rng  *rand.Rand
}

// NewStream creates a stream that yields a fixed sequence for the given seed.
func NewStream(seed uint64) *Stream {
	logrus.WithFields(logrus.Fields{
		"function": "NewStream",
		"seed":     seed,
	}).Debug("Creating random stream")

	return &Stream{
		seed: seed,
		rng:  rand.New(rand.NewSource(int64(seed))),
	}
}

// Seed returns the seed this stream was created with.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// Fork derives an independent child stream from the parent seed and a label.
// The child depends only on (seed, label), never on how many values the
// parent has already produced, so consumers can fork in any order.
func (s *Stream) Fork(label string) *Stream {
	buf := make([]byte, 8, 8+len(label))
	binary.BigEndian.PutUint64(buf, s.seed)
	buf = append(buf, label...)
	sum := blake2b.Sum256(buf)
	child := binary.BigEndian.Uint64(sum[:8])

	logrus.WithFields(logrus.Fields{
		"function":   "Fork",
		"parentSeed": s.seed,
		"label":      label,
		"childSeed":  child,
	}).Debug("Forking random stream")

	return NewStream(child)
}

// IntInRange returns a uniformly distributed integer in [min, max], both
// bounds inclusive. Degenerate ranges collapse to min.
func (s *Stream) IntInRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

// Float64InRange returns a uniformly distributed float64 in [min, max).
// Degenerate ranges collapse to min.
func (s *Stream) Float64InRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}
