package simulator

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Strategy decides how long a simulated round trip takes and whether it fails.
type Strategy interface {
	// Delay returns a duration in [min, max]. Equal bounds mean a fixed delay.
	Delay(min, max time.Duration) time.Duration
	// ShouldFail reports whether an operation with the given failure rate fails this time.
	ShouldFail(rate float64) bool
	// Pick returns an index in [0, n).
	Pick(n int) int
}

type randomStrategy struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns the production strategy backed by a PCG source seeded from the runtime.
func NewRandom() Strategy {
	return &randomStrategy{
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec
	}
}

func (r *randomStrategy) Delay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return min + time.Duration(r.rnd.Int64N(int64(max-min)+1))
}

func (r *randomStrategy) ShouldFail(rate float64) bool {
	if rate <= 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rnd.Float64() < rate
}

func (r *randomStrategy) Pick(n int) int {
	if n <= 1 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rnd.IntN(n)
}

// Fixed is a deterministic Strategy. It waits Wait for every operation and fails
// every operation whose failure rate is above zero when Fail is set, so
// operations configured never to fail keep succeeding.
type Fixed struct {
	Wait  time.Duration
	Fail  bool
	Index int
}

func (f Fixed) Delay(_, _ time.Duration) time.Duration {
	return f.Wait
}

func (f Fixed) ShouldFail(rate float64) bool {
	return f.Fail && rate > 0
}

func (f Fixed) Pick(n int) int {
	if n <= 0 {
		return 0
	}

	return f.Index % n
}
