package checkout

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler produces the simulated gateway jitter: a uniform delay draw per
// operation and a Bernoulli draw for spurious validation failures.
type Sampler interface {
	Delay(min, max time.Duration) time.Duration
	Fail(probability float64) bool
}

type randSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler wraps the given source. Tests pass a fixed-seed source to get
// reproducible draws.
func NewSampler(src rand.Source) Sampler {
	return &randSampler{rng: rand.New(src)}
}

// DefaultSampler seeds from the wall clock.
func DefaultSampler() Sampler {
	return NewSampler(rand.NewSource(time.Now().UnixNano()))
}

func (s *randSampler) Delay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + time.Duration(s.rng.Int63n(int64(max-min)+1))
}

func (s *randSampler) Fail(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < probability
}
