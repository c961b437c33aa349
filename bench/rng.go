package bench

import (
	"math/rand"
	"sync"
	"time"
)

// SeedSampler draws the per-query noise seed uniformly from [0, poolSize).
//
// Every Query draws a fresh seed, so identical inputs may return different
// recorded runs. Fixing the sampler's own seed makes the sequence of draws,
// and therefore a sequence of queries, reproducible.
//
// Thread-safety: safe for concurrent use.
type SeedSampler struct {
	mu       sync.Mutex
	rng      *rand.Rand
	poolSize int
}

// NewSeedSampler creates a sampler over a pool of poolSize seeds. A nil seed
// seeds the generator from the wall clock.
func NewSeedSampler(seed *int64, poolSize int) *SeedSampler {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return &SeedSampler{
		rng:      rand.New(rand.NewSource(s)),
		poolSize: poolSize,
	}
}

// Next returns the next seed index. Pools of size 0 or 1 always yield 0
// without consuming randomness.
func (s *SeedSampler) Next() int {
	if s.poolSize <= 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(s.poolSize)
}

// PoolSize returns the number of recorded seeds the sampler chooses from.
func (s *SeedSampler) PoolSize() int {
	return s.poolSize
}
