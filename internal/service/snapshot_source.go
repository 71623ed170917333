package service

import (
	"math/rand/v2"
	"sync"

	"gridsense/internal/grid"
)

// snapshotSource serializes access to one shared random source so that the
// API and the simulator can draw snapshots concurrently.
type snapshotSource struct {
	mu  sync.Mutex
	rng grid.RandomSource
}

// newSnapshotSource wraps rng; a nil rng gets a randomly seeded PCG.
func newSnapshotSource(rng grid.RandomSource) *snapshotSource {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &snapshotSource{rng: rng}
}

func (s *snapshotSource) generate(critical bool) grid.SensorSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return grid.Generate(critical, s.rng)
}

// chance reports true with probability p.
func (s *snapshotSource) chance(p float64) bool {
	if p <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < p
}
