package service

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"gridsense/internal/logger"
)

// DefaultCriticalRatio is the share of simulator ticks drawn from the
// critical regime when no ratio is configured.
const DefaultCriticalRatio = 0.2

// SimulatorService periodically replaces the current snapshot with a
// synthetic one and assesses it, standing in for a live sensor feed.
type SimulatorService struct {
	signals Signals
	assess  Assessment
	src     *snapshotSource
	ratio   atomic.Uint64 // float64 bits
	log     *logger.Logger
}

// NewSimulatorService returns a simulator drawing the critical regime with
// probability criticalRatio on each tick.
func NewSimulatorService(signals Signals, assess Assessment, src *snapshotSource, criticalRatio float64, log *logger.Logger) *SimulatorService {
	if src == nil {
		src = newSnapshotSource(nil)
	}
	s := &SimulatorService{signals: signals, assess: assess, src: src, log: log}
	s.SetCriticalRatio(criticalRatio)
	return s
}

// SetCriticalRatio changes the critical-regime probability. Values are
// clamped to [0, 1]; NaN resets to DefaultCriticalRatio.
func (s *SimulatorService) SetCriticalRatio(ratio float64) {
	switch {
	case math.IsNaN(ratio):
		ratio = DefaultCriticalRatio
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	s.ratio.Store(math.Float64bits(ratio))
}

// CriticalRatio returns the current critical-regime probability.
func (s *SimulatorService) CriticalRatio() float64 {
	return math.Float64frombits(s.ratio.Load())
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.step(ctx); err != nil && ctx.Err() == nil && s.log != nil {
				s.log.Warnw("simulator_step_failed", "err", err)
			}
		}
	}
}

// step draws the regime, stores a fresh snapshot and assesses it.
func (s *SimulatorService) step(ctx context.Context) error {
	critical := s.src.chance(s.CriticalRatio())
	if _, err := s.signals.Randomize(ctx, critical); err != nil {
		return err
	}
	entry, err := s.assess.Assess(ctx)
	if err != nil {
		return err
	}
	if s.log != nil {
		s.log.Debugw("simulator_assessed",
			"critical_regime", critical,
			"tier", entry.Report.Status,
			"stress_index", entry.Report.StressIndex,
		)
	}
	return nil
}
