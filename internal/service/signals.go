package service

import (
	"context"
	"fmt"
	"time"

	"gridsense/internal/grid"
	"gridsense/internal/logger"
	"gridsense/internal/models"
	"gridsense/internal/repository"

	"github.com/google/uuid"
)

type SignalService struct {
	signalRepo repository.SignalRepo
	eventRepo  repository.EventRepo
	src        *snapshotSource
	log        *logger.Logger
	now        func() time.Time
}

func NewSignalService(signalRepo repository.SignalRepo, eventRepo repository.EventRepo, src *snapshotSource, log *logger.Logger) *SignalService {
	if src == nil {
		src = newSnapshotSource(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SignalService{
		signalRepo: signalRepo,
		eventRepo:  eventRepo,
		src:        src,
		log:        log,
		now:        time.Now,
	}
}

// Current returns the stored snapshot. If none is stored yet, a nominal one
// is generated and persisted.
func (s *SignalService) Current(ctx context.Context) (grid.SensorSnapshot, error) {
	snap, ok, err := s.signalRepo.Load(ctx)
	if err != nil {
		return grid.SensorSnapshot{}, fmt.Errorf("load signals: %w", err)
	}
	if ok {
		return snap, nil
	}
	snap = s.src.generate(false)
	if err := s.signalRepo.Save(ctx, snap, s.now().UTC()); err != nil {
		return grid.SensorSnapshot{}, fmt.Errorf("save initial signals: %w", err)
	}
	return snap, nil
}

// Randomize replaces the current snapshot with a generated one and logs it.
func (s *SignalService) Randomize(ctx context.Context, critical bool) (grid.SensorSnapshot, error) {
	now := s.now().UTC()
	snap := s.src.generate(critical)

	if err := s.signalRepo.Save(ctx, snap, now); err != nil {
		return grid.SensorSnapshot{}, fmt.Errorf("save signals: %w", err)
	}

	regime := "nominal"
	if critical {
		regime = "critical"
	}
	s.appendEvent(ctx, models.GridEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        models.EventSignalsRandomized,
		Description: "Signals randomized (" + regime + " regime)",
		Metadata:    map[string]any{"regime": regime, "snapshot": snap},
	})
	return snap, nil
}

// Override applies p on top of the current snapshot. The result must pass
// grid validation; out-of-range values are rejected and nothing is stored.
func (s *SignalService) Override(ctx context.Context, p SignalPatch) (grid.SensorSnapshot, error) {
	cur, err := s.Current(ctx)
	if err != nil {
		return grid.SensorSnapshot{}, err
	}
	next := p.apply(cur)
	if err := next.Validate(); err != nil {
		return grid.SensorSnapshot{}, err
	}

	now := s.now().UTC()
	if err := s.signalRepo.Save(ctx, next, now); err != nil {
		return grid.SensorSnapshot{}, fmt.Errorf("save signals: %w", err)
	}

	s.appendEvent(ctx, models.GridEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        models.EventSignalsOverridden,
		Description: "Signals overridden by operator",
		Metadata:    map[string]any{"before": cur, "after": next},
	})
	return next, nil
}

// appendEvent logs a failed append; the snapshot is already stored by then.
func (s *SignalService) appendEvent(ctx context.Context, ev models.GridEvent) {
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Errorw("signal_event_append_failed", "type", ev.Type, "err", err)
	}
}
