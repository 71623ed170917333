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

// DefaultPublishTimeout bounds one hand-off to the publisher.
const DefaultPublishTimeout = 5 * time.Second

type AssessmentService struct {
	signals        Signals
	reportRepo     repository.ReportRepo
	eventRepo      repository.EventRepo
	publisher      Publisher
	metrics        Recorder
	log            *logger.Logger
	publishTimeout time.Duration
	now            func() time.Time
}

func NewAssessmentService(
	signals Signals,
	reportRepo repository.ReportRepo,
	eventRepo repository.EventRepo,
	publisher Publisher,
	metrics Recorder,
	log *logger.Logger,
) *AssessmentService {
	if log == nil {
		log = logger.Nop()
	}
	return &AssessmentService{
		signals:        signals,
		reportRepo:     reportRepo,
		eventRepo:      eventRepo,
		publisher:      publisher,
		metrics:        metrics,
		log:            log,
		publishTimeout: DefaultPublishTimeout,
		now:            time.Now,
	}
}

// Assess evaluates the current snapshot, stores the report and hands it to
// the publisher. Once the report is stored the assessment succeeds: publish
// and alert-event failures are logged, not returned.
func (s *AssessmentService) Assess(ctx context.Context) (models.ReportEntry, error) {
	snap, err := s.signals.Current(ctx)
	if err != nil {
		return models.ReportEntry{}, err
	}
	rec, err := grid.Evaluate(snap)
	if err != nil {
		return models.ReportEntry{}, err
	}

	now := s.now().UTC()
	entry := models.ReportEntry{
		ID:          uuid.NewString(),
		EvaluatedAt: now,
		Snapshot:    snap,
		Report:      models.NewStatusReport(rec, now),
	}
	if err := s.reportRepo.Append(ctx, entry); err != nil {
		return models.ReportEntry{}, fmt.Errorf("persist report: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveReport(entry.Report)
	}

	s.publish(ctx, entry)

	if err := s.logAlert(ctx, entry); err != nil {
		s.log.Errorw("alert_event_append_failed", "report_id", entry.ID, "tier", entry.Report.Status, "err", err)
	}
	return entry, nil
}

// publish runs detached from the caller's cancellation and is bounded by
// publishTimeout, so a slow sink cannot outlive the HTTP write deadline.
func (s *AssessmentService) publish(ctx context.Context, e models.ReportEntry) {
	if s.publisher == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pctx, e.Report); err != nil {
		s.log.Warnw("report_publish_failed", "report_id", e.ID, "err", err)
		if s.metrics != nil {
			s.metrics.PublishFailed()
		}
	}
}

// logAlert appends a CRITICAL or FAULT event for non-normal tiers.
func (s *AssessmentService) logAlert(ctx context.Context, e models.ReportEntry) error {
	var typ string
	switch e.Report.Status {
	case grid.TierCritical:
		typ = models.EventCritical
	case grid.TierFault:
		typ = models.EventFault
	default:
		return nil
	}
	return s.eventRepo.Append(ctx, models.GridEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  e.EvaluatedAt,
		Type:        typ,
		Description: e.Report.FaultAlert,
		Metadata: map[string]any{
			"report_id":    e.ID,
			"stress_index": e.Report.StressIndex,
			"topology":     e.Snapshot.CurrentTopology,
		},
	})
}

// Evaluate runs the engine on a caller-supplied snapshot. Nothing is stored.
func (s *AssessmentService) Evaluate(_ context.Context, snap grid.SensorSnapshot) (models.StatusReport, error) {
	rec, err := grid.Evaluate(snap)
	if err != nil {
		return models.StatusReport{}, err
	}
	return models.NewStatusReport(rec, s.now()), nil
}

// Latest returns the most recent stored report, assessing the current
// snapshot first if nothing has been stored yet.
func (s *AssessmentService) Latest(ctx context.Context) (models.ReportEntry, error) {
	e, ok, err := s.reportRepo.Latest(ctx)
	if err != nil {
		return models.ReportEntry{}, fmt.Errorf("load latest report: %w", err)
	}
	if ok {
		return e, nil
	}
	return s.Assess(ctx)
}
