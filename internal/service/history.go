package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gridsense/internal/grid"
	"gridsense/internal/models"
	"gridsense/internal/repository"
)

type HistoryService struct {
	reportRepo repository.ReportRepo
	eventRepo  repository.EventRepo
}

func NewHistoryService(reportRepo repository.ReportRepo, eventRepo repository.EventRepo) *HistoryService {
	return &HistoryService{reportRepo: reportRepo, eventRepo: eventRepo}
}

var (
	ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	ErrUnknownTier      = errors.New("unknown tier: must be Normal, Fault, or Critical")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeRange converts both bounds to UTC and validates their order.
func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	from, to = normalizeToUTC(from), normalizeToUTC(to)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return from, to, nil
}

// parseTier accepts a tier name in any case; empty means no filter.
func parseTier(s string) (grid.Tier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, t := range []grid.Tier{grid.TierNormal, grid.TierFault, grid.TierCritical} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

func (s *HistoryService) Reports(ctx context.Context, f ReportFilter) ([]models.ReportEntry, error) {
	from, to, err := normalizeRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	tier, err := parseTier(f.Tier)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.List(ctx, repository.ReportQuery{From: from, To: to, Tier: tier, Limit: f.Limit})
}

func (s *HistoryService) Events(ctx context.Context, f LogFilter) ([]models.GridEvent, error) {
	from, to, err := normalizeRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	typ := strings.TrimSpace(strings.ToUpper(f.Type))
	return s.eventRepo.List(ctx, from, to, typ)
}
