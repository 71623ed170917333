package repository

import (
	"context"
	"database/sql"
	"time"

	"gridsense/internal/grid"
	"gridsense/internal/models"
)

// TimeLayout is the fixed-width UTC text format used for every timestamp
// column, so that string comparison matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SignalRepo holds the single current snapshot that operators adjust.
type SignalRepo interface {
	Save(ctx context.Context, s grid.SensorSnapshot, at time.Time) error
	// Load reports ok=false when no snapshot has been stored yet.
	Load(ctx context.Context) (s grid.SensorSnapshot, ok bool, err error)
}

// ReportQuery filters report history. Zero values disable a filter.
type ReportQuery struct {
	From  time.Time
	To    time.Time
	Tier  grid.Tier
	Limit int
}

type ReportRepo interface {
	Append(ctx context.Context, e models.ReportEntry) error
	Latest(ctx context.Context) (e models.ReportEntry, ok bool, err error)
	List(ctx context.Context, q ReportQuery) ([]models.ReportEntry, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.GridEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.GridEvent, error)
}

type Repository struct {
	SignalRepo SignalRepo
	ReportRepo ReportRepo
	EventRepo  EventRepo
	Auth       Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SignalRepo: NewSignalSQLite(db),
		ReportRepo: NewReportSQLite(db),
		EventRepo:  NewEventSQLite(db),
		Auth:       NewUserRepository(db),
	}
}
