package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gridsense/internal/models"

	"github.com/google/uuid"
)

type ReportSQLite struct {
	db *sql.DB
}

func NewReportSQLite(db *sql.DB) *ReportSQLite { return &ReportSQLite{db: db} }

const (
	insertReportSQL = `
		INSERT INTO grid_reports (id, evaluated_at, tier, stress, snapshot, report)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectReportsSQL = `SELECT id, evaluated_at, snapshot, report FROM grid_reports`

	defaultReportLimit = 100
	maxReportLimit     = 1000
)

// Append inserts a report entry. If ID or EvaluatedAt are empty, they’re set.
func (r *ReportSQLite) Append(ctx context.Context, e models.ReportEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.EvaluatedAt.IsZero() {
		e.EvaluatedAt = time.Now()
	}

	snap, err := json.Marshal(e.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	rep, err := json.Marshal(e.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertReportSQL,
		e.ID,
		formatTime(e.EvaluatedAt),
		string(e.Report.Status),
		e.Report.StressIndex,
		string(snap),
		string(rep),
	)
	if err != nil {
		return fmt.Errorf("insert report %s: %w", e.ID, err)
	}
	return nil
}

// Latest returns the most recently evaluated entry.
func (r *ReportSQLite) Latest(ctx context.Context) (models.ReportEntry, bool, error) {
	row := r.db.QueryRowContext(ctx, selectReportsSQL+" ORDER BY evaluated_at DESC LIMIT 1")
	e, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ReportEntry{}, false, nil
		}
		return models.ReportEntry{}, false, err
	}
	return e, true, nil
}

// List returns entries filtered by [From, To] (inclusive) and tier, newest first.
func (r *ReportSQLite) List(ctx context.Context, q ReportQuery) ([]models.ReportEntry, error) {
	var (
		conds []string
		args  []any
	)
	if !q.From.IsZero() {
		conds = append(conds, "evaluated_at >= ?")
		args = append(args, formatTime(q.From))
	}
	if !q.To.IsZero() {
		conds = append(conds, "evaluated_at <= ?")
		args = append(args, formatTime(q.To))
	}
	if q.Tier != "" {
		conds = append(conds, "tier = ?")
		args = append(args, string(q.Tier))
	}

	stmt := selectReportsSQL
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	stmt += " ORDER BY evaluated_at DESC LIMIT ?"
	args = append(args, clampLimit(q.Limit))

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ReportEntry, 0, 32)
	for rows.Next() {
		e, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (models.ReportEntry, error) {
	var (
		e                  models.ReportEntry
		at, snap, reportJS string
	)
	if err := row.Scan(&e.ID, &at, &snap, &reportJS); err != nil {
		return models.ReportEntry{}, err
	}
	t, err := parseTime(at)
	if err != nil {
		return models.ReportEntry{}, fmt.Errorf("report %s: evaluated_at: %w", e.ID, err)
	}
	e.EvaluatedAt = t
	if err := json.Unmarshal([]byte(snap), &e.Snapshot); err != nil {
		return models.ReportEntry{}, fmt.Errorf("report %s: snapshot: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(reportJS), &e.Report); err != nil {
		return models.ReportEntry{}, fmt.Errorf("report %s: report: %w", e.ID, err)
	}
	return e, nil
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return defaultReportLimit
	case n > maxReportLimit:
		return maxReportLimit
	default:
		return n
	}
}
