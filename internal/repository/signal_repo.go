package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gridsense/internal/grid"
)

type SignalSQLite struct {
	db *sql.DB
}

func NewSignalSQLite(db *sql.DB) *SignalSQLite {
	return &SignalSQLite{db: db}
}

const (
	signalRowID = 1

	upsertSignalsSQL = `
		INSERT INTO grid_signals (id, temperature, humidity, age_score, load_pct, fault, topology, renewable_mw, weather, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temperature=excluded.temperature,
			humidity=excluded.humidity,
			age_score=excluded.age_score,
			load_pct=excluded.load_pct,
			fault=excluded.fault,
			topology=excluded.topology,
			renewable_mw=excluded.renewable_mw,
			weather=excluded.weather,
			updated_at=excluded.updated_at
	`

	selectSignalsSQL = `
		SELECT temperature, humidity, age_score, load_pct, fault, topology, renewable_mw, weather
		FROM grid_signals WHERE id=?
	`
)

// Save replaces the current snapshot row (id always 1).
func (r *SignalSQLite) Save(ctx context.Context, s grid.SensorSnapshot, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertSignalsSQL,
		signalRowID,
		s.Temperature,
		s.Humidity,
		s.ComponentAgeScore,
		s.LoadPercentage,
		s.FaultSignal,
		string(s.CurrentTopology),
		s.RenewableInput,
		s.WeatherScore,
		formatTime(at),
	)
	return err
}

// Load fetches the current snapshot row.
func (r *SignalSQLite) Load(ctx context.Context) (grid.SensorSnapshot, bool, error) {
	var (
		s        grid.SensorSnapshot
		topology string
	)
	err := r.db.QueryRowContext(ctx, selectSignalsSQL, signalRowID).Scan(
		&s.Temperature,
		&s.Humidity,
		&s.ComponentAgeScore,
		&s.LoadPercentage,
		&s.FaultSignal,
		&topology,
		&s.RenewableInput,
		&s.WeatherScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return grid.SensorSnapshot{}, false, nil
		}
		return grid.SensorSnapshot{}, false, err
	}
	s.CurrentTopology = grid.Topology(topology)
	return s, true, nil
}
