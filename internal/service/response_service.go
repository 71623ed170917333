package service

import (
	"time"

	"gridsense/internal/grid"
)

// SignalPatch overrides individual readings of the current snapshot.
// Nil fields keep their current value.
type SignalPatch struct {
	Temperature       *int
	Humidity          *int
	ComponentAgeScore *int
	LoadPercentage    *int
	FaultSignal       *int
	CurrentTopology   *grid.Topology
	RenewableInput    *int
	WeatherScore      *float64
}

// apply returns s with every non-nil patch field replaced.
func (p SignalPatch) apply(s grid.SensorSnapshot) grid.SensorSnapshot {
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.Humidity != nil {
		s.Humidity = *p.Humidity
	}
	if p.ComponentAgeScore != nil {
		s.ComponentAgeScore = *p.ComponentAgeScore
	}
	if p.LoadPercentage != nil {
		s.LoadPercentage = *p.LoadPercentage
	}
	if p.FaultSignal != nil {
		s.FaultSignal = *p.FaultSignal
	}
	if p.CurrentTopology != nil {
		s.CurrentTopology = *p.CurrentTopology
	}
	if p.RenewableInput != nil {
		s.RenewableInput = *p.RenewableInput
	}
	if p.WeatherScore != nil {
		s.WeatherScore = *p.WeatherScore
	}
	return s
}

// ReportFilter supports report history filtering by time range and tier.
type ReportFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Tier  string    // "", "Normal", "Fault", "Critical" (case-insensitive)
	Limit int       // 0 means repository default
}

// LogFilter supports event filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SIGNALS_RANDOMIZED", "SIGNALS_OVERRIDDEN", "CRITICAL", "FAULT"
}
