package models

import (
	"math"
	"time"

	"gridsense/internal/grid"
)

// StatusReport is the exported status record. Field names are fixed for
// downstream consumers (dashboard, public status feed).
type StatusReport struct {
	Status              grid.Tier `json:"status"`        // Normal | Fault | Critical
	SystemHealth        string    `json:"system_health"` // HEALTHY | ALERT
	StressIndex         float64   `json:"stress_index"`  // one decimal
	FaultAlert          string    `json:"fault_alert"`
	SelfCareAction      string    `json:"self_care_action"`
	RerouteStatus       string    `json:"reroute_status"`
	FuturePrediction    string    `json:"future_prediction"`
	SustainabilityFocus string    `json:"sustainability_focus"`
	Timestamp           string    `json:"timestamp"` // RFC3339, UTC
}

// NewStatusReport stamps a decision with the evaluation time.
func NewStatusReport(rec grid.DecisionRecord, at time.Time) StatusReport {
	return StatusReport{
		Status:              rec.Tier,
		SystemHealth:        rec.SystemHealth(),
		StressIndex:         roundTenth(rec.StressIndex),
		FaultAlert:          rec.FaultAlert,
		SelfCareAction:      rec.SelfCareAction,
		RerouteStatus:       rec.RerouteStatus,
		FuturePrediction:    rec.FuturePrediction,
		SustainabilityFocus: rec.SustainabilityFocus,
		Timestamp:           at.UTC().Format(time.RFC3339),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// ReportEntry is one persisted evaluation with the snapshot that produced it.
type ReportEntry struct {
	ID          string              `json:"id"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
	Snapshot    grid.SensorSnapshot `json:"snapshot"`
	Report      StatusReport        `json:"report"`
}
