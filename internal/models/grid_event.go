package models

import "time"

// Event types written to the operational log.
const (
	EventSignalsRandomized = "SIGNALS_RANDOMIZED"
	EventSignalsOverridden = "SIGNALS_OVERRIDDEN"
	EventCritical          = "CRITICAL"
	EventFault             = "FAULT"
)

// GridEvent is a single log entry.
type GridEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SIGNALS_RANDOMIZED | SIGNALS_OVERRIDDEN | CRITICAL | FAULT
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
