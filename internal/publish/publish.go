// Package publish delivers finished status reports to external consumers:
// a local JSON file read by dashboards and a remote repository that serves
// the public status feed.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gridsense/internal/logger"
	"gridsense/internal/models"
)

// Sink is one delivery target.
type Sink interface {
	Name() string
	Publish(ctx context.Context, r models.StatusReport) error
}

// encode renders r the way every sink stores it: indented JSON with a
// trailing newline.
func encode(r models.StatusReport) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode status report: %w", err)
	}
	return append(b, '\n'), nil
}

// Fanout publishes to every sink in order. A failing sink is logged and does
// not stop the others; all failures are returned joined.
type Fanout struct {
	sinks []Sink
	log   *logger.Logger
}

func NewFanout(log *logger.Logger, sinks ...Sink) *Fanout {
	if log == nil {
		log = logger.Nop()
	}
	return &Fanout{sinks: sinks, log: log}
}

func (f *Fanout) Publish(ctx context.Context, r models.StatusReport) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, r); err != nil {
			f.log.Errorw("publish_failed", "sink", s.Name(), "status", r.Status, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		f.log.Debugw("published", "sink", s.Name(), "status", r.Status, "timestamp", r.Timestamp)
	}
	return errors.Join(errs...)
}

// Len reports the number of configured sinks.
func (f *Fanout) Len() int { return len(f.sinks) }
