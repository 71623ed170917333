package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gridsense/internal/grid"
	"gridsense/internal/models"
	"gridsense/internal/repository"
)

// ---- Repository stubs shared by service tests ----

type signalRepoStub struct {
	stored  grid.SensorSnapshot
	has     bool
	saves   []grid.SensorSnapshot
	loadErr error
	saveErr error
}

func (s *signalRepoStub) Save(_ context.Context, snap grid.SensorSnapshot, _ time.Time) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, snap)
	s.stored, s.has = snap, true
	return nil
}

func (s *signalRepoStub) Load(_ context.Context) (grid.SensorSnapshot, bool, error) {
	return s.stored, s.has, s.loadErr
}

type reportRepoStub struct {
	entries   []models.ReportEntry
	lastQuery repository.ReportQuery
	appendErr error
}

func (r *reportRepoStub) Append(_ context.Context, e models.ReportEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *reportRepoStub) Latest(_ context.Context) (models.ReportEntry, bool, error) {
	if len(r.entries) == 0 {
		return models.ReportEntry{}, false, nil
	}
	return r.entries[len(r.entries)-1], true, nil
}

func (r *reportRepoStub) List(_ context.Context, q repository.ReportQuery) ([]models.ReportEntry, error) {
	r.lastQuery = q
	return r.entries, nil
}

type eventRepoStub struct {
	appends   []models.GridEvent
	appendErr error
	listed    struct {
		from, to time.Time
		typ      string
	}
}

func (e *eventRepoStub) Append(_ context.Context, ev models.GridEvent) error {
	if e.appendErr != nil {
		return e.appendErr
	}
	e.appends = append(e.appends, ev)
	return nil
}

func (e *eventRepoStub) List(_ context.Context, from, to time.Time, typ string) ([]models.GridEvent, error) {
	e.listed.from, e.listed.to, e.listed.typ = from, to, typ
	return e.appends, nil
}

func (e *eventRepoStub) types() []string {
	out := make([]string, 0, len(e.appends))
	for _, ev := range e.appends {
		out = append(out, ev.Type)
	}
	sort.Strings(out)
	return out
}

// ---- Collaborator stubs ----

type publisherStub struct {
	got []models.StatusReport
	err error

	// context seen by the last Publish call
	ctxErr   error
	deadline time.Time
}

func (p *publisherStub) Publish(ctx context.Context, r models.StatusReport) error {
	p.got = append(p.got, r)
	p.ctxErr = ctx.Err()
	p.deadline, _ = ctx.Deadline()
	return p.err
}

type recorderStub struct {
	observed []models.StatusReport
	failures int
}

func (r *recorderStub) ObserveReport(rep models.StatusReport) {
	r.observed = append(r.observed, rep)
}

func (r *recorderStub) PublishFailed() {
	r.failures++
}

var errStub = errors.New("stub failure")

// fixedClock returns a now func pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// criticalSnapshot is a Critical snapshot with stress 90.5 and a fault.
func criticalSnapshot() grid.SensorSnapshot {
	return grid.SensorSnapshot{
		Temperature:       95,
		Humidity:          90,
		ComponentAgeScore: 85,
		LoadPercentage:    95,
		FaultSignal:       1,
		CurrentTopology:   grid.TopologyNormal,
		RenewableInput:    900,
		WeatherScore:      0.7,
	}
}

// calmSnapshot is a Normal, unloaded snapshot with stress 51.0.
func calmSnapshot() grid.SensorSnapshot {
	return grid.SensorSnapshot{
		Temperature:       60,
		Humidity:          50,
		ComponentAgeScore: 40,
		LoadPercentage:    50,
		FaultSignal:       0,
		CurrentTopology:   grid.TopologyNormal,
		RenewableInput:    1000,
		WeatherScore:      0.6,
	}
}
