// Package metrics renders evaluation counters in the Prometheus text
// exposition format.
package metrics

import (
	"io"
	"net/http"
	"sync"

	"gridsense/internal/grid"
	"gridsense/internal/models"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Metric names exposed on /metrics.
const (
	EvaluationsTotal     = "gridsense_evaluations_total"
	StressIndexGauge     = "gridsense_stress_index"
	PublishFailuresTotal = "gridsense_publish_failures_total"
)

var tiers = []grid.Tier{grid.TierNormal, grid.TierFault, grid.TierCritical}

// Registry accumulates counters in memory. The zero value is not usable;
// call New.
type Registry struct {
	mu              sync.Mutex
	evaluations     map[grid.Tier]uint64
	stress          float64
	publishFailures uint64
}

func New() *Registry {
	return &Registry{evaluations: make(map[grid.Tier]uint64, len(tiers))}
}

// ObserveReport counts one evaluation and records its stress index.
func (r *Registry) ObserveReport(rep models.StatusReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evaluations[rep.Status]++
	r.stress = rep.StressIndex
}

func (r *Registry) PublishFailed() {
	r.mu.Lock()
	r.publishFailures++
	r.mu.Unlock()
}

// Families snapshots the current values as metric families. Every tier is
// present even when its count is zero.
func (r *Registry) Families() []*dto.MetricFamily {
	r.mu.Lock()
	defer r.mu.Unlock()

	evals := &dto.MetricFamily{
		Name: proto.String(EvaluationsTotal),
		Help: proto.String("Decision engine evaluations by status tier."),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, t := range tiers {
		evals.Metric = append(evals.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: proto.String("tier"), Value: proto.String(string(t))}},
			Counter: &dto.Counter{Value: proto.Float64(float64(r.evaluations[t]))},
		})
	}

	return []*dto.MetricFamily{
		evals,
		{
			Name:   proto.String(StressIndexGauge),
			Help:   proto.String("Stress index of the most recent evaluation."),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(r.stress)}}},
		},
		{
			Name:   proto.String(PublishFailuresTotal),
			Help:   proto.String("Status reports that at least one sink failed to publish."),
			Type:   dto.MetricType_COUNTER.Enum(),
			Metric: []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(float64(r.publishFailures))}}},
		},
	}
}

// WriteText writes every family in text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	for _, mf := range r.Families() {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the registry as text/plain exposition.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
		if err := r.WriteText(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
