package observability

import (
	"errors"
	"fmt"

	"github.com/aretw0/dictshape/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
)

// Validation result labels.
const (
	ResultOK             = "ok"
	ResultMismatchedKeys = "mismatched_keys"
	ResultBadType        = "bad_type"
	ResultError          = "error"
)

// Metrics holds the dictshape collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	depth       prometheus.Histogram
	merges      *prometheus.CounterVec
	mergeInputs prometheus.Histogram
	mergeKeys   prometheus.Histogram
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dictshape_validations_total",
				Help: "Records validated, by result",
			},
			[]string{"result"},
		),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dictshape_validation_depth",
			Help:    "Nesting depth of templates used for validation",
			Buckets: prometheus.LinearBuckets(1, 1, 8),
		}),
		merges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dictshape_merges_total",
				Help: "Merges performed, by strategy",
			},
			[]string{"strategy"},
		),
		mergeInputs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dictshape_merge_inputs",
			Help:    "Number of mappings per merge",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		mergeKeys: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dictshape_merge_keys",
			Help:    "Number of distinct keys per merge result",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	m.registry.MustRegister(m.validations, m.depth, m.merges, m.mergeInputs, m.mergeKeys)
	return m
}

// ObserveValidation records one validation outcome as returned by schema.Check.
func (m *Metrics) ObserveValidation(depth int, err error) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(resultLabel(err)).Inc()
	m.depth.Observe(float64(depth))
}

// ObserveMerge records one merge.
func (m *Metrics) ObserveMerge(strategy string, inputs, keys int) {
	if m == nil {
		return
	}
	m.merges.WithLabelValues(strategy).Inc()
	m.mergeInputs.Observe(float64(inputs))
	m.mergeKeys.Observe(float64(keys))
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.Gatherers{}
	}
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format, suitable
// for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, schema.ErrMismatchedKeys):
		return ResultMismatchedKeys
	case errors.Is(err, schema.ErrBadType):
		return ResultBadType
	}
	return ResultError
}
