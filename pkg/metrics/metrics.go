// Package metrics exposes prometheus instrumentation for the enrichment
// pipeline. A Registry is optional everywhere; a nil *Registry is a no-op.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the enrichment pipeline
type Registry struct {
	registry *prometheus.Registry

	// Enrichment metrics
	EnrichmentsTotal   *prometheus.CounterVec
	EnrichmentDuration prometheus.Histogram

	// Expansion metrics
	BoxesExpandedTotal *prometheus.CounterVec

	// Collapse metrics
	BoxesMergedTotal     prometheus.Counter
	DanglingWiresDropped prometheus.Counter
}

// NewRegistry creates a registry with all enrichment metrics registered
// against a private prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.EnrichmentsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "semflow_enrichments_total",
			Help: "Total number of enrichment calls by outcome",
		},
		[]string{"status"},
	)

	r.EnrichmentDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "semflow_enrichment_duration_seconds",
			Help:    "Enrichment call duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.BoxesExpandedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "semflow_boxes_expanded_total",
			Help: "Total number of raw boxes expanded by annotation kind",
		},
		[]string{"kind"},
	)

	r.BoxesMergedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "semflow_boxes_merged_total",
			Help: "Total number of unannotated boxes merged by collapse",
		},
	)

	r.DanglingWiresDropped = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "semflow_dangling_wires_dropped_total",
			Help: "Total number of orphaned wires dropped under the drop policy",
		},
	)

	return r
}

// Gatherer exposes the underlying registry for scraping and tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordEnrichment records one enrichment call with its outcome.
func (r *Registry) RecordEnrichment(status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.EnrichmentsTotal.WithLabelValues(status).Inc()
	r.EnrichmentDuration.Observe(duration.Seconds())
}

// RecordExpansion records one box expansion by annotation kind. Kind is
// one of the serialized labels, or "atomic" for unannotated boxes.
func (r *Registry) RecordExpansion(kind string) {
	if r == nil {
		return
	}
	r.BoxesExpandedTotal.WithLabelValues(kind).Inc()
}

// RecordMerges records how many boxes a collapse pass merged away.
func (r *Registry) RecordMerges(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.BoxesMergedTotal.Add(float64(n))
}

// RecordDroppedWire records one orphaned wire removed by the drop policy.
func (r *Registry) RecordDroppedWire() {
	if r == nil {
		return
	}
	r.DanglingWiresDropped.Inc()
}
