// Package metrics records fetch, import and projection counters on a private
// Prometheus registry. A CLI run writes them out in the textfile-collector format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	registry = prometheus.NewRegistry()

	fetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_league",
		Name:      "source_fetches_total",
		Help:      "Upstream fetches by source kind and outcome.",
	}, []string{"source", "outcome"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "golf_league",
		Name:      "source_fetch_duration_seconds",
		Help:      "Latency of upstream fetches.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	}, []string{"source"})

	imports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_league",
		Name:      "results_saved_total",
		Help:      "Tournament results saved, by origin.",
	}, []string{"origin"})

	diagnostics = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golf_league",
		Name:      "projection_diagnostics_total",
		Help:      "Live projection diagnostics raised, by code.",
	}, []string{"code"})

	needsReview = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "golf_league",
		Name:      "results_needs_review",
		Help:      "Golfers awaiting manual classification after the last import.",
	})
)

func init() {
	registry.MustRegister(fetches, fetchDuration, imports, diagnostics, needsReview)
}

// Registry returns the registry all collectors are registered on
func Registry() *prometheus.Registry {
	return registry
}

// ObserveFetch records one upstream fetch that started at start
func ObserveFetch(source string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	fetches.WithLabelValues(source, outcome).Inc()
	fetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// IncImport counts a saved set of tournament results
func IncImport(origin string) {
	imports.WithLabelValues(origin).Inc()
}

// IncDiagnostic counts a raised projection diagnostic
func IncDiagnostic(code string) {
	diagnostics.WithLabelValues(code).Inc()
}

// SetNeedsReview records how many golfers still need classification
func SetNeedsReview(n int) {
	needsReview.Set(float64(n))
}

// WriteTextfile writes every metric to path for a node-exporter textfile collector
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
