// Package observability holds process-local run metrics and tracing for
// analysis runs. Metrics stay in-process and are dumped on demand; no
// scrape endpoint is exposed.
package observability

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	metricFilesAnalyzed = "solstat_files_analyzed_total"
	metricFailures      = "solstat_file_failures_total"
	metricFileDuration  = "solstat_file_duration_seconds"

	labelKind = "kind"
)

// durationBucketBoundaries covers per-file analysis latencies from sub-ms
// parses to multi-second pathological files.
var durationBucketBoundaries = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5,
}

// RunMetrics holds Prometheus instruments for one analysis run.
// All methods are safe to call on a nil receiver (no-op).
type RunMetrics struct {
	registry      *prometheus.Registry
	filesAnalyzed prometheus.Counter
	failures      *prometheus.CounterVec
	fileDuration  prometheus.Histogram
}

// NewRunMetrics creates run metric instruments on a private registry.
func NewRunMetrics() *RunMetrics {
	registry := prometheus.NewRegistry()

	rm := &RunMetrics{
		registry: registry,
		filesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricFilesAnalyzed,
			Help: "Total files successfully analyzed.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricFailures,
			Help: "Per-file failures by kind.",
		}, []string{labelKind}),
		fileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricFileDuration,
			Help:    "Per-file analysis duration in seconds.",
			Buckets: durationBucketBoundaries,
		}),
	}

	registry.MustRegister(rm.filesAnalyzed, rm.failures, rm.fileDuration)

	return rm
}

// ObserveFile records one successfully analyzed file and its duration.
func (rm *RunMetrics) ObserveFile(elapsed time.Duration) {
	if rm == nil {
		return
	}

	rm.filesAnalyzed.Inc()
	rm.fileDuration.Observe(elapsed.Seconds())
}

// RecordFailure records one per-file failure by kind.
func (rm *RunMetrics) RecordFailure(kind string) {
	if rm == nil {
		return
	}

	rm.failures.WithLabelValues(kind).Inc()
}

// Dump writes all gathered metrics in the Prometheus text format.
func (rm *RunMetrics) Dump(writer io.Writer) error {
	if rm == nil {
		return nil
	}

	families, err := rm.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	encoder := expfmt.NewEncoder(writer, expfmt.NewFormat(expfmt.TypeTextPlain))

	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("encode metric family %s: %w", family.GetName(), err)
		}
	}

	return nil
}
