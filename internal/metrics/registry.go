// Package metrics owns the process metric registry and the metric bundles
// registered on it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// LatencySecondsBuckets is the fine-grained bucket layout used for latency
// histograms.
var LatencySecondsBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45, 0.5,
	0.6, 0.7, 0.8, 0.9, 1.0, 1.2, 1.4, 1.6, 1.8, 2.0, 2.5, 3.0, 3.5, 4.0, 5.0,
	6.0, 6.5, 7.0, 7.5, 8.0, 8.5, 9.0, 9.5, 10, 15, 20, 25, 30, 35, 40, 45,
	50, 60, 70, 80, 90, 100, 120, 140, 160, 180, 200, 250, 300, 350, 400,
}

// NewRegistry builds the process registry with the Go runtime and process
// collectors installed.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// PushMetrics instruments the push scheduler itself.
type PushMetrics struct {
	Attempts prometheus.Counter
	Failures prometheus.Counter
	Duration prometheus.Histogram
}

// NewPushMetrics declares the scheduler metrics and registers them on reg.
func NewPushMetrics(reg prometheus.Registerer) *PushMetrics {
	m := &PushMetrics{
		Attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrics_push_attempts_total",
			Help: "Total number of metrics push attempts",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrics_push_failures_total",
			Help: "Total number of failed metrics push attempts",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "metrics_push_duration_seconds",
			Help:    "Wall time of a successful metrics push attempt",
			Buckets: LatencySecondsBuckets,
		}),
	}
	reg.MustRegister(m.Attempts, m.Failures, m.Duration)
	return m
}
