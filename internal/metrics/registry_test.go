package metrics

import (
	"testing"
)

func TestNewRegistryGathersProcessFamilies(t *testing.T) {
	reg := NewRegistry()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected default collectors to expose at least one family")
	}

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	if !names["go_goroutines"] {
		t.Errorf("go_goroutines missing from %d gathered families", len(families))
	}
}

func TestNewPushMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewPushMetrics(reg)

	m.Attempts.Inc()
	m.Attempts.Inc()
	m.Failures.Inc()
	m.Duration.Observe(0.25)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	byName := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch mf.GetName() {
			case "metrics_push_attempts_total", "metrics_push_failures_total":
				byName[mf.GetName()] = metric.GetCounter().GetValue()
			case "metrics_push_duration_seconds":
				byName[mf.GetName()] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	if got := byName["metrics_push_attempts_total"]; got != 2 {
		t.Errorf("attempts = %v, want 2", got)
	}
	if got := byName["metrics_push_failures_total"]; got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := byName["metrics_push_duration_seconds"]; got != 1 {
		t.Errorf("duration samples = %v, want 1", got)
	}
}
