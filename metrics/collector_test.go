package metrics

import (
	"testing"
	"time"
)

func TestCollectorKeepsLatestValue(t *testing.T) {
	c := NewCollector()

	c.Observe(MetricRequestDuration, 120)
	c.Observe(MetricRequestDuration, 340)

	value, ok := c.Get(MetricRequestDuration)
	if !ok {
		t.Fatalf("Expected metric to be present")
	}
	if value != 340 {
		t.Errorf("Expected latest value 340, got %v", value)
	}
}

func TestRate(t *testing.T) {
	if got := Rate(MetricRequestDuration, 100); got != RatingGood {
		t.Errorf("Expected good, got %s", got)
	}
	if got := Rate(MetricRequestDuration, 1000); got != RatingNeedsImprovement {
		t.Errorf("Expected needs-improvement, got %s", got)
	}
	if got := Rate(MetricRequestDuration, 5000); got != RatingPoor {
		t.Errorf("Expected poor, got %s", got)
	}
	if got := Rate("never_heard_of_it", 1); got != RatingUnknown {
		t.Errorf("Expected unknown, got %s", got)
	}
}

func TestIsUnder(t *testing.T) {
	c := NewCollector()
	if c.IsUnder(MetricRequestDuration, 2000) {
		t.Errorf("Unobserved metric should not pass threshold checks")
	}
	c.ObserveDuration(MetricRequestDuration, 150*time.Millisecond)
	if !c.IsUnder(MetricRequestDuration, 2000) {
		t.Errorf("Expected 150ms to be under 2000ms")
	}
}

func TestSnapshotRecommendations(t *testing.T) {
	c := NewCollector()
	c.Observe(MetricRequestDuration, 3000)
	c.Observe(MetricDBPingDuration, 10)

	snapshot := c.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("Expected 2 metrics, got %d", len(snapshot))
	}
	for _, m := range snapshot {
		switch m.Name {
		case MetricRequestDuration:
			if m.Rating != RatingPoor || m.Recommendation == "" {
				t.Errorf("Expected poor rating with recommendation, got %+v", m)
			}
		case MetricDBPingDuration:
			if m.Rating != RatingGood || m.Recommendation != "" {
				t.Errorf("Expected good rating without recommendation, got %+v", m)
			}
		}
	}
}
