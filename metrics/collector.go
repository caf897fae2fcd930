package metrics

import (
	"sync"
	"time"
)

// Rating classifies a metric value against its static thresholds.
type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
	RatingUnknown          Rating = "unknown"
)

const (
	MetricRequestDuration = "http_request_duration_ms"
	MetricDBPingDuration  = "db_ping_duration_ms"
)

// Threshold holds the static boundaries for a metric, in the metric's unit.
// Values at or under Good rate good, over Poor rate poor.
type Threshold struct {
	Good float64
	Poor float64
}

var thresholds = map[string]Threshold{
	MetricRequestDuration: {Good: 500, Poor: 2000},
	MetricDBPingDuration:  {Good: 50, Poor: 500},
}

var recommendations = map[string]string{
	MetricRequestDuration: "Responses are slow. Check query plans and consider adding indexes on hot lookups.",
	MetricDBPingDuration:  "Database round trips are slow. Verify the data directory is on local storage.",
}

// Metric is a named observation with its rating.
type Metric struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	Rating         Rating  `json:"rating"`
	Recommendation string  `json:"recommendation,omitempty"`
	ObservedTs     int64   `json:"observed_ts"`
}

type observation struct {
	value float64
	ts    int64
}

// Collector passively stores the latest observed value per metric name.
// No aggregation, no windowing, no persistence.
type Collector struct {
	mu     sync.RWMutex
	latest map[string]observation
}

func NewCollector() *Collector {
	return &Collector{
		latest: make(map[string]observation),
	}
}

// Observe records the latest value for a metric, replacing any previous one.
func (c *Collector) Observe(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest[name] = observation{value: value, ts: time.Now().Unix()}
}

// ObserveDuration records a duration metric in milliseconds.
func (c *Collector) ObserveDuration(name string, d time.Duration) {
	c.Observe(name, float64(d.Milliseconds()))
}

// Get returns the latest value for a metric name.
func (c *Collector) Get(name string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obs, ok := c.latest[name]
	return obs.value, ok
}

// Rate classifies a value against the metric's static thresholds.
func Rate(name string, value float64) Rating {
	threshold, ok := thresholds[name]
	if !ok {
		return RatingUnknown
	}
	switch {
	case value <= threshold.Good:
		return RatingGood
	case value <= threshold.Poor:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}

// IsUnder reports whether the latest value of a metric is under the limit.
// Returns false if the metric was never observed.
func (c *Collector) IsUnder(name string, limit float64) bool {
	value, ok := c.Get(name)
	if !ok {
		return false
	}
	return value < limit
}

// Snapshot returns every observed metric with its rating. Metrics rated
// good carry no recommendation.
func (c *Collector) Snapshot() []Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]Metric, 0, len(c.latest))
	for name, obs := range c.latest {
		m := Metric{
			Name:       name,
			Value:      obs.value,
			Rating:     Rate(name, obs.value),
			ObservedTs: obs.ts,
		}
		if m.Rating == RatingNeedsImprovement || m.Rating == RatingPoor {
			m.Recommendation = recommendations[name]
		}
		list = append(list, m)
	}
	return list
}
