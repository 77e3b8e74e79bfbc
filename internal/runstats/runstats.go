// Package runstats aggregates extraction-run latencies and record counts
// within a rolling window, for the service status endpoint.
package runstats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
	pages      int
	lgas       int
	wards      int
}

// Snapshot is a point-in-time aggregate of recent extraction runs.
type Snapshot struct {
	Runs  int     `json:"runs"`
	Pages int     `json:"pages"`
	LGAs  int     `json:"lgas"`
	Wards int     `json:"wards"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Tracker records extraction runs and keeps only those within maxAge.
type Tracker struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func New(maxAge time.Duration) *Tracker {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Tracker{
		samples: make([]sample, 0, 64),
		maxAge:  maxAge,
	}
}

// Record adds one completed run with its duration and extracted counts.
func (t *Tracker) Record(duration time.Duration, pages, lgas, wards int) {
	durationMs := duration.Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(now)
	t.samples = append(t.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
		pages:      pages,
		lgas:       lgas,
		wards:      wards,
	})
}

func (t *Tracker) Snapshot() Snapshot {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(now)
	if len(t.samples) == 0 {
		return Snapshot{}
	}

	values := make([]int64, 0, len(t.samples))
	var sum int64
	snap := Snapshot{Runs: len(t.samples)}
	for _, sm := range t.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		snap.Pages += sm.pages
		snap.LGAs += sm.lgas
		snap.Wards += sm.wards
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-t.maxAge)
	writeIdx := 0
	for _, sm := range t.samples {
		if !sm.timestamp.Before(cutoff) {
			t.samples[writeIdx] = sm
			writeIdx++
		}
	}
	t.samples = t.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
