// internal/metrics/aggregator.go
// Package metrics tallies tool calls per MCP session.
package metrics

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"
)

// Aggregator collects call counts and latencies per tool. The zero value is
// not usable; call NewAggregator.
type Aggregator struct {
	mutex   sync.Mutex
	metrics map[string]*ToolMetrics
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{metrics: make(map[string]*ToolMetrics)}
}

// Record adds one call of tool that took d. An empty tool name is recorded
// as "unknown".
func (a *Aggregator) Record(tool string, isError bool, d time.Duration) {
	if tool == "" {
		tool = "unknown"
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()

	m, exists := a.metrics[tool]
	if !exists {
		m = &ToolMetrics{Tool: tool}
		a.metrics[tool] = m
	}
	m.Calls++
	if isError {
		m.Errors++
	}
	updateRunningStat(&m.DurationMillis, float64(d)/float64(time.Millisecond))
}

// Snapshot returns a copy of the metrics ordered by tool name.
func (a *Aggregator) Snapshot() []ToolMetrics {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	out := make([]ToolMetrics, 0, len(a.metrics))
	for _, m := range a.metrics {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(x, y ToolMetrics) int { return strings.Compare(x.Tool, y.Tool) })
	return out
}

// Summary renders the snapshot on one line for the log, e.g.
// "parse_time=3 (1 errors, mean 0.12ms)".
func (a *Aggregator) Summary() string {
	snap := a.Snapshot()
	if len(snap) == 0 {
		return "no tool calls"
	}
	parts := make([]string, 0, len(snap))
	for _, m := range snap {
		parts = append(parts, fmt.Sprintf("%s=%d (%d errors, mean %.2fms)", m.Tool, m.Calls, m.Errors, m.DurationMillis.Mean))
	}
	return strings.Join(parts, " ")
}

// StdDev returns the sample standard deviation, or 0 with fewer than two values.
func (rs RunningStat) StdDev() float64 {
	if rs.Count < 2 {
		return 0
	}
	return math.Sqrt(rs.M2 / float64(rs.Count-1))
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}
