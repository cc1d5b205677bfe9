// Package stats provides an in-memory accumulator for scan and splitter
// metrics, suitable for tests and single-process runs. Durable aggregation and
// reporting are the embedding engine's concern.
package stats

import (
	"sync"
)

// RunStatistics is a concurrency-safe MetricsSink accumulating named counters
// for a running scan
type RunStatistics struct {
	lock     sync.Mutex
	counters map[string]int64
}

// CreateRunStatistics instantiates an empty RunStatistics
func CreateRunStatistics() *RunStatistics {
	return &RunStatistics{counters: make(map[string]int64)}
}

// Add folds delta into the named counter
func (rs *RunStatistics) Add(name string, delta int64) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.counters[name] += delta
}

// Get returns the current value of the named counter
func (rs *RunStatistics) Get(name string) int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.counters[name]
}

// Snapshot returns a copy of every counter
func (rs *RunStatistics) Snapshot() map[string]int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	result := make(map[string]int64, len(rs.counters))
	for name, value := range rs.counters {
		result[name] = value
	}
	return result
}
