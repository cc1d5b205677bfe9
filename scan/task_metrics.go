package scan

import (
	"sync"
	"time"

	"github.com/go-scythe/scythe"
)

// TaskMetrics accumulates task-level read counters. A single TaskMetrics may
// be shared by several units computed sequentially on the same worker
// (coalesced tasks): byte counts are folded into it as per-range deltas, so
// the accumulator acts as its own rebasing baseline and reuse never
// double-counts.
type TaskMetrics struct {
	lock               sync.Mutex
	bytesRead          int64
	recordsRead        int64
	footerReadTime     time.Duration
	footerReadCount    int64
	totalBloomBlocks   int64
	skippedBloomBlocks int64
	skippedRows        int64
}

// CreateTaskMetrics returns an empty TaskMetrics accumulator
func CreateTaskMetrics() *TaskMetrics {
	return &TaskMetrics{}
}

func (tm *TaskMetrics) addBytes(delta int64) {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	tm.bytesRead += delta
}

func (tm *TaskMetrics) addRecords(delta int64) {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	tm.recordsRead += delta
}

func (tm *TaskMetrics) addFooterRead(d time.Duration) {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	tm.footerReadTime += d
	tm.footerReadCount++
}

func (tm *TaskMetrics) addBloom(total int64, skipped int64, skippedRows int64) {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	tm.totalBloomBlocks += total
	tm.skippedBloomBlocks += skipped
	tm.skippedRows += skippedRows
}

// BytesRead returns the bytes folded into this accumulator so far
func (tm *TaskMetrics) BytesRead() int64 {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.bytesRead
}

// RecordsRead returns the rows counted so far
func (tm *TaskMetrics) RecordsRead() int64 {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.recordsRead
}

// FooterReadTime returns the cumulative time spent opening ranges
func (tm *TaskMetrics) FooterReadTime() time.Duration {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.footerReadTime
}

// FooterReadCount returns the number of range opens folded so far
func (tm *TaskMetrics) FooterReadCount() int64 {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.footerReadCount
}

// TotalBloomBlocks returns the bloom-filter blocks consulted so far
func (tm *TaskMetrics) TotalBloomBlocks() int64 {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.totalBloomBlocks
}

// SkippedBloomBlocks returns the bloom-filter blocks skipped so far
func (tm *TaskMetrics) SkippedBloomBlocks() int64 {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.skippedBloomBlocks
}

// SkippedRows returns the rows skipped by block-level filtering so far
func (tm *TaskMetrics) SkippedRows() int64 {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.skippedRows
}

// Report flushes every counter to sink under its exported metric name
func (tm *TaskMetrics) Report(sink scythe.MetricsSink) {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	sink.Add(scythe.MetricBytesRead, tm.bytesRead)
	sink.Add(scythe.MetricRecordsRead, tm.recordsRead)
	sink.Add(scythe.MetricFooterReadTime, tm.footerReadTime.Nanoseconds())
	sink.Add(scythe.MetricFooterReadCount, tm.footerReadCount)
	sink.Add(scythe.MetricTotalBloomBlocks, tm.totalBloomBlocks)
	sink.Add(scythe.MetricSkippedBloomBlocks, tm.skippedBloomBlocks)
	sink.Add(scythe.MetricSkippedRows, tm.skippedRows)
}
