package scythe

import (
	"fmt"
	"time"
)

// A FileRange is one contiguous byte range of one file, the atomic unit read
// by a scan. PartitionValues are the partition-derived column values which the
// decoder prepends to every record this range yields. Hosts are optional
// locality hints, in priority order. A FileRange is immutable once created by
// the planner.
type FileRange struct {
	PartitionValues []interface{}
	Path            string
	Start           int64
	Length          int64
	Hosts           []string
}

// Desc returns a compact identifier for this FileRange, for logs and error messages
func (fr *FileRange) Desc() string {
	return fmt.Sprintf("%s (range %d+%d)", fr.Path, fr.Start, fr.Length)
}

// RangeMetrics are the per-range counters populated by the decoder which read
// the range. They are surfaced through RangeIterator.Metrics() once the
// range's record sequence is exhausted or abandoned, never through shared
// mutable state on the FileRange itself.
type RangeMetrics struct {
	FooterReadTime     time.Duration // time spent opening the range and reading file metadata
	TotalBloomBlocks   int64         // bloom-filter blocks consulted; 0 means the format has no bloom index
	SkippedBloomBlocks int64
	SkippedRows        int64
}
