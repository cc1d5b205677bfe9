package scythe

// Named counters exposed for external aggregation. Scythe reports through a
// MetricsSink and never persists metrics itself.
const (
	MetricBytesRead          = "bytesRead"
	MetricRecordsRead        = "recordsRead"
	MetricFooterReadTime     = "footerReadTime"
	MetricFooterReadCount    = "footerReadCount"
	MetricTotalBloomBlocks   = "totalBloomBlocks"
	MetricSkippedBloomBlocks = "skippedBloomBlocks"
	MetricSkippedRows        = "skippedRows"
	MetricOriginPartNum      = "originPartNum"
	MetricExpandPartNum      = "expandPartNum"
)

// A MetricsSink receives named counter increments. Durations are reported in
// nanoseconds.
type MetricsSink interface {
	Add(name string, delta int64)
}
