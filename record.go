package scythe

import "context"

// Accounting describes how a range's output should be byte-accounted by a scan
type Accounting int

const (
	// BatchAccounted output refreshes read-byte counters on every record,
	// suitable for columnar batches where each record is many rows
	BatchAccounted Accounting = iota
	// RowAccounted output refreshes read-byte counters on a fixed record
	// interval, bounding accounting overhead for row-at-a-time decoders
	RowAccounted
)

// A Record is one element of decoded scan output: a single row or a columnar
// batch, depending on the decoder which produced it
type Record interface {
	NumRows() int // NumRows returns the number of underlying rows this Record represents
}

// RecordIterator is a generalized interface for iterating over Records, regardless of where they come from
type RecordIterator interface {
	HasNextRecord() bool
	NextRecord() (Record, error)
	OnEnd(onEnd func())
}

// RangeIterator is the record sequence produced by decoding a single
// FileRange. Implementations are single-pass and are released exactly once via
// Close, regardless of whether they were fully consumed.
type RangeIterator interface {
	HasNextRecord() bool
	NextRecord() (Record, error)
	Close() error
	BytesRead() int64       // BytesRead returns the cumulative bytes consumed from the range so far
	Accounting() Accounting // Accounting declares, once per range, how this sequence should be byte-accounted
	Metrics() RangeMetrics  // Metrics is valid once the sequence is exhausted or abandoned
}

// A RangeOpener opens one FileRange as a sequence of Records. It is the opaque
// per-file-format decoder consumed by a scan; failures it returns are
// classified per the errors package before propagation.
type RangeOpener interface {
	Open(ctx context.Context, r *FileRange) (RangeIterator, error)
}
