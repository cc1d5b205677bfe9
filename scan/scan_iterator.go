package scan

import (
	"context"
	"sync"

	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/go-scythe/scythe"
	serrors "github.com/go-scythe/scythe/errors"
	"github.com/go-scythe/scythe/logging"
)

// rowByteUpdateInterval bounds byte-counter refresh overhead for row-accounted
// ranges: counters are folded once per this many records instead of per record
const rowByteUpdateInterval = 1000

// Conf holds the environment-level scan policy. It is fixed per execution
// environment, not per call.
type Conf struct {
	IgnoreMissingFiles bool // skip ranges whose file is absent, with a logged warning
	IgnoreCorruptFiles bool // drop the remainder of a range which fails mid-read, with a logged warning
	CollectMetrics     bool // fold per-range decoder metrics into the task accumulator
}

// An Iterator produces the unified record sequence for one PartitionUnit,
// decoding ranges in order with an injected RangeOpener. It is single-pass and
// not restartable: a consumed Iterator cannot be re-iterated. At most one
// range sequence is open at a time, and Close releases it on every exit path.
type Iterator struct {
	id      string
	ctx     context.Context
	opener  scythe.RangeOpener
	conf    Conf
	metrics *TaskMetrics
	holder  *FileBlockHolder

	lock              sync.Mutex
	ranges            []*scythe.FileRange
	cur               scythe.RangeIterator
	curRange          *scythe.FileRange
	curAccounting     scythe.Accounting
	curFoldedBytes    int64
	rowsSinceByteFold int
	pending           error
	exhausted         bool
	closed            bool
	endListeners      []func()
}

// CreateScanIterator returns an Iterator over every record of unit. metrics
// may be shared across sequentially computed units on one worker; nil
// allocates a private accumulator. holder may be nil when no downstream
// operator needs record provenance. The caller must register Close as a
// completion hook which runs whether the task completes, fails or is
// cancelled.
func CreateScanIterator(ctx context.Context, unit *scythe.PartitionUnit, opener scythe.RangeOpener, conf Conf, metrics *TaskMetrics, holder *FileBlockHolder) *Iterator {
	id, err := uuid.NewV4()
	if err != nil {
		logging.Logger().Fatal("failed to generate UUID", zap.Error(err))
	}
	if metrics == nil {
		metrics = CreateTaskMetrics()
	}
	ranges := make([]*scythe.FileRange, len(unit.Ranges))
	copy(ranges, unit.Ranges)
	return &Iterator{
		id:           id.String(),
		ctx:          ctx,
		opener:       opener,
		conf:         conf,
		metrics:      metrics,
		holder:       holder,
		ranges:       ranges,
		endListeners: []func(){},
	}
}

// TaskMetrics returns the accumulator this Iterator folds counters into
func (it *Iterator) TaskMetrics() *TaskMetrics {
	return it.metrics
}

// OnEnd registers a listener which fires once, when this Iterator runs out of
// records or is closed, whichever happens first
func (it *Iterator) OnEnd(onEnd func()) {
	it.lock.Lock()
	defer it.lock.Unlock()
	it.endListeners = append(it.endListeners, onEnd)
}

// HasNextRecord returns true iff a record is available, advancing file state
// if needed. Cancellation is polled here, before any further I/O: once
// observed, the next NextRecord call surfaces a TaskCancelledError.
func (it *Iterator) HasNextRecord() bool {
	it.lock.Lock()
	defer it.lock.Unlock()
	if it.pending != nil {
		return true
	}
	if it.closed || it.exhausted {
		return false
	}
	if err := it.ctx.Err(); err != nil {
		it.pending = serrors.TaskCancelledError{Cause: err}
		return true
	}
	if it.cur != nil && it.cur.HasNextRecord() {
		return true
	}
	return it.advance()
}

// NextRecord pulls one record from the current open range, updating read-byte
// and read-record counters. It is preconditioned on a prior true-returning
// HasNextRecord.
func (it *Iterator) NextRecord() (scythe.Record, error) {
	it.lock.Lock()
	defer it.lock.Unlock()
	for {
		if it.pending != nil {
			err := it.pending
			it.pending = nil
			it.abort()
			return nil, err
		}
		if it.closed || it.exhausted {
			return nil, serrors.EndOfSequenceError{}
		}
		if it.cur == nil || !it.cur.HasNextRecord() {
			if !it.advance() {
				return nil, serrors.EndOfSequenceError{}
			}
			continue
		}
		rec, err := it.cur.NextRecord()
		if err != nil {
			classified := serrors.Classify(it.curRange.Path, it.curRange.Start, it.curRange.Length, err)
			if it.suppress(classified, it.curRange) {
				it.releaseCurrent(false)
				continue
			}
			it.pending = nil
			it.abort()
			return nil, classified
		}
		it.count(rec)
		return rec, nil
	}
}

// count updates the task-level read counters for one produced record. Byte
// counters refresh per record for batch-accounted ranges and on a fixed
// interval for row-accounted ones.
func (it *Iterator) count(rec scythe.Record) {
	it.metrics.addRecords(int64(rec.NumRows()))
	switch it.curAccounting {
	case scythe.BatchAccounted:
		it.foldBytes()
	case scythe.RowAccounted:
		it.rowsSinceByteFold++
		if it.rowsSinceByteFold >= rowByteUpdateInterval {
			it.foldBytes()
			it.rowsSinceByteFold = 0
		}
	}
}

// advance is the state-machine core: it releases the current range sequence,
// then opens subsequent ranges until one yields a record or none remain.
// Genuinely empty or fully-filtered ranges are skipped transparently. Returns
// true when a record is available or a failure is pending.
func (it *Iterator) advance() bool {
	for {
		it.releaseCurrent(true)
		if len(it.ranges) == 0 {
			it.exhausted = true
			if it.holder != nil {
				it.holder.Unset()
			}
			it.fireOnEnd()
			return false
		}
		r := it.ranges[0]
		it.ranges = it.ranges[1:]
		if it.holder != nil {
			it.holder.Set(r)
		}
		ri, err := it.opener.Open(it.ctx, r)
		if err != nil {
			classified := serrors.Classify(r.Path, r.Start, r.Length, err)
			if it.suppress(classified, r) {
				continue
			}
			it.pending = classified
			return true
		}
		it.cur = ri
		it.curRange = r
		it.curAccounting = ri.Accounting()
		it.curFoldedBytes = 0
		it.rowsSinceByteFold = 0
		if it.cur.HasNextRecord() {
			return true
		}
	}
}

// suppress decides whether a classified failure for r is swallowed under the
// configured policy. Missing files are suppressed only under
// IgnoreMissingFiles, even when IgnoreCorruptFiles is set; schema and version
// conflicts and cancellation are never suppressed. Suppression logs a warning
// naming the offending range.
func (it *Iterator) suppress(err error, r *scythe.FileRange) bool {
	if serrors.IsMissing(err) {
		if !it.conf.IgnoreMissingFiles {
			return false
		}
		logging.Logger().Warn("skipping missing file range",
			zap.String("scan", it.id),
			zap.String("file", r.Path),
			zap.Int64("start", r.Start),
			zap.Int64("length", r.Length))
		return true
	}
	if serrors.IsSchemaIncompatible(err) || serrors.IsVersionIncompatible(err) || serrors.IsCancelled(err) {
		return false
	}
	if !it.conf.IgnoreCorruptFiles {
		return false
	}
	logging.Logger().Warn("skipping corrupt file range",
		zap.String("scan", it.id),
		zap.String("file", r.Path),
		zap.Int64("start", r.Start),
		zap.Int64("length", r.Length),
		zap.Error(err))
	return true
}

// releaseCurrent closes the open range sequence, if any, folding its
// outstanding byte delta. Decoder metrics are folded only when the range is
// being released cleanly, not when it is dropped under a suppression policy.
func (it *Iterator) releaseCurrent(foldMetrics bool) {
	if it.cur == nil {
		return
	}
	it.foldBytes()
	if foldMetrics && it.conf.CollectMetrics {
		it.foldRangeMetrics()
	}
	if err := it.cur.Close(); err != nil {
		logging.Logger().Warn("failed to release range sequence",
			zap.String("scan", it.id),
			zap.String("file", it.curRange.Path),
			zap.Error(err))
	}
	it.cur = nil
	it.curRange = nil
}

// foldBytes folds the current range's unaccounted byte delta into the task counters
func (it *Iterator) foldBytes() {
	if it.cur == nil {
		return
	}
	total := it.cur.BytesRead()
	if delta := total - it.curFoldedBytes; delta > 0 {
		it.metrics.addBytes(delta)
		it.curFoldedBytes = total
	}
}

// foldRangeMetrics folds the current range's decoder metrics into the task
// counters. Footer counters fold unconditionally; bloom counters fold only
// when the range consulted a bloom index. A failure while folding is reported
// and does not abort the scan.
func (it *Iterator) foldRangeMetrics() {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Warn("failed to fold range metrics",
				zap.String("scan", it.id),
				zap.String("file", it.curRange.Path),
				zap.Any("cause", r))
		}
	}()
	m := it.cur.Metrics()
	it.metrics.addFooterRead(m.FooterReadTime)
	if m.TotalBloomBlocks > 0 {
		it.metrics.addBloom(m.TotalBloomBlocks, m.SkippedBloomBlocks, m.SkippedRows)
	}
}

// abort releases the current range without folding decoder metrics and marks
// the scan dead. Used when an unsuppressed failure is surfacing.
func (it *Iterator) abort() {
	it.releaseCurrent(false)
	it.exhausted = true
	if it.holder != nil {
		it.holder.Unset()
	}
	it.fireOnEnd()
}

// fireOnEnd notifies completion listeners exactly once
func (it *Iterator) fireOnEnd() {
	for _, l := range it.endListeners {
		l()
	}
	it.endListeners = []func(){}
}

// Close releases the currently open range sequence if any, folds outstanding
// read-byte counters and clears the file-block context. It is idempotent, is
// safe to call from a different goroutine than the one consuming records, and
// never panics. It must be invoked exactly once per task regardless of whether
// the task completed, failed or was cancelled.
func (it *Iterator) Close() error {
	it.lock.Lock()
	defer it.lock.Unlock()
	if it.closed {
		return nil
	}
	it.closed = true
	var result *multierror.Error
	if it.cur != nil {
		it.foldBytes()
		if err := it.cur.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		it.cur = nil
		it.curRange = nil
	}
	it.pending = nil
	if it.holder != nil {
		it.holder.Unset()
	}
	it.fireOnEnd()
	return result.ErrorOrNil()
}
