package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/go-scythe/scythe"
	serrors "github.com/go-scythe/scythe/errors"
)

// Row is a single decoded JSONL record
type Row struct {
	values []interface{}
}

// NumRows returns 1: JSONL records are row records
func (r *Row) NumRows() int {
	return 1
}

// Values returns the record's field values: the range's partition values
// followed by the extracted field values
func (r *Row) Values() []interface{} {
	return r.values
}

type rangeIterator struct {
	conf      *Conf
	r         *scythe.FileRange
	file      *os.File
	reader    *bufio.Reader
	pos       int64 // absolute offset of the next unread byte
	limit     int64 // absolute end of the range; lines starting at or past it belong to the next range
	bytesRead int64
	next      *Row
	err       error
	done      bool
	closed    bool
	metrics   scythe.RangeMetrics
}

// HasNextRecord prefetches the next owned line, returning true when a record
// or a pending failure is available
func (ri *rangeIterator) HasNextRecord() bool {
	if ri.next != nil || ri.err != nil {
		return true
	}
	if ri.done || ri.closed {
		return false
	}
	for {
		if ri.pos >= ri.limit {
			ri.done = true
			return false
		}
		line, err := ri.reader.ReadString('\n')
		if len(line) > 0 {
			ri.pos += int64(len(line))
			ri.bytesRead += int64(len(line))
			trimmed := strings.TrimRight(line, "\r\n")
			if trimmed == "" {
				ri.metrics.SkippedRows++
				continue
			}
			if !gjson.Valid(trimmed) {
				ri.err = serrors.CorruptFileError{
					Path:   ri.r.Path,
					Start:  ri.r.Start,
					Length: ri.r.Length,
					Cause:  fmt.Errorf("malformed JSON line ending at byte %d", ri.pos),
				}
				return true
			}
			ri.next = &Row{values: ri.parse(gjson.Parse(trimmed))}
			return true
		}
		if err != nil {
			if err == io.EOF {
				ri.done = true
				return false
			}
			ri.err = serrors.Classify(ri.r.Path, ri.r.Start, ri.r.Length, err)
			return true
		}
	}
}

// parse extracts the configured field values from one parsed line, prepending
// the range's partition values
func (ri *rangeIterator) parse(parsed gjson.Result) []interface{} {
	values := make([]interface{}, 0, len(ri.r.PartitionValues)+len(ri.conf.FieldPaths)+1)
	values = append(values, ri.r.PartitionValues...)
	if len(ri.conf.FieldPaths) == 0 {
		return append(values, parsed.Value())
	}
	for _, path := range ri.conf.FieldPaths {
		values = append(values, parsed.Get(path).Value())
	}
	return values
}

// NextRecord returns the prefetched record, or the pending failure
func (ri *rangeIterator) NextRecord() (scythe.Record, error) {
	if ri.err != nil {
		err := ri.err
		ri.err = nil
		ri.done = true
		return nil, err
	}
	if ri.next == nil && !ri.HasNextRecord() {
		return nil, serrors.EndOfSequenceError{}
	}
	if ri.err != nil {
		err := ri.err
		ri.err = nil
		ri.done = true
		return nil, err
	}
	rec := ri.next
	ri.next = nil
	return rec, nil
}

// Close releases the underlying file. Idempotent.
func (ri *rangeIterator) Close() error {
	if ri.closed {
		return nil
	}
	ri.closed = true
	ri.next = nil
	return ri.file.Close()
}

// BytesRead returns the cumulative bytes consumed from the range so far
func (ri *rangeIterator) BytesRead() int64 {
	return ri.bytesRead
}

// Accounting declares JSONL output as row-accounted
func (ri *rangeIterator) Accounting() scythe.Accounting {
	return scythe.RowAccounted
}

// Metrics returns the per-range decoder counters. SkippedRows counts blank
// lines; bloom counters stay zero, JSONL has no block index.
func (ri *rangeIterator) Metrics() scythe.RangeMetrics {
	return ri.metrics
}
