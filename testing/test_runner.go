// Package testing provides utilities for running scans against local data
// without a cluster
package testing

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/go-scythe/scythe"
	"github.com/go-scythe/scythe/internal/serial"
	"github.com/go-scythe/scythe/scan"
)

// UnitResult holds the records produced by one PartitionUnit, in production order
type UnitResult struct {
	Unit    *scythe.PartitionUnit
	Records []scythe.Record
}

// LocalRunUnits computes every unit against opener, one worker goroutine per
// unit, and returns per-unit results in unit order. Each unit's assignment is
// round-tripped through the wire codec the way a coordinator would ship it,
// each unit's scan is strictly sequential internally, its iterator is closed
// on every exit path, and its task counters are reported to sink (which may be
// nil) when the unit finishes.
func LocalRunUnits(ctx context.Context, units []*scythe.PartitionUnit, opener scythe.RangeOpener, conf scan.Conf, sink scythe.MetricsSink) ([]*UnitResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]*UnitResult, len(units))
	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() (err error) {
			assigned, err := shipUnit(unit)
			if err != nil {
				return err
			}
			metrics := scan.CreateTaskMetrics()
			it := scan.CreateScanIterator(ctx, assigned, opener, conf, metrics, nil)
			defer func() {
				if cerr := it.Close(); cerr != nil && err == nil {
					err = cerr
				}
				if sink != nil {
					metrics.Report(sink)
				}
			}()
			result := &UnitResult{Unit: assigned}
			for it.HasNextRecord() {
				rec, rerr := it.NextRecord()
				if rerr != nil {
					return rerr
				}
				result.Records = append(result.Records, rec)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// shipUnit encodes and decodes a unit through the coordinator-to-worker codec
func shipUnit(unit *scythe.PartitionUnit) (*scythe.PartitionUnit, error) {
	serializer := serial.CreateLZ4UnitSerializer()
	var frame bytes.Buffer
	if err := serializer.EncodeUnit(&frame, unit); err != nil {
		return nil, err
	}
	return serializer.DecodeUnit(&frame)
}
