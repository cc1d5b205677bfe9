// Package split implements the adaptive partition-count rebalancing decision:
// a unary operator which, at execution time, fans a narrow upstream partition
// set out into more partitions when the scanned byte volume justifies the
// shuffle cost
package split

import (
	"go.uber.org/zap"

	"github.com/go-scythe/scythe"
	"github.com/go-scythe/scythe/logging"
)

const (
	defaultExpandTarget = 8
	defaultThreshSize   = 1 << 30 // 1GiB
)

// Conf tunes the adaptive splitter
type Conf struct {
	ExpandTarget int   // minimum desired partition count after expansion. Defaults to 8
	ThreshSize   int64 // minimum total byte volume which justifies acting at all. Defaults to 1GiB
}

// A Splitter decides, once per execution, whether to repartition its upstream
// input to a computed target partition count. Expansion must at least double
// the partition count to be worth a shuffle, and is capped at the cluster's
// default parallelism.
type Splitter struct {
	env    scythe.ExecutionEnv
	repart scythe.Repartitioner
	sink   scythe.MetricsSink
	conf   Conf
}

// CreateSplitter returns a Splitter using env for parallelism, repart as the
// shuffle primitive and sink (which may be nil) for decision metrics
func CreateSplitter(env scythe.ExecutionEnv, repart scythe.Repartitioner, sink scythe.MetricsSink, conf Conf) *Splitter {
	if conf.ExpandTarget == 0 {
		conf.ExpandTarget = defaultExpandTarget
	}
	if conf.ThreshSize == 0 {
		conf.ThreshSize = defaultThreshSize
	}
	return &Splitter{env: env, repart: repart, sink: sink, conf: conf}
}

// TotalSourceBytes walks upstream lineage depth-first through single-parent
// links until a sized scan node is found. ok is false when no such node is
// reachable: a parentless or multi-parent node ends the walk, so the size is
// unknowable.
func TotalSourceBytes(node scythe.PlanNode) (size int64, ok bool) {
	for node != nil {
		if sized, isSized := node.(scythe.SizedPlanNode); isSized {
			return sized.TotalInputBytes(), true
		}
		parents := node.Parents()
		if len(parents) != 1 {
			return 0, false
		}
		node = parents[0]
	}
	return 0, false
}

// Split returns upstream repartitioned via shuffle to the computed target
// count, or upstream unchanged when expansion is not profitable
func (s *Splitter) Split(upstream scythe.PlanNode) scythe.PlanNode {
	sourceSize, ok := TotalSourceBytes(upstream)
	if !ok || sourceSize < s.conf.ThreshSize {
		return upstream
	}
	prevCount := upstream.PartitionCount()
	parallelism := s.env.DefaultParallelism()
	expandCount := maxInt(prevCount*2, s.conf.ExpandTarget)
	targetCount := maxInt(minInt(parallelism, expandCount), parallelism/expandCount)
	if prevCount*2 > targetCount {
		return upstream
	}
	if s.sink != nil {
		s.sink.Add(scythe.MetricOriginPartNum, int64(prevCount))
		s.sink.Add(scythe.MetricExpandPartNum, int64(targetCount))
	}
	logging.Logger().Info("expanding partition count",
		zap.Int("from", prevCount),
		zap.Int("to", targetCount),
		zap.Int64("sourceBytes", sourceSize))
	return s.repart.Repartition(upstream, targetCount)
}

func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}
