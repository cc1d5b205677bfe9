package scythe

// A PlanNode is one operator in an execution plan lineage. Scythe only ever
// walks lineage downward through single-parent links; the surrounding planner
// owns everything else about the operator tree.
type PlanNode interface {
	Parents() []PlanNode
	PartitionCount() int
}

// A SizedPlanNode is a PlanNode whose total input byte volume is knowable,
// typically a scan leaf
type SizedPlanNode interface {
	PlanNode
	TotalInputBytes() int64
}

// A Repartitioner redistributes a plan's output across a new partition count
// via a full shuffle. Shuffle machinery is external to Scythe.
type Repartitioner interface {
	Repartition(node PlanNode, partitions int) PlanNode
}

// ExecutionEnv exposes the execution environment settings Scythe consults at runtime
type ExecutionEnv interface {
	DefaultParallelism() int // DefaultParallelism returns the environment's default task parallelism
}
