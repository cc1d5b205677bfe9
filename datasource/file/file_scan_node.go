package file

import "github.com/go-scythe/scythe"

// A ScanNode exposes a planned set of PartitionUnits as a sized plan leaf, so
// lineage walks (operations/split) can discover the scan's total byte volume
type ScanNode struct {
	units []*scythe.PartitionUnit
}

// CreateScanNode returns a ScanNode over units
func CreateScanNode(units []*scythe.PartitionUnit) *ScanNode {
	return &ScanNode{units: units}
}

// Parents returns nil: a scan is a plan leaf
func (sn *ScanNode) Parents() []scythe.PlanNode {
	return nil
}

// PartitionCount returns the number of units this scan produces
func (sn *ScanNode) PartitionCount() int {
	return len(sn.units)
}

// TotalInputBytes returns the total byte volume covered by this scan's units
func (sn *ScanNode) TotalInputBytes() int64 {
	var total int64
	for _, u := range sn.units {
		total += u.TotalLength()
	}
	return total
}

// Units returns this scan's units, in assignment order
func (sn *ScanNode) Units() []*scythe.PartitionUnit {
	return sn.units
}
