package file

import "github.com/go-scythe/scythe"

// UnitMap is an iterator producing the sequence of PartitionUnits for a
// DataSource. Units are assigned round-robin to workers, so an assumption is
// made that each unit covers a roughly equal byte volume.
type UnitMap struct {
	units []*scythe.PartitionUnit
}

// HasNext returns true iff there is another PartitionUnit remaining
func (um *UnitMap) HasNext() bool {
	return len(um.units) > 0
}

// Next returns the next PartitionUnit
func (um *UnitMap) Next() *scythe.PartitionUnit {
	result := um.units[0]
	um.units = um.units[1:]
	return result
}

// NumUnits returns the number of units remaining in this UnitMap
func (um *UnitMap) NumUnits() int {
	return len(um.units)
}

// Units drains this UnitMap into a slice, in assignment order
func (um *UnitMap) Units() []*scythe.PartitionUnit {
	result := um.units
	um.units = nil
	return result
}
