package scythe

import "io"

// A UnitSerializer encodes PartitionUnits for assignment to remote workers,
// and decodes them on the receiving side
type UnitSerializer interface {
	EncodeUnit(w io.Writer, unit *PartitionUnit) error
	DecodeUnit(r io.Reader) (*PartitionUnit, error)
}
