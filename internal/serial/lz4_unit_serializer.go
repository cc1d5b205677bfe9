// Package serial implements the codec used to ship PartitionUnit assignments
// from a coordinator to workers
package serial

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pierrec/lz4"

	"github.com/go-scythe/scythe"
)

func init() {
	// partition column values travel as interface values inside FileRanges
	gob.Register("")
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(true)
	gob.Register(time.Time{})
}

// LZ4UnitSerializer encodes PartitionUnits with gob, compresses the payload
// with lz4 and guards each frame with an xxhash64 checksum
type LZ4UnitSerializer struct {
	reusableReadBuffer *bytes.Buffer
}

// CreateLZ4UnitSerializer instantiates a new LZ4UnitSerializer
func CreateLZ4UnitSerializer() scythe.UnitSerializer {
	return &LZ4UnitSerializer{
		reusableReadBuffer: new(bytes.Buffer),
	}
}

// EncodeUnit serializes and compresses one PartitionUnit to a write stream
func (s *LZ4UnitSerializer) EncodeUnit(w io.Writer, unit *scythe.PartitionUnit) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(unit); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, xxhash.Sum64(payload.Bytes())); err != nil {
		return err
	}
	compressor := lz4.NewWriter(w)
	if _, err := compressor.Write(payload.Bytes()); err != nil {
		return err
	}
	return compressor.Close()
}

// DecodeUnit decompresses and deserializes one PartitionUnit from a read
// stream, verifying the frame checksum
func (s *LZ4UnitSerializer) DecodeUnit(r io.Reader) (*scythe.PartitionUnit, error) {
	var sum uint64
	if err := binary.Read(r, binary.BigEndian, &sum); err != nil {
		return nil, err
	}
	s.reusableReadBuffer.Reset()
	if _, err := s.reusableReadBuffer.ReadFrom(lz4.NewReader(r)); err != nil {
		return nil, err
	}
	if xxhash.Sum64(s.reusableReadBuffer.Bytes()) != sum {
		return nil, fmt.Errorf("partition unit frame failed checksum verification")
	}
	var unit scythe.PartitionUnit
	if err := gob.NewDecoder(bytes.NewReader(s.reusableReadBuffer.Bytes())).Decode(&unit); err != nil {
		return nil, err
	}
	return &unit, nil
}
