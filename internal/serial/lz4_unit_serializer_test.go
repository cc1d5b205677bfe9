package serial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-scythe/scythe"
)

func createTestUnit() *scythe.PartitionUnit {
	return &scythe.PartitionUnit{Ranges: []*scythe.FileRange{
		{
			PartitionValues: []interface{}{"us-east", 3},
			Path:            "/data/part-0001.jsonl",
			Start:           0,
			Length:          1024,
			Hosts:           []string{"host1", "host2"},
		},
		{
			PartitionValues: []interface{}{"us-west", 4},
			Path:            "/data/part-0002.jsonl",
			Start:           1024,
			Length:          512,
			Hosts:           []string{"host3"},
		},
	}}
}

func TestUnitRoundTrip(t *testing.T) {
	serializer := CreateLZ4UnitSerializer()
	unit := createTestUnit()
	var frame bytes.Buffer
	require.Nil(t, serializer.EncodeUnit(&frame, unit))
	decoded, err := serializer.DecodeUnit(&frame)
	require.Nil(t, err)
	require.Equal(t, unit, decoded)
}

func TestSerializerIsReusable(t *testing.T) {
	serializer := CreateLZ4UnitSerializer()
	for i := 0; i < 3; i++ {
		var frame bytes.Buffer
		require.Nil(t, serializer.EncodeUnit(&frame, createTestUnit()))
		decoded, err := serializer.DecodeUnit(&frame)
		require.Nil(t, err)
		require.Equal(t, 2, len(decoded.Ranges))
	}
}

func TestChecksumMismatchIsRejected(t *testing.T) {
	serializer := CreateLZ4UnitSerializer()
	var frame bytes.Buffer
	require.Nil(t, serializer.EncodeUnit(&frame, createTestUnit()))
	corrupted := frame.Bytes()
	corrupted[0] ^= 0xff // the frame opens with the checksum
	_, err := serializer.DecodeUnit(bytes.NewReader(corrupted))
	require.NotNil(t, err)
}

func TestEmptyUnitRoundTrip(t *testing.T) {
	serializer := CreateLZ4UnitSerializer()
	var frame bytes.Buffer
	require.Nil(t, serializer.EncodeUnit(&frame, &scythe.PartitionUnit{}))
	decoded, err := serializer.DecodeUnit(&frame)
	require.Nil(t, err)
	require.Equal(t, int64(0), decoded.TotalLength())
}
