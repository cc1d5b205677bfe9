package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-scythe/scythe"
)

func TestAddAndGet(t *testing.T) {
	rs := CreateRunStatistics()
	rs.Add(scythe.MetricBytesRead, 100)
	rs.Add(scythe.MetricBytesRead, 50)
	rs.Add(scythe.MetricRecordsRead, 3)
	require.Equal(t, int64(150), rs.Get(scythe.MetricBytesRead))
	require.Equal(t, int64(3), rs.Get(scythe.MetricRecordsRead))
	require.Equal(t, int64(0), rs.Get(scythe.MetricSkippedRows))
}

func TestSnapshotIsACopy(t *testing.T) {
	rs := CreateRunStatistics()
	rs.Add(scythe.MetricOriginPartNum, 4)
	snapshot := rs.Snapshot()
	snapshot[scythe.MetricOriginPartNum] = 99
	require.Equal(t, int64(4), rs.Get(scythe.MetricOriginPartNum))
}

func TestConcurrentAdds(t *testing.T) {
	rs := CreateRunStatistics()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				rs.Add(scythe.MetricRecordsRead, 1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(8000), rs.Get(scythe.MetricRecordsRead))
}
