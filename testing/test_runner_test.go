package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-scythe/scythe"
	"github.com/go-scythe/scythe/datasource/file"
	"github.com/go-scythe/scythe/datasource/parser/jsonl"
	"github.com/go-scythe/scythe/scan"
	"github.com/go-scythe/scythe/stats"
)

func writeTestData(t *testing.T, dir string, fileCount int, linesPerFile int) []string {
	var names []string
	for f := 0; f < fileCount; f++ {
		var content []byte
		for l := 0; l < linesPerFile; l++ {
			name := fmt.Sprintf("f%d-%03d", f, l)
			names = append(names, name)
			content = append(content, []byte(fmt.Sprintf(`{"name": "%s"}`+"\n", name))...)
		}
		path := filepath.Join(dir, fmt.Sprintf("part-%d.jsonl", f))
		require.Nil(t, os.WriteFile(path, content, 0644))
	}
	return names
}

func TestLocalRunReadsEveryLineExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	expected := writeTestData(t, dir, 3, 50)
	source := file.CreateDataSource(filepath.Join(dir, "*.jsonl"), &file.Conf{
		MaxRangeBytes:   100,
		TargetUnitBytes: 300,
	})
	um, err := source.Analyze()
	require.Nil(t, err)
	units := um.Units()
	require.Greater(t, len(units), 1)

	sink := stats.CreateRunStatistics()
	opener := jsonl.CreateOpener(&jsonl.Conf{FieldPaths: []string{"name"}})
	results, err := LocalRunUnits(context.Background(), units, opener, scan.Conf{CollectMetrics: true}, sink)
	require.Nil(t, err)

	var names []string
	for _, result := range results {
		for _, rec := range result.Records {
			names = append(names, rec.(*jsonl.Row).Values()[0].(string))
		}
	}
	require.Equal(t, len(expected), len(names))
	sort.Strings(names)
	require.Equal(t, expected, names)

	require.Equal(t, int64(len(expected)), sink.Get(scythe.MetricRecordsRead))
	require.Greater(t, sink.Get(scythe.MetricBytesRead), int64(0))
	require.Greater(t, sink.Get(scythe.MetricFooterReadCount), int64(0))
}

func TestLocalRunSurfacesMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestData(t, dir, 1, 5)
	units := []*scythe.PartitionUnit{
		{Ranges: []*scythe.FileRange{{Path: filepath.Join(dir, "gone.jsonl"), Start: 0, Length: 10}}},
	}
	opener := jsonl.CreateOpener(nil)
	_, err := LocalRunUnits(context.Background(), units, opener, scan.Conf{}, nil)
	require.NotNil(t, err)
}

func TestLocalRunIgnoresMissingFilesUnderPolicy(t *testing.T) {
	dir := t.TempDir()
	expected := writeTestData(t, dir, 1, 5)
	path := filepath.Join(dir, "part-0.jsonl")
	info, err := os.Stat(path)
	require.Nil(t, err)
	units := []*scythe.PartitionUnit{
		{Ranges: []*scythe.FileRange{
			{Path: filepath.Join(dir, "gone.jsonl"), Start: 0, Length: 10},
			{Path: path, Start: 0, Length: info.Size()},
		}},
	}
	opener := jsonl.CreateOpener(&jsonl.Conf{FieldPaths: []string{"name"}})
	results, err := LocalRunUnits(context.Background(), units, opener, scan.Conf{IgnoreMissingFiles: true}, nil)
	require.Nil(t, err)
	require.Equal(t, len(expected), len(results[0].Records))
}
