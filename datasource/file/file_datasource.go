package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-scythe/scythe"
)

const defaultMaxRangeBytes = 128 * 1024 * 1024

// Conf configures a file DataSource
type Conf struct {
	MaxRangeBytes   int64 // maximum bytes per FileRange. Defaults to 128MiB
	TargetUnitBytes int64 // target bytes per PartitionUnit. Defaults to MaxRangeBytes
	// HostsFor, when non-nil, supplies locality hints for a file
	HostsFor func(path string) []string
	// PartitionValuesFor, when non-nil, supplies the partition column values
	// prepended to every record a file yields
	PartitionValuesFor func(path string) []interface{}
}

// A DataSource describes a set of files which will be divided into
// PartitionUnits and scanned by workers
type DataSource struct {
	glob string
	conf *Conf
}

// CreateDataSource is a factory for file DataSources
func CreateDataSource(glob string, conf *Conf) *DataSource {
	if conf == nil {
		conf = &Conf{}
	}
	if conf.MaxRangeBytes == 0 {
		conf.MaxRangeBytes = defaultMaxRangeBytes
	}
	if conf.TargetUnitBytes == 0 {
		conf.TargetUnitBytes = conf.MaxRangeBytes
	}
	return &DataSource{glob: glob, conf: conf}
}

// Analyze returns a UnitMap, describing how the source files will be divided
// into PartitionUnits
func (fs *DataSource) Analyze() (*UnitMap, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	sort.Strings(matches)
	var ranges []*scythe.FileRange
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		var hosts []string
		if fs.conf.HostsFor != nil {
			hosts = fs.conf.HostsFor(path)
		}
		var values []interface{}
		if fs.conf.PartitionValuesFor != nil {
			values = fs.conf.PartitionValuesFor(path)
		}
		size := info.Size()
		if size == 0 {
			// zero-byte files still get a range; the scan skips them transparently
			ranges = append(ranges, &scythe.FileRange{
				PartitionValues: values,
				Path:            path,
				Hosts:           hosts,
			})
			continue
		}
		for off := int64(0); off < size; off += fs.conf.MaxRangeBytes {
			length := fs.conf.MaxRangeBytes
			if off+length > size {
				length = size - off
			}
			ranges = append(ranges, &scythe.FileRange{
				PartitionValues: values,
				Path:            path,
				Start:           off,
				Length:          length,
				Hosts:           hosts,
			})
		}
	}
	return &UnitMap{units: packUnits(ranges, fs.conf.TargetUnitBytes)}, nil
}

// packUnits orders ranges largest-first and packs them into units of roughly
// targetBytes each. A range larger than targetBytes gets a unit of its own.
func packUnits(ranges []*scythe.FileRange, targetBytes int64) []*scythe.PartitionUnit {
	sorted := make([]*scythe.FileRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i int, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})
	var units []*scythe.PartitionUnit
	var current []*scythe.FileRange
	var currentBytes int64
	for _, r := range sorted {
		if len(current) > 0 && currentBytes+r.Length > targetBytes {
			units = append(units, &scythe.PartitionUnit{Ranges: current})
			current = nil
			currentBytes = 0
		}
		current = append(current, r)
		currentBytes += r.Length
	}
	if len(current) > 0 {
		units = append(units, &scythe.PartitionUnit{Ranges: current})
	}
	return units
}
