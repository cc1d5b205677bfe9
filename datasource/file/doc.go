// Package file provides a planner-side DataSource which splits files matching
// a glob pattern into scan ranges and packs those ranges into PartitionUnits
// for assignment to workers
package file
