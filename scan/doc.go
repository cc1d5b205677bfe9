// Package scan implements the lazy multi-file scan iterator which turns one
// PartitionUnit into a single ordered record sequence, with partial-failure
// tolerance and fine-grained read metrics
package scan
