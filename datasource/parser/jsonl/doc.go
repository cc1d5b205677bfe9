// Package jsonl provides a RangeOpener for newline-delimited JSON data. It is
// a reference decoder: the scan core treats all decoders as opaque openers.
package jsonl
