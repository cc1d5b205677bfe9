package jsonl

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/go-scythe/scythe"
	serrors "github.com/go-scythe/scythe/errors"
)

const defaultMaxBufferSize = bufio.MaxScanTokenSize

// Conf configures a JSONL Opener
type Conf struct {
	// FieldPaths are the gjson paths extracted from each line, in record field
	// order. When empty, each record carries the whole parsed line as a single
	// value.
	FieldPaths []string
	// MaxBufferSize is the maximum size in bytes of the buffer used to read
	// lines. Defaults to bufio.MaxScanTokenSize.
	MaxBufferSize int
}

// An Opener decodes byte ranges of newline-delimited JSON files into row
// Records. Field values are parsed lazily from each line using their gjson
// path; values which do not correspond to a configured path are ignored.
type Opener struct {
	conf *Conf
}

// CreateOpener returns a new JSONL Opener
func CreateOpener(conf *Conf) *Opener {
	if conf == nil {
		conf = &Conf{}
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = defaultMaxBufferSize
	}
	return &Opener{conf: conf}
}

// Open opens one byte range of a JSONL file. A range owns exactly the lines
// which start within it: when the range starts mid-file the first partial line
// is skipped, and the line straddling the range end is read to completion.
func (o *Opener) Open(ctx context.Context, r *scythe.FileRange) (scythe.RangeIterator, error) {
	openStart := time.Now()
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, serrors.Classify(r.Path, r.Start, r.Length, err)
	}
	it := &rangeIterator{
		conf:   o.conf,
		r:      r,
		file:   f,
		reader: bufio.NewReaderSize(f, o.conf.MaxBufferSize),
		pos:    0,
		limit:  r.Start + r.Length,
	}
	if r.Start > 0 {
		// seek one byte back so a range boundary landing exactly on a line
		// start still skips only the previous range's trailing line
		if _, err := f.Seek(r.Start-1, 0); err != nil {
			_ = f.Close()
			return nil, serrors.Classify(r.Path, r.Start, r.Length, err)
		}
		it.pos = r.Start - 1
		discarded, err := it.reader.ReadString('\n')
		it.pos += int64(len(discarded))
		it.bytesRead += int64(len(discarded))
		if err != nil && len(discarded) == 0 {
			it.done = true
		}
	}
	it.metrics.FooterReadTime = time.Since(openStart)
	return it, nil
}
