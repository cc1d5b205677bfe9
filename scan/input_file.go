package scan

import (
	"sync"

	"github.com/go-scythe/scythe"
)

// A FileBlockHolder publishes which file block a scan is currently producing
// records from, for downstream operators which need record provenance. It is
// set when a range is opened and cleared when the scan is exhausted or closed.
type FileBlockHolder struct {
	lock   sync.Mutex
	path   string
	start  int64
	length int64
	active bool
}

// Set marks r as the block records are currently being produced from
func (h *FileBlockHolder) Set(r *scythe.FileRange) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.path = r.Path
	h.start = r.Start
	h.length = r.Length
	h.active = true
}

// Unset clears the current block
func (h *FileBlockHolder) Unset() {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.path = ""
	h.start = 0
	h.length = 0
	h.active = false
}

// Get returns the current block, with ok false when no block is active
func (h *FileBlockHolder) Get() (path string, start int64, length int64, ok bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.path, h.start, h.length, h.active
}
