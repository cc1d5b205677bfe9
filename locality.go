package scythe

import "fmt"

// A Host identifies a worker location. Executor, when non-empty, pins the
// location to a specific executor on that host for soft-affinity placement.
type Host struct {
	Name     string
	Executor string
}

// String renders this Host in scheduler task-location form
func (h Host) String() string {
	if h.Executor != "" {
		return fmt.Sprintf("executor_%s_%s", h.Name, h.Executor)
	}
	return h.Name
}

// A LocalityResolver proposes better-informed worker locations for a unit's
// files. It is an external collaborator: Scythe never computes locality scores
// itself, and consults the resolver only when the scheduler queries a unit's
// preferred locations, never during record production.
type LocalityResolver interface {
	// AcceptsDefaults returns true if the default locations are already satisfactory as-is
	AcceptsDefaults(defaults []Host) bool
	// Alternates returns ranked alternate locations for a file, each paired
	// with its originating host for executor affinity, or an empty slice if
	// the resolver has nothing better to offer
	Alternates(file *FileRange) []Host
}
