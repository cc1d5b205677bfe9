package scan

import "github.com/go-scythe/scythe"

// PreferredLocations derives the ranked worker locations for a unit,
// consulting resolver for better-informed alternates when one is provided.
// The resolver is queried with the unit's first file only; if it accepts the
// defaults, or yields no alternates, the unit's own locality hints are
// returned unchanged.
func PreferredLocations(unit *scythe.PartitionUnit, resolver scythe.LocalityResolver) []scythe.Host {
	defaults := unit.PreferredLocations()
	if resolver == nil || len(unit.Ranges) == 0 || resolver.AcceptsDefaults(defaults) {
		return defaults
	}
	alternates := resolver.Alternates(unit.Ranges[0])
	if len(alternates) == 0 {
		return defaults
	}
	return alternates
}
