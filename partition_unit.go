package scythe

// A PartitionUnit is the ordered sequence of FileRanges which a single worker
// processes as one task. Range order is significant: it is the order in which
// records are produced. A unit may be empty, in which case its task produces
// zero records without error.
type PartitionUnit struct {
	Ranges []*FileRange
}

// TotalLength returns the total number of bytes covered by this unit's ranges
func (pu *PartitionUnit) TotalLength() int64 {
	var total int64
	for _, r := range pu.Ranges {
		total += r.Length
	}
	return total
}

// PreferredLocations returns the union of this unit's locality hints as Hosts,
// in first-seen priority order
func (pu *PartitionUnit) PreferredLocations() []Host {
	seen := make(map[string]bool)
	var hosts []Host
	for _, r := range pu.Ranges {
		for _, h := range r.Hosts {
			if !seen[h] {
				seen[h] = true
				hosts = append(hosts, Host{Name: h})
			}
		}
	}
	return hosts
}
