package funding

// pendingReservePercent is the waitlist overflow allowance relative to a
// property's funder count.
const pendingReservePercent = 20

// Capacity holds the slot limits derived from a property's funder count.
// Hard is the maximum number of confirmed funders; Pending the maximum
// waitlisted slots, an independent pool. Both use integer-floor arithmetic,
// so e.g. a funder count of 7 yields a pending capacity of 1.
type Capacity struct {
	Hard    int
	Pending int
}

// CapacityFor derives the capacity thresholds for a funder count.
func CapacityFor(funderCount int) Capacity {
	if funderCount < 0 {
		funderCount = 0
	}
	return Capacity{
		Hard:    funderCount,
		Pending: funderCount * pendingReservePercent / 100,
	}
}

// Soft is the fully-subscribed threshold: hard capacity plus the waitlist
// allowance.
func (c Capacity) Soft() int {
	return c.Hard + c.Pending
}
