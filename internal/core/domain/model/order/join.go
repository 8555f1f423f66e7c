package order

// DeriveParentStatus computes a parent order's status from the statuses of
// its sub-orders:
//   - every child cancelled: Cancelled
//   - some, not all, children cancelled: PartiallyCancelled
//   - otherwise the least advanced child status
//
// The result does not depend on the order of statuses. With no statuses it
// returns Created.
func DeriveParentStatus(statuses ...Status) Status {
	if len(statuses) == 0 {
		return Created
	}

	cancelled := 0
	lowest := Delivered

	for _, s := range statuses {
		if s == Cancelled {
			cancelled++
			continue
		}
		if r := s.rank(); r > 0 && r < lowest.rank() {
			lowest = s
		}
	}

	switch {
	case cancelled == len(statuses):
		return Cancelled
	case cancelled > 0:
		return PartiallyCancelled
	default:
		return lowest
	}
}
