package services

import (
	"cmp"
	"slices"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRanker orders the eligible couriers of a location for the greedy
// walk: most available capacity first, then lightest current load.
// Ties keep their input order.
type CourierRanker struct{}

func NewCourierRanker() CourierRanker {
	return CourierRanker{}
}

// Rank returns a new slice with only the couriers eligible for location,
// sorted by rank. The input is not modified.
func (CourierRanker) Rank(location kernel.Location, couriers []*courier.Courier) []*courier.Courier {
	ranked := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if c.Validate() != nil || !c.IsEligibleFor(location) {
			continue
		}
		ranked = append(ranked, c)
	}

	slices.SortStableFunc(ranked, func(a, b *courier.Courier) int {
		if byCapacity := cmp.Compare(b.AvailableCapacity(), a.AvailableCapacity()); byCapacity != 0 {
			return byCapacity
		}
		return cmp.Compare(a.CurrentAssignedCount(), b.CurrentAssignedCount())
	})

	return ranked
}
