package services

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CapacityCache is the per-batch estimate of each courier's remaining
// capacity. It is seeded from the ranked snapshot and only lowered after a
// reservation was verified under the courier lock, so it can skip couriers
// known to be exhausted but never grants capacity on its own.
//
// A CapacityCache belongs to one bulk-assign call and is not safe for
// concurrent use.
type CapacityCache struct {
	remaining map[kernel.UUID]int
}

func NewCapacityCache() *CapacityCache {
	return &CapacityCache{remaining: make(map[kernel.UUID]int)}
}

// Seed records the snapshot capacity of couriers not seen yet in this batch.
// A courier already tracked keeps its current estimate, so a second location
// group served by the same courier does not reset what earlier groups used.
func (c *CapacityCache) Seed(couriers []*courier.Courier) {
	for _, cr := range couriers {
		if _, ok := c.remaining[cr.ID()]; ok {
			continue
		}
		c.remaining[cr.ID()] = cr.AvailableCapacity()
	}
}

// HasCapacity reports whether the estimate for id is positive. Unknown
// couriers have no capacity.
func (c *CapacityCache) HasCapacity(id kernel.UUID) bool {
	return c.remaining[id] > 0
}

// Remaining returns the current estimate for id.
func (c *CapacityCache) Remaining(id kernel.UUID) int {
	return c.remaining[id]
}

// Consume lowers the estimate after a verified reservation.
func (c *CapacityCache) Consume(id kernel.UUID) {
	if c.remaining[id] > 0 {
		c.remaining[id]--
	}
}

// MarkExhausted zeroes the estimate after the lock-and-verify step found the
// courier full.
func (c *CapacityCache) MarkExhausted(id kernel.UUID) {
	if _, ok := c.remaining[id]; ok {
		c.remaining[id] = 0
	}
}
