// Package services provides the stateless domain services behind the bulk
// assignment engine.
//
// The package includes:
//   - OrderGrouper: partitions a batch by delivery location, FIFO inside each group
//   - CourierRanker: ranks eligible couriers by available capacity, then load
//   - CapacityCache: per-batch capacity estimate lowered only after verified reservations
//
// None of them touch storage. The authoritative capacity check is the
// lock-and-verify reservation performed by the courier repository.
package services
