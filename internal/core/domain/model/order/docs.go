// Package order models the Order aggregate: a unit of work scoped to one
// delivery location, waiting to be matched with a courier.
//
// Orders are created by intake (NewOrder) in Unassigned status and moved to
// Assigned by the bulk assignment engine or the retry engine once a
// confirmed assignment exists for them.
package order
