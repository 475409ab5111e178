// Package assignment models the assignment ledger: the Assignment aggregate
// linking an order to a courier, and the append-only LogEntry audit record.
//
// Assignments are never deleted. A Confirmed assignment is final; a Failed
// one may be promoted by the retry engine until its retry count reaches the
// configured ceiling (DefaultRetryCeiling when unset).
package assignment
