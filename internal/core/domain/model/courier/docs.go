// Package courier models the Courier aggregate and its daily capacity
// accounting.
//
// A courier serves a set of named locations and may take at most
// DailyCapacity orders. Reserve is the only operation that changes the
// assigned count; persistence adapters pair it with a row lock and a
// conditional UPDATE so the bound holds across concurrent transactions.
package courier
