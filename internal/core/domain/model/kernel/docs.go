// Package kernel holds the value objects shared by every aggregate:
// UUID identifiers and named delivery Locations.
//
// Both are immutable, comparable and invalid as zero values; they are built
// through their constructors and checked with Validate.
package kernel
