// Package kernel holds the value objects shared by every aggregate:
// UUID identifiers and geographic Location snapshots.
//
// Both types are immutable and invalid as zero values; use the constructors.
package kernel
