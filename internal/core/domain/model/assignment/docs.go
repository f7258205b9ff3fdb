// Package assignment holds the result types of an assignment run.
//
// The package includes:
//   - Assignment: immutable order → driver map, built with Builder
//   - Tier: which matching rule chose a driver
//   - LoadTracker: per-run order counts per driver
package assignment
