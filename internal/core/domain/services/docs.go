// Package services provides the domain services of the assignment system.
//
// The package includes:
//   - AssignmentEngine: tiered, load-aware matching of open orders to drivers
//   - MatchingConfig: the tunable constants of the engine
//   - AssignmentExporter: comma separated rendering of an assignment
//
// Services are pure: they take enriched drivers and orders and return values,
// without I/O or shared state.
package services
