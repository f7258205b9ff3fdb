package assignment

import "dispatch/internal/core/domain/model/kernel"

// LoadTracker counts how many orders each driver received during one run.
// It starts at zero for every driver and is discarded when the run ends;
// loads are never stored on drivers.
type LoadTracker struct {
	loads map[kernel.UUID]int
}

// NewLoadTracker returns a tracker with a zero load for each given driver.
func NewLoadTracker(driverIDs ...kernel.UUID) *LoadTracker {
	loads := make(map[kernel.UUID]int, len(driverIDs))
	for _, id := range driverIDs {
		loads[id] = 0
	}
	return &LoadTracker{loads: loads}
}

// Load returns the current load of the driver; unknown drivers have zero.
func (t *LoadTracker) Load(driverID kernel.UUID) int {
	return t.loads[driverID]
}

// Increment adds one order to the driver's load.
func (t *LoadTracker) Increment(driverID kernel.UUID) {
	t.loads[driverID]++
}

// Snapshot returns a copy of all loads.
func (t *LoadTracker) Snapshot() map[kernel.UUID]int {
	out := make(map[kernel.UUID]int, len(t.loads))
	for id, n := range t.loads {
		out[id] = n
	}
	return out
}
