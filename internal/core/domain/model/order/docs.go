// Package order models the open delivery orders that the assignment engine
// distributes among drivers.
//
// Orders are owned by the order system and only read here. A run enriches them
// with geocoded coordinates through WithLocation, which returns a copy.
package order
