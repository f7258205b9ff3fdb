package services

import (
	"strings"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ExportHeader is the first line of every export.
const ExportHeader = "order_id,order_number,driver_id,driver_name,driver_city"

// AssignmentExporter renders an assignment as comma separated text.
//
// Output contract:
//   - first line is ExportHeader
//   - one line per order, assigned or not, in the given order
//   - driver columns are empty for unassigned orders and for driver IDs that
//     are not in the driver list
//   - lines are joined with "\n", there is no trailing newline
//   - values are written verbatim; a comma inside a value is not escaped and
//     shifts the columns of that line
type AssignmentExporter struct{}

// NewAssignmentExporter creates a new AssignmentExporter instance.
func NewAssignmentExporter() AssignmentExporter {
	return AssignmentExporter{}
}

// Export renders the assignment.
//
// Example:
//
//	order_id,order_number,driver_id,driver_name,driver_city
//	3f2b8c1e-...,1042,9a1d...,Ravi Kumar,Mumbai
//	77c0e2aa-...,1043,,,
func (AssignmentExporter) Export(a assignment.Assignment, orders []*order.Order, drivers []*driver.Driver) string {
	byID := make(map[kernel.UUID]*driver.Driver, len(drivers))
	for _, d := range drivers {
		byID[d.ID()] = d
	}

	lines := make([]string, 0, len(orders)+1)
	lines = append(lines, ExportHeader)

	for _, o := range orders {
		var driverID, name, city string
		if id, ok := a.DriverFor(o.ID()); ok {
			driverID = id.String()
			if d, known := byID[id]; known {
				name = d.Name()
				city = d.Contact().City
			}
		}

		lines = append(lines, strings.Join([]string{o.ID().String(), o.Number(), driverID, name, city}, ","))
	}

	return strings.Join(lines, "\n")
}
