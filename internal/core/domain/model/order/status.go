package order

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Status is the fulfilment state of an order as stored by the order system.
//
// The assignment engine never changes a status. It only uses Completed to
// exclude an order from the open set:
//
//	Pending ──> Confirmed ──> Processing ──> OutForDelivery ──> Completed
//	   │            │              │                │
//	   └────────────┴──────────────┴────────────────┴──> Cancelled
//
// Statuses coming from storage are not restricted to the known values; an
// unknown non-empty status is kept verbatim and treated as open.
type Status string

const (
	// Unknown is the empty status of records that never had one.
	Unknown Status = ""

	// Pending is a freshly placed order.
	Pending Status = "pending"

	// Confirmed orders were accepted by the shop.
	Confirmed Status = "confirmed"

	// Processing orders are being packed.
	Processing Status = "processing"

	// OutForDelivery orders have left the shop.
	OutForDelivery Status = "out_for_delivery"

	// Completed is terminal; completed orders are never assigned.
	Completed Status = "completed"

	// Cancelled orders are kept open by the order system and therefore still
	// take part in assignment.
	Cancelled Status = "cancelled"
)

func knownStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:        {},
		Confirmed:      {},
		Processing:     {},
		OutForDelivery: {},
		Completed:      {},
		Cancelled:      {},
	}
}

// ParseStatus normalises raw text (trim, lower-case) into a Status.
//
// Parameters:
//   - raw: status text as stored, e.g. "Pending" or " completed "
//
// Returns:
//   - Status: the normalised status, Unknown for blank input
//
// Example:
//
//	ParseStatus(" Out_For_Delivery ") // OutForDelivery
func ParseStatus(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}

// Validate accepts only the known statuses. Storage reads do not call it;
// it guards values entering through the API.
func (s Status) Validate() error {
	if _, ok := knownStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a known status", string(s)),
		)
	}
	return nil
}

// IsTerminal reports whether the order is done and excluded from assignment.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// String implements fmt.Stringer; Unknown renders as "unknown".
func (s Status) String() string {
	if s == Unknown {
		return "unknown"
	}
	return string(s)
}
