package order

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Delivery groups the free-text destination of an order. Every field is optional.
type Delivery struct {
	// Recipient is the customer name or phone shown on unassigned order cards.
	Recipient string

	// Address is the street part of the destination.
	Address string

	// City is the destination city, used by the city and fuzzy matching tiers.
	City string

	// State is the region; it only takes part in geocoding.
	State string
}

// Order is an open delivery order as read from the order system. Orders are
// read-only inputs of an assignment run: the engine never changes them and
// geocoded coordinates are attached to a copy via WithLocation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Carries coordinates only when they were resolved during the current run
//   - Can only be created through NewOrder constructor
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-facing order number, may be empty
	number string

	// delivery is the destination description
	delivery Delivery

	// status is the fulfilment state as stored
	status Status

	// createdAt is used for newest-first ordering
	createdAt time.Time

	// location is the geocoded destination, nil when unresolved
	location *kernel.Coordinates

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order instance with validation.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - number: Order number as printed for customers, may be empty
//   - delivery: Destination text, any field may be empty
//   - status: Stored status; unknown values are kept verbatim
//   - createdAt: Creation time
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "1042",
//	    order.Delivery{Address: "12 MG Road", City: "Pune", State: "MH"},
//	    order.Pending, time.Now())
func NewOrder(id kernel.UUID, number string, delivery Delivery, status Status, createdAt time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		number:        strings.TrimSpace(number),
		delivery:      delivery,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the order number, possibly empty.
func (o *Order) Number() string {
	return o.number
}

// Delivery returns the destination description.
func (o *Order) Delivery() Delivery {
	return o.delivery
}

// Status returns the stored status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Location returns the geocoded destination and whether it is known.
func (o *Order) Location() (kernel.Coordinates, bool) {
	if o.location == nil {
		return kernel.Coordinates{}, false
	}
	return *o.location, true
}

// WithLocation returns a copy of the order carrying the given coordinates.
// The receiver is left untouched.
//
// Parameters:
//   - location: Constructed coordinates
//
// Returns:
//   - *Order: The enriched copy
//   - error: If location is a zero value
func (o *Order) WithLocation(location kernel.Coordinates) (*Order, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	enriched := *o
	enriched.location = &location
	return &enriched, nil
}

// FullAddress is the geocoder query for the order: the non-blank parts of
// address, city and state joined with ", ". Empty when all three are blank.
func (o *Order) FullAddress() string {
	return joinNonBlank(", ", o.delivery.Address, o.delivery.City, o.delivery.State)
}

// NormalizedCity returns the trimmed, lower-cased delivery city.
func (o *Order) NormalizedCity() string {
	return kernel.Normalize(o.delivery.City)
}

// NormalizedAddress returns the trimmed, lower-cased delivery address.
func (o *Order) NormalizedAddress() string {
	return kernel.Normalize(o.delivery.Address)
}

// Title is the card heading: "Order #<number>", or "Order <short id>" when the
// order has no number.
func (o *Order) Title() string {
	if o.number != "" {
		return "Order #" + o.number
	}
	return "Order " + o.id.Short()
}

// AddressDisplay joins the non-blank address and city with " • ".
func (o *Order) AddressDisplay() string {
	return joinNonBlank(" • ", o.delivery.Address, o.delivery.City)
}

func joinNonBlank(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
