package driver

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrDriverIsNotConstructed is returned when a Driver instance was not created through
	// the NewDriver factory method.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// UnnamedDriver is what DisplayName returns for drivers without a name.
const UnnamedDriver = "Unnamed Driver"

// Contact is the optional free-text information kept for a driver.
type Contact struct {
	// Phone is shown on driver cards only.
	Phone string

	// City is compared against order cities by the matching tiers.
	City string

	// Address is the driver's home base, used for geocoding and address matching.
	Address string
}

// Driver is a delivery driver available for assignment.
//
// Driver follows these invariants:
//   - Must have a valid unique identifier
//   - Never stores a delivery load; loads are counted per assignment run
//   - Carries coordinates only when they were resolved during the current run
//   - Can only be created through NewDriver constructor
type Driver struct {
	// id is the unique identifier for the driver
	id kernel.UUID

	// name is the display name as stored, may be empty
	name string

	// contact holds phone, city and address
	contact Contact

	// location is the geocoded home base, nil when unresolved
	location *kernel.Coordinates

	// isConstructed ensures the driver was created via NewDriver
	isConstructed bool
}

// NewDriver creates a new Driver instance with validation.
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Display name, may be empty
//   - contact: Phone, city and address, each may be empty
//
// Returns:
//   - *Driver: The created driver if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Ravi Kumar",
//	    driver.Contact{Phone: "+91 98200 00000", City: "Mumbai", Address: "Andheri East"})
func NewDriver(id kernel.UUID, name string, contact Contact) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Driver{
		id:            id,
		name:          strings.TrimSpace(name),
		contact:       contact,
		isConstructed: true,
	}, nil
}

// Validate ensures the Driver instance was properly constructed through NewDriver.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}

	return nil
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the stored name, possibly empty.
func (d *Driver) Name() string {
	return d.name
}

// DisplayName returns the name, or UnnamedDriver when it is empty.
func (d *Driver) DisplayName() string {
	if d.name == "" {
		return UnnamedDriver
	}
	return d.name
}

// Contact returns phone, city and address.
func (d *Driver) Contact() Contact {
	return d.contact
}

// Location returns the geocoded home base and whether it is known.
func (d *Driver) Location() (kernel.Coordinates, bool) {
	if d.location == nil {
		return kernel.Coordinates{}, false
	}
	return *d.location, true
}

// WithLocation returns a copy of the driver carrying the given coordinates.
// The receiver is left untouched.
func (d *Driver) WithLocation(location kernel.Coordinates) (*Driver, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	enriched := *d
	enriched.location = &location
	return &enriched, nil
}

// FullAddress is the geocoder query for the driver: the non-blank parts of
// address and city joined with ", ".
//
// Example:
//
//	Contact{Address: "Andheri East", City: "Mumbai"} // "Andheri East, Mumbai"
//	Contact{City: "Mumbai"}                          // "Mumbai"
func (d *Driver) FullAddress() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{d.contact.Address, d.contact.City} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// NormalizedCity returns the trimmed, lower-cased city.
func (d *Driver) NormalizedCity() string {
	return kernel.Normalize(d.contact.City)
}

// NormalizedAddress returns the trimmed, lower-cased address.
func (d *Driver) NormalizedAddress() string {
	return kernel.Normalize(d.contact.Address)
}
