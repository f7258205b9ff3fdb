package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not built by NewUUID or UUIDFromString.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies drivers and orders. It wraps github.com/google/uuid so the
// domain never exchanges raw strings, and it is comparable, which lets it key
// the assignment map and the per-run load counters directly.
//
// The zero value is invalid; Validate reports ErrUUIDIsNotConstructed for it.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid driver id: %w", err)
//	}
//	loads[id]++
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any textual form accepted by uuid.Parse, including
// braced and urn-prefixed variants. The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromGoogle adapts a github.com/google/uuid value, as scanned by GORM or
// bound from an HTTP path parameter.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	converted := UUID{id: id}
	if err := converted.Validate(); err != nil {
		return UUID{}, err
	}
	return converted, nil
}

// MustUUID is UUIDFromString for literals known to be valid. It panics otherwise.
func MustUUID(s string) UUID {
	id, err := UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Short returns the first eight characters of the canonical form, the way
// order cards abbreviate ids that lack an order number.
func (u UUID) Short() string {
	return u.id.String()[:8]
}

// Bytes returns the underlying github.com/google/uuid value.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
