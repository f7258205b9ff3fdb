package driverrepo

import (
	"strings"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO maps a row of the drivers table.
type DriverDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName *string
	Name     *string
	Phone    *string
	City     *string
	Address  *string
}

// TableName specifies the database table name for driver rows.
func (DriverDTO) TableName() string {
	return "drivers"
}

// ProfileDTO maps a row of the user profiles table. It carries the same
// contact columns as DriverDTO.
type ProfileDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName *string
	Name     *string
	Phone    *string
	City     *string
	Address  *string
}

// TableName specifies the database table name for profile rows.
func (ProfileDTO) TableName() string {
	return "profiles"
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// toDomain converts a row into a driver. The name is full_name, or name when
// full_name is blank.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	name := deref(dto.FullName)
	if strings.TrimSpace(name) == "" {
		name = deref(dto.Name)
	}

	return driver.NewDriver(id, name, driver.Contact{
		Phone:   deref(dto.Phone),
		City:    deref(dto.City),
		Address: deref(dto.Address),
	})
}
