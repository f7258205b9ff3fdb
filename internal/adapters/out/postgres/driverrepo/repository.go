// Package driverrepo reads drivers from PostgreSQL using GORM.
// Rows come from the drivers table, or from the profiles table when the
// drivers table is empty.
package driverrepo

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/driver"

	"gorm.io/gorm"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Migrate creates or updates the drivers and profiles tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&DriverDTO{}, &ProfileDTO{})
}

// ListDrivers returns the rows of the drivers table ordered by id.
// When that table reads fine but is empty, the profiles table is used instead.
// An error reading the drivers table is returned without fallback.
func (r *GormDriverRepository) ListDrivers(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	if len(dtos) == 0 {
		var profiles []ProfileDTO
		if err := r.db.WithContext(ctx).Order("id").Find(&profiles).Error; err != nil {
			return nil, fmt.Errorf("list driver profiles: %w", err)
		}
		for _, p := range profiles {
			dtos = append(dtos, DriverDTO(p))
		}
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("driver %s: %w", dto.ID, err)
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}
