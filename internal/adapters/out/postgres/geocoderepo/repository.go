// Package geocoderepo persists geocode lookup outcomes in PostgreSQL, so they
// survive restarts and are shared between instances.
package geocoderepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGeocodeRepository implements ports.GeocodeCache and
// ports.GeocodeBulkReader using GORM.
type GormGeocodeRepository struct {
	db *gorm.DB
}

// NewGormGeocodeRepository creates a new GORM geocode repository.
func NewGormGeocodeRepository(db *gorm.DB) *GormGeocodeRepository {
	return &GormGeocodeRepository{db: db}
}

// Migrate creates or updates the geocode_cache table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&GeocodeDTO{})
}

// Get returns the cached entry for key.
func (r *GormGeocodeRepository) Get(ctx context.Context, key string) (ports.GeocodeEntry, bool, error) {
	var dto GeocodeDTO
	err := r.db.WithContext(ctx).Where("address = ?", key).First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.GeocodeEntry{}, false, nil
	}
	if err != nil {
		return ports.GeocodeEntry{}, false, fmt.Errorf("get geocode %q: %w", key, err)
	}
	return toEntry(dto), true, nil
}

// GetMany returns the cached entries for the given keys in one query.
// Keys without a row are absent from the result.
func (r *GormGeocodeRepository) GetMany(ctx context.Context, keys []string) (map[string]ports.GeocodeEntry, error) {
	out := make(map[string]ports.GeocodeEntry, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	var dtos []GeocodeDTO
	err := r.db.WithContext(ctx).
		Where("address = ANY(?)", pq.Array(keys)).
		Find(&dtos).Error
	if err != nil {
		return nil, fmt.Errorf("get geocodes: %w", err)
	}

	for _, dto := range dtos {
		out[dto.Address] = toEntry(dto)
	}
	return out, nil
}

// Put upserts the entry for key.
func (r *GormGeocodeRepository) Put(ctx context.Context, key string, entry ports.GeocodeEntry) error {
	dto := toDTO(key, entry)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"lat", "lon", "resolved", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return fmt.Errorf("put geocode %q: %w", key, err)
	}
	return nil
}

// Reset deletes every cached entry.
func (r *GormGeocodeRepository) Reset(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&GeocodeDTO{}).Error
	if err != nil {
		return fmt.Errorf("reset geocode cache: %w", err)
	}
	return nil
}
