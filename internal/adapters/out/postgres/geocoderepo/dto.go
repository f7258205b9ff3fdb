package geocoderepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// GeocodeDTO maps a row of the geocode_cache table. Unresolved addresses are
// stored with Resolved false and zero coordinates.
type GeocodeDTO struct {
	Address   string `gorm:"primaryKey"`
	Lat       float64
	Lon       float64
	Resolved  bool
	UpdatedAt time.Time
}

// TableName specifies the database table name for cached lookups.
func (GeocodeDTO) TableName() string {
	return "geocode_cache"
}

func toDTO(key string, entry ports.GeocodeEntry) GeocodeDTO {
	dto := GeocodeDTO{Address: key, Resolved: entry.Resolved}
	if entry.Resolved {
		dto.Lat = entry.Coordinates.Lat()
		dto.Lon = entry.Coordinates.Lon()
	}
	return dto
}

// toEntry converts a row back into a cache entry. A resolved row whose
// coordinates no longer validate is reported as unresolved.
func toEntry(dto GeocodeDTO) ports.GeocodeEntry {
	if !dto.Resolved {
		return ports.UnresolvedEntry()
	}
	c, err := kernel.NewCoordinates(dto.Lat, dto.Lon)
	if err != nil {
		return ports.UnresolvedEntry()
	}
	return ports.ResolvedEntry(c)
}
