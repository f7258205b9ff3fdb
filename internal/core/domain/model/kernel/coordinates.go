package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by HaversineKm.
	EarthRadiusKm = 6371.0

	// LatitudeMin is the smallest valid WGS84 latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the largest valid WGS84 latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the smallest valid WGS84 longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the largest valid WGS84 longitude in degrees.
	LongitudeMax = 180.0
)

// ErrCoordinatesAreNotConstructed is returned when a zero-value Coordinates is used.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates")

// Coordinates is an immutable WGS84 position in degrees.
// Geocoding produces Coordinates for driver and order addresses; they are only
// meaningful for the assignment run that resolved them and are never persisted
// on the driver or order records themselves.
//
// The zero value is invalid (it would silently mean "Gulf of Guinea"); use
// NewCoordinates and check Validate on values of unknown origin.
//
// Example:
//
//	pune, _ := kernel.NewCoordinates(18.5204, 73.8567)
//	mumbai, _ := kernel.NewCoordinates(19.0760, 72.8777)
//	km, _ := pune.DistanceKm(mumbai) // ≈ 120
type Coordinates struct { //nolint:recvcheck // setters use pointer receivers during construction
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewCoordinates validates and builds a Coordinates value.
//
// Parameters:
//   - lat: latitude in degrees, within [LatitudeMin..LatitudeMax]
//   - lon: longitude in degrees, within [LongitudeMin..LongitudeMax]
//
// Returns:
//   - Coordinates: a valid value
//   - error: every out-of-range or non-finite component, joined
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	c := Coordinates{guard: guard.NewConstructorGuard()}

	if err := errors.Join(c.setLat(lat), c.setLon(lon)); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// Validate reports ErrCoordinatesAreNotConstructed for zero values.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

// Lat returns the latitude in degrees.
func (c Coordinates) Lat() float64 {
	return c.lat
}

// Lon returns the longitude in degrees.
func (c Coordinates) Lon() float64 {
	return c.lon
}

// String implements fmt.Stringer, e.g. "Coordinates(18.520400,73.856700)".
func (c Coordinates) String() string {
	return fmt.Sprintf("Coordinates(%f,%f)", c.lat, c.lon)
}

// DistanceKm returns the great-circle distance to other using HaversineKm.
// Both values must be constructed.
func (c Coordinates) DistanceKm(other Coordinates) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}
	return HaversineKm(c.lat, c.lon, other.lat, other.lon), nil
}

// HaversineKm returns the great-circle distance in kilometres between two
// points given in degrees, on a sphere of radius EarthRadiusKm.
// No altitude or ellipsoid correction is applied.
//
// Example:
//
//	HaversineKm(0, 0, 0, 1) // ≈ 111.19
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func (c *Coordinates) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	c.lat = lat
	return nil
}

func (c *Coordinates) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}

	c.lon = lon
	return nil
}
