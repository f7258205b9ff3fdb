package kernel_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"pune", 18.5204, 73.8567, false},
		{"bounds", -90, 180, false},
		{"latitude too high", 90.0001, 0, true},
		{"longitude too low", 0, -180.5, true},
		{"nan latitude", math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := kernel.NewCoordinates(tt.lat, tt.lon)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Error(t, c.Validate())
				return
			}

			require.NoError(t, err)
			require.NoError(t, c.Validate())
			assert.InDelta(t, tt.lat, c.Lat(), 0)
			assert.InDelta(t, tt.lon, c.Lon(), 0)
		})
	}
}

func TestNewCoordinates_ReportsBothComponents(t *testing.T) {
	_, err := kernel.NewCoordinates(100, 200)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
	assert.Contains(t, err.Error(), "longitude")
}

func TestCoordinates_ZeroValueIsInvalid(t *testing.T) {
	var c kernel.Coordinates

	require.ErrorIs(t, c.Validate(), kernel.ErrCoordinatesAreNotConstructed)

	other, err := kernel.NewCoordinates(1, 1)
	require.NoError(t, err)
	_, err = c.DistanceKm(other)
	require.Error(t, err)
}

func TestHaversineKm(t *testing.T) {
	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		assert.InDelta(t, 111.19, kernel.HaversineKm(0, 0, 0, 1), 0.5)
	})

	t.Run("same point is zero", func(t *testing.T) {
		assert.InDelta(t, 0, kernel.HaversineKm(18.52, 73.85, 18.52, 73.85), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := kernel.HaversineKm(18.5204, 73.8567, 19.0760, 72.8777)
		ba := kernel.HaversineKm(19.0760, 72.8777, 18.5204, 73.8567)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("pune to mumbai", func(t *testing.T) {
		assert.InDelta(t, 120, kernel.HaversineKm(18.5204, 73.8567, 19.0760, 72.8777), 2)
	})

	t.Run("antipodes are half the circumference", func(t *testing.T) {
		assert.InDelta(t, math.Pi*kernel.EarthRadiusKm, kernel.HaversineKm(0, 0, 0, 180), 1e-6)
	})
}

func TestCoordinates_DistanceKm(t *testing.T) {
	a, err := kernel.NewCoordinates(0, 0)
	require.NoError(t, err)
	b, err := kernel.NewCoordinates(0, 1)
	require.NoError(t, err)

	km, err := a.DistanceKm(b)

	require.NoError(t, err)
	assert.InDelta(t, kernel.HaversineKm(0, 0, 0, 1), km, 1e-12)
}

func TestCoordinates_String(t *testing.T) {
	c, err := kernel.NewCoordinates(18.5, 73.25)
	require.NoError(t, err)

	assert.Equal(t, "Coordinates(18.500000,73.250000)", c.String())
}
