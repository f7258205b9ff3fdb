package geocoding_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"dispatch/internal/core/application/geocoding"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Search(ctx context.Context, query string) ([]kernel.Coordinates, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.Coordinates), args.Error(1)
}

// mapCache is a minimal in-memory GeocodeCache that can be told to fail.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]ports.GeocodeEntry
	getErr  error
	putErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]ports.GeocodeEntry)}
}

func (c *mapCache) Get(_ context.Context, key string) (ports.GeocodeEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return ports.GeocodeEntry{}, false, c.getErr
	}
	e, ok := c.entries[key]
	return e, ok, nil
}

func (c *mapCache) Put(_ context.Context, key string, entry ports.GeocodeEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[key] = entry
	return nil
}

func (c *mapCache) Reset(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ports.GeocodeEntry)
	return nil
}

func (c *mapCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustCoordinates(t *testing.T, lat, lon float64) kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lon)
	require.NoError(t, err)
	return c
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "12 mg road, pune", geocoding.CacheKey("  12 MG Road, Pune "))
	assert.Empty(t, geocoding.CacheKey("   "))
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	pune := mustCoordinates(t, 18.5204, 73.8567)

	t.Run("should skip blank address without lookup or cache write", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		cache := newMapCache()
		r := geocoding.NewResolver(geocoder, cache, discardLogger())

		_, ok := r.Resolve(ctx, "  \t ")

		assert.False(t, ok)
		geocoder.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		assert.Zero(t, cache.len())
	})

	t.Run("should call geocoder once for repeated address", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Pune").Return([]kernel.Coordinates{pune}, nil).Once()
		r := geocoding.NewResolver(geocoder, newMapCache(), discardLogger())

		first, ok1 := r.Resolve(ctx, "Pune")
		second, ok2 := r.Resolve(ctx, "  pune ")

		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, pune, first)
		assert.Equal(t, pune, second)
		geocoder.AssertExpectations(t)
		geocoder.AssertNumberOfCalls(t, "Search", 1)
	})

	t.Run("should use first candidate", func(t *testing.T) {
		mumbai := mustCoordinates(t, 19.0760, 72.8777)
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Maharashtra").Return([]kernel.Coordinates{mumbai, pune}, nil).Once()
		r := geocoding.NewResolver(geocoder, newMapCache(), discardLogger())

		got, ok := r.Resolve(ctx, "Maharashtra")

		require.True(t, ok)
		assert.Equal(t, mumbai, got)
	})

	t.Run("should cache lookup failure as unresolved", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Atlantis").Return(nil, errors.New("503 service unavailable")).Once()
		cache := newMapCache()
		r := geocoding.NewResolver(geocoder, cache, discardLogger())

		_, ok1 := r.Resolve(ctx, "Atlantis")
		_, ok2 := r.Resolve(ctx, "Atlantis")

		assert.False(t, ok1)
		assert.False(t, ok2)
		geocoder.AssertNumberOfCalls(t, "Search", 1)

		entry, found, err := cache.Get(ctx, "atlantis")
		require.NoError(t, err)
		require.True(t, found)
		assert.False(t, entry.Resolved)
	})

	t.Run("should cache empty result as unresolved", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Nowhere").Return([]kernel.Coordinates{}, nil).Once()
		r := geocoding.NewResolver(geocoder, newMapCache(), discardLogger())

		_, ok1 := r.Resolve(ctx, "Nowhere")
		_, ok2 := r.Resolve(ctx, "nowhere")

		assert.False(t, ok1)
		assert.False(t, ok2)
		geocoder.AssertNumberOfCalls(t, "Search", 1)
	})

	t.Run("should keep lookup failure out of shared tiers", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Atlantis").Return(nil, errors.New("429 too many requests")).Once()
		local, shared := newMapCache(), newMapCache()
		r := geocoding.NewResolver(geocoder, geocoding.NewTieredCache(local, shared), discardLogger())

		_, ok1 := r.Resolve(ctx, "Atlantis")
		_, ok2 := r.Resolve(ctx, "Atlantis")

		assert.False(t, ok1)
		assert.False(t, ok2)
		geocoder.AssertNumberOfCalls(t, "Search", 1)
		assert.Equal(t, 1, local.len())
		assert.Zero(t, shared.len(), "a transient failure must not outlive the process")
	})

	t.Run("should store empty result in every tier", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Nowhere").Return([]kernel.Coordinates{}, nil).Once()
		local, shared := newMapCache(), newMapCache()
		r := geocoding.NewResolver(geocoder, geocoding.NewTieredCache(local, shared), discardLogger())

		_, ok := r.Resolve(ctx, "Nowhere")

		assert.False(t, ok)
		assert.Equal(t, 1, local.len())
		assert.Equal(t, 1, shared.len())
	})

	t.Run("should not cache outcome of cancelled lookup", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Pune").Return(nil, context.Canceled).Once()
		cache := newMapCache()
		r := geocoding.NewResolver(geocoder, cache, discardLogger())

		_, ok := r.Resolve(cancelled, "Pune")

		assert.False(t, ok)
		assert.Zero(t, cache.len())
	})

	t.Run("should treat cache read error as miss", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Pune").Return([]kernel.Coordinates{pune}, nil)
		cache := newMapCache()
		cache.getErr = errors.New("redis down")
		r := geocoding.NewResolver(geocoder, cache, discardLogger())

		got, ok := r.Resolve(ctx, "Pune")

		require.True(t, ok)
		assert.Equal(t, pune, got)
	})

	t.Run("should still resolve when cache write fails", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Pune").Return([]kernel.Coordinates{pune}, nil)
		cache := newMapCache()
		cache.putErr = errors.New("disk full")
		r := geocoding.NewResolver(geocoder, cache, discardLogger())

		_, ok := r.Resolve(ctx, "Pune")

		assert.True(t, ok)
	})

	t.Run("should query again after reset", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Search", mock.Anything, "Pune").Return([]kernel.Coordinates{pune}, nil).Twice()
		r := geocoding.NewResolver(geocoder, newMapCache(), discardLogger())

		r.Resolve(ctx, "Pune")
		require.NoError(t, r.Reset(ctx))
		r.Resolve(ctx, "Pune")

		geocoder.AssertExpectations(t)
	})
}

func TestResolver_ConcurrentCallersShareCache(t *testing.T) {
	pune := mustCoordinates(t, 18.5204, 73.8567)
	geocoder := &MockGeocoder{}
	geocoder.On("Search", mock.Anything, "Pune").Return([]kernel.Coordinates{pune}, nil)
	r := geocoding.NewResolver(geocoder, newMapCache(), discardLogger())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok := r.Resolve(context.Background(), "Pune")
			assert.True(t, ok)
			assert.Equal(t, pune, got)
		}()
	}
	wg.Wait()

	calls := len(geocoder.Calls)
	assert.GreaterOrEqual(t, calls, 1)
	assert.LessOrEqual(t, calls, 8)

	r.Resolve(context.Background(), "Pune")
	assert.Len(t, geocoder.Calls, calls, "a cached key is never queried again")
}
