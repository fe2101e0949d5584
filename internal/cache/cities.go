package cache

import (
	"context"
	"time"

	"github.com/olegiv/cafe-go/internal/store"
)

const citiesKey = "cities:all"

// CityCache caches the city list, which changes only through migrations or seeding.
type CityCache struct {
	typed   *TypedCache[[]store.City]
	queries *store.Queries
}

// NewCityCache creates a city cache over the given backend.
func NewCityCache(c Cache, queries *store.Queries, ttl time.Duration) *CityCache {
	return &CityCache{
		typed:   NewTypedCache[[]store.City](c, ttl),
		queries: queries,
	}
}

// List returns all cities ordered by name.
func (c *CityCache) List(ctx context.Context) ([]store.City, error) {
	return c.typed.GetOrSet(ctx, citiesKey, func(ctx context.Context) ([]store.City, error) {
		return c.queries.ListCities(ctx)
	})
}

// Invalidate drops the cached list.
func (c *CityCache) Invalidate(ctx context.Context) error {
	return c.typed.Delete(ctx, citiesKey)
}
