package openmeteo

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

// cacheEntry carries the observation together with its capture timestamp, so
// freshness is decided against the injected clock rather than go-cache's
// internal wall clock. The store's own expiry only garbage-collects.
type cacheEntry struct {
	FetchedAt   time.Time
	Observation domain.WeatherObservation
}

// CachedSource wraps a WeatherSource with a per-day TTL cache keyed by ISO
// date. A range request is served from cache when every day in the span is
// fresh; any missing or stale day triggers one inner request covering the
// full span, whose results extend the cache.
type CachedSource struct {
	inner   domain.WeatherSource
	store   *gocache.Cache
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a weather source.
func NewCachedSource(inner domain.WeatherSource, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		store:   gocache.New(ttl, ttl),
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

// FetchRange implements domain.WeatherSource. Invalid ranges are rejected
// before the cache or network is touched, mirroring the inner client.
func (c *CachedSource) FetchRange(ctx context.Context, start, end time.Time) (map[string]domain.WeatherObservation, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	result := make(map[string]domain.WeatherObservation)
	missing := false
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.ISODateLayout)
		entry, ok := c.lookup(key)
		if !ok {
			c.countCache("miss")
			missing = true
			continue
		}
		c.countCache("hit")
		result[key] = entry.Observation
	}

	if !missing {
		return result, nil
	}

	// One request for the whole span, not just the gaps: the archive API is
	// cheapest per-range, and fresh days simply overwrite their cache entries.
	fetched, err := c.inner.FetchRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	for key, obs := range fetched {
		c.store.SetDefault(key, cacheEntry{FetchedAt: now, Observation: obs})
		result[key] = obs
	}
	return result, nil
}

func (c *CachedSource) lookup(key string) (cacheEntry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return cacheEntry{}, false
	}
	entry, ok := v.(cacheEntry)
	if !ok || c.clock.Now().Sub(entry.FetchedAt) > c.ttl {
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *CachedSource) countCache(result string) {
	if c.metrics != nil {
		c.metrics.WeatherCache.WithLabelValues(result).Inc()
	}
}
