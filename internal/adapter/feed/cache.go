package feed

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

const recordsKey = "visitor-records"

// batchEntry is the cached record set with its capture timestamp.
type batchEntry struct {
	FetchedAt time.Time
	Records   []domain.VisitorRecord
}

// CachedClient wraps a FeedSource with a whole-batch TTL cache: the feed is a
// single document, so one entry with one capture timestamp covers it. A fetch
// failure is returned as-is; stale data is never served in its place.
type CachedClient struct {
	inner   domain.FeedSource
	store   *gocache.Cache
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewCachedClient creates a cache decorator around a feed source.
func NewCachedClient(inner domain.FeedSource, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedClient {
	return &CachedClient{
		inner:   inner,
		store:   gocache.New(ttl, ttl),
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

// FetchRecords implements domain.FeedSource.
func (c *CachedClient) FetchRecords(ctx context.Context) ([]domain.VisitorRecord, error) {
	if v, ok := c.store.Get(recordsKey); ok {
		if entry, ok := v.(batchEntry); ok && c.clock.Now().Sub(entry.FetchedAt) <= c.ttl {
			c.countCache("hit")
			return entry.Records, nil
		}
	}
	c.countCache("miss")

	records, err := c.inner.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(recordsKey, batchEntry{FetchedAt: c.clock.Now(), Records: records})
	return records, nil
}

func (c *CachedClient) countCache(result string) {
	if c.metrics != nil {
		c.metrics.FeedCache.WithLabelValues(result).Inc()
	}
}
