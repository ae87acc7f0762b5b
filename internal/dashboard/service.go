// Package dashboard holds the visible data snapshot and assembles the three
// dashboard views (daily overview, day analysis, benchmark comparison) from
// it. A refresh loop replaces the snapshot wholesale; every view computation
// reads one immutable snapshot, so no metric carries hidden state.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

// ErrNotReady is returned by view methods before a first snapshot lands.
var ErrNotReady = errors.New("no visitor data loaded yet")

// Snapshot is one immutable capture of the normalized record set and its
// daily rollups.
type Snapshot struct {
	Records   []domain.VisitorRecord
	Days      []domain.DailyAggregate
	FetchedAt time.Time
}

// Service owns the visible snapshot and refreshes it from the feed source.
type Service struct {
	feed     domain.FeedSource
	weather  domain.WeatherSource
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
	interval time.Duration

	// gen fences refreshes: a finished refresh installs its snapshot only if
	// no newer refresh has started since, so a stale response that resolves
	// late can never clobber fresher state.
	gen   atomic.Uint64
	ready atomic.Bool

	mu       sync.RWMutex
	snapshot Snapshot
}

// New creates a dashboard service. The interval is the refresh cadence used
// by Run; Refresh can also be called directly.
func New(feed domain.FeedSource, weather domain.WeatherSource, interval time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		feed:     feed,
		weather:  weather,
		logger:   logger,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
	}
}

// CheckReadiness returns nil once a first snapshot has been installed, or an
// error describing why the service is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return ErrNotReady
	}
	return nil
}

// Refresh fetches the feed and installs a new snapshot, unless a newer
// refresh started while this one was in flight, in which case the result is
// discarded. A fetch failure leaves the current snapshot untouched and is not
// retried here; the next scheduled refresh is a fresh request.
func (s *Service) Refresh(ctx context.Context) error {
	token := s.gen.Add(1)
	start := time.Now()

	records, err := s.feed.FetchRecords(ctx)
	if err != nil {
		s.logger.Error("feed refresh failed", "error", err)
		return err
	}

	snap := Snapshot{
		Records:   records,
		Days:      domain.DailyAggregates(records),
		FetchedAt: s.clock.Now(),
	}

	s.mu.Lock()
	if s.gen.Load() != token {
		s.mu.Unlock()
		s.logger.Warn("discarding superseded refresh", "token", token)
		if s.metrics != nil {
			s.metrics.SnapshotsDiscarded.Inc()
		}
		return nil
	}
	s.snapshot = snap
	s.mu.Unlock()

	s.ready.Store(true)
	if s.metrics != nil {
		s.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
		s.metrics.SnapshotRecords.Set(float64(len(records)))
		s.metrics.ServiceReady.Set(1)
	}
	s.logger.Info("snapshot refreshed", "records", len(records), "days", len(snap.Days))
	return nil
}

// Run refreshes immediately and then on every interval tick until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("dashboard refresh loop started", "interval", s.interval)
	if s.metrics != nil {
		defer s.metrics.ServiceReady.Set(0)
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("initial refresh failed", "error", err)
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("dashboard refresh loop stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if err := s.Refresh(ctx); err != nil && ctx.Err() != nil {
				return nil
			}
		}
	}
}

// Current returns the visible snapshot, or ErrNotReady before the first
// refresh completes.
func (s *Service) Current() (Snapshot, error) {
	return s.currentSnapshot()
}

// currentSnapshot returns the visible snapshot, or ErrNotReady before the
// first refresh completes.
func (s *Service) currentSnapshot() (Snapshot, error) {
	if !s.ready.Load() {
		return Snapshot{}, ErrNotReady
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, nil
}
