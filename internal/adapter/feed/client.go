// Package feed fetches and normalizes the venue's hourly visitor-counting
// CSV document, with a whole-batch TTL cache in front of the network.
package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

// Client implements domain.FeedSource over an HTTP-hosted CSV document.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a feed client for the given document URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     logger,
		metrics:    metrics,
	}
}

// FetchRecords downloads the CSV document and normalizes it into visitor
// records. The header row is skipped. Rows with unparseable timestamps are
// skipped and counted; a failed download or unreadable CSV fails the whole
// batch with a single error, and is not retried here.
func (c *Client) FetchRecords(ctx context.Context) ([]domain.VisitorRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countFetch("error")
		return nil, fmt.Errorf("fetch visitor feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.countFetch("error")
		return nil, fmt.Errorf("visitor feed: status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // rows may be ragged; short rows pad with zeros
	rows, err := reader.ReadAll()
	if err != nil {
		c.countFetch("error")
		return nil, fmt.Errorf("parse visitor feed: %w", err)
	}
	c.countFetch("success")

	if len(rows) > 0 {
		rows = rows[1:] // header
	}

	records := make([]domain.VisitorRecord, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		rec, err := domain.ParseRow(row)
		if err != nil {
			skipped++
			c.logger.Warn("skipping feed row", "row", i+1, "error", err)
			continue
		}
		records = append(records, rec)
	}

	if c.metrics != nil {
		c.metrics.RowsParsed.Add(float64(len(records)))
		c.metrics.RowsSkipped.Add(float64(skipped))
	}
	c.logger.Debug("fetched visitor feed", "records", len(records), "skipped", skipped)
	return records, nil
}

func (c *Client) countFetch(outcome string) {
	if c.metrics != nil {
		c.metrics.FeedFetches.WithLabelValues(outcome).Inc()
	}
}
