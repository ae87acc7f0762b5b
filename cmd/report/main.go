// Command report produces a one-shot plain-text analytics report from a
// visitor-sensor CSV feed, plus an optional HTML chart page.
//
// Usage:
//
//	go run ./cmd/report -feed https://example.com/feed.csv
//	go run ./cmd/report -file data/feed.csv -charts out.html
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/couchcryptid/venue-analytics-service/internal/adapter/feed"
	"github.com/couchcryptid/venue-analytics-service/internal/domain"
	"github.com/couchcryptid/venue-analytics-service/internal/observability"
	"github.com/couchcryptid/venue-analytics-service/internal/report"
)

func main() {
	feedURL := flag.String("feed", "", "URL of the visitor-sensor CSV feed")
	filePath := flag.String("file", "", "path to a local CSV feed file (overrides -feed)")
	chartsPath := flag.String("charts", "", "optional path to write an HTML chart page")
	timeout := flag.Duration("timeout", 30*time.Second, "feed fetch timeout")
	flag.Parse()

	if *feedURL == "" && *filePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*feedURL, *filePath, *chartsPath, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(feedURL, filePath, chartsPath string, timeout time.Duration) int {
	records, err := loadRecords(feedURL, filePath, timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load feed: %v\n", err)
		return 1
	}

	days := domain.DailyAggregates(records)
	if err := report.WriteSummary(os.Stdout, records, days); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: write report: %v\n", err)
		return 1
	}

	if chartsPath != "" {
		if err := writeCharts(chartsPath, records, days); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: write charts: %v\n", err)
			return 1
		}
		fmt.Printf("\nChart page written to %s\n", chartsPath)
	}
	return 0
}

func loadRecords(feedURL, filePath string, timeout time.Duration) ([]domain.VisitorRecord, error) {
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parseCSV(f)
	}

	logger := observability.NewLogger("warn", "text")
	metrics := observability.NewMetrics()
	client := feed.NewClient(feedURL, timeout, logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.FetchRecords(ctx)
}

func parseCSV(r io.Reader) ([]domain.VisitorRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	var records []domain.VisitorRecord //nolint:prealloc // skipped rows shrink the result
	for _, row := range rows[1:] {
		rec, err := domain.ParseRow(row)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeCharts(path string, records []domain.VisitorRecord, days []domain.DailyAggregate) error {
	var latestHourly []domain.VisitorRecord
	if len(days) > 0 {
		latestHourly = domain.RecordsForDay(records, days[len(days)-1].Date)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.DashboardPage(days, latestHourly).Render(f)
}
