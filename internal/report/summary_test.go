package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
)

func sampleRecords(t *testing.T) []domain.VisitorRecord {
	t.Helper()
	parse := func(ts string) time.Time {
		parsed, err := time.Parse(domain.TimestampLayout, ts)
		require.NoError(t, err)
		return parsed
	}
	return []domain.VisitorRecord{
		{Timestamp: parse("1/01/2024 9:00"), EnteringVisitors: 10, LeavingVisitors: 8, EnteringMen: 6, EnteringWomen: 4, EnteringGroups: 5, Passersby: 100},
		{Timestamp: parse("1/01/2024 10:00"), EnteringVisitors: 20, LeavingVisitors: 18, EnteringMen: 12, EnteringWomen: 8, EnteringGroups: 5, Passersby: 100},
		{Timestamp: parse("2/01/2024 9:00"), EnteringVisitors: 40, LeavingVisitors: 30, EnteringMen: 20, EnteringWomen: 20, EnteringGroups: 10, Passersby: 100},
	}
}

func TestWriteSummary(t *testing.T) {
	records := sampleRecords(t)
	days := domain.DailyAggregates(records)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, records, days))
	out := buf.String()

	assert.Contains(t, out, "3 records, 2 days")
	assert.Contains(t, out, "[success] all data appears to be valid")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "capture=15.00%")
	assert.Contains(t, out, "Top days by visitors:")
	assert.Contains(t, out, "1. 2024-01-02  40 visitors")
	assert.Contains(t, out, "Top days by capture rate:")
	assert.Contains(t, out, "1. 2024-01-02  40.00%")
}
