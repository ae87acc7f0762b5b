package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

const testCSV = `Timestamp,Entering,Leaving,Men In,Men Out,Women In,Women Out,Groups In,Groups Out,Passersby
1/01/2024 9:00,10,8,4,3,6,5,3,2,120
1/01/2024 10:00,20,18,10,9,10,9,6,5,240
not-a-date,5,5,2,2,3,3,1,1,50
1/01/2024 11:00,6
`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 0, slog.Default(), observability.NewMetricsForTesting())
}

func TestFetchRecordsParsesFeed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testCSV))
	})

	records, err := client.FetchRecords(context.Background())
	require.NoError(t, err)

	// Header skipped, bad-timestamp row dropped, short row padded with zeros.
	require.Len(t, records, 3)

	assert.Equal(t, 10, records[0].EnteringVisitors)
	assert.Equal(t, 120, records[0].Passersby)
	assert.Equal(t, 9, records[0].Hour())

	assert.Equal(t, 6, records[2].EnteringVisitors)
	assert.Equal(t, 0, records[2].Passersby)
}

func TestFetchRecordsReconcilesGender(t *testing.T) {
	// Sub-counts 4+6=10 disagree with the total of 12 and get rescaled.
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("h1,h2,h3,h4,h5,h6,h7,h8,h9,h10\n1/01/2024 9:00,12,0,4,0,6,0,0,0,0\n"))
	})

	records, err := client.FetchRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 5, records[0].EnteringMen)
	assert.Equal(t, 7, records[0].EnteringWomen)
	assert.Equal(t, 12, records[0].EnteringMen+records[0].EnteringWomen)
}

func TestFetchRecordsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchRecordsEmptyBody(t *testing.T) {
	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {})

	records, err := client.FetchRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
