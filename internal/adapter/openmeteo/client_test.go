package openmeteo

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

const archiveResponse = `{
	"daily": {
		"time": ["2024-01-01", "2024-01-02"],
		"temperature_2m_mean": [5.6, -0.4],
		"weathercode": [61, 71],
		"precipitation_sum": [4.26, 0.0],
		"windspeed_10m_max": [23.14, 11.0]
	}
}`

func newArchiveClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(50.8503, 4.3517, 0, slog.Default(), observability.NewMetricsForTesting())
	c.baseURL = srv.URL
	return c
}

func day(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", iso)
	require.NoError(t, err)
	return d
}

func TestFetchRangeDecodesDailyArrays(t *testing.T) {
	client := newArchiveClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-01-02", r.URL.Query().Get("end_date"))
		assert.Contains(t, r.URL.Query().Get("daily"), "temperature_2m_mean")
		w.Write([]byte(archiveResponse))
	})

	obs, err := client.FetchRange(context.Background(), day(t, "2024-01-01"), day(t, "2024-01-02"))
	require.NoError(t, err)
	require.Len(t, obs, 2)

	first := obs["2024-01-01"]
	assert.Equal(t, 6, first.Temperature, "mean temperature rounds to nearest degree")
	assert.Equal(t, "Rain", first.Description)
	assert.Equal(t, "10d", first.Icon)
	assert.Equal(t, 4.3, first.Precipitation)
	assert.Equal(t, 23.1, first.WindSpeed)

	second := obs["2024-01-02"]
	assert.Equal(t, 0, second.Temperature)
	assert.Equal(t, "Snow", second.Description)
}

func TestFetchRangeRaggedArrays(t *testing.T) {
	client := newArchiveClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"daily": {"time": ["2024-01-01", "2024-01-02"], "temperature_2m_mean": [5.0], "weathercode": [0]}}`))
	})

	obs, err := client.FetchRange(context.Background(), day(t, "2024-01-01"), day(t, "2024-01-02"))
	require.NoError(t, err)

	assert.Equal(t, "Clear sky", obs["2024-01-01"].Description)
	assert.Equal(t, "Unknown", obs["2024-01-02"].Description)
	assert.Equal(t, 0, obs["2024-01-02"].Temperature)
}

func TestFetchRangeRejectsBeforeNetwork(t *testing.T) {
	called := false
	client := newArchiveClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.Write([]byte(archiveResponse))
	})

	_, err := client.FetchRange(context.Background(), day(t, "2024-01-02"), day(t, "2024-01-01"))
	assert.ErrorIs(t, err, ErrInvertedRange)
	assert.False(t, called, "invalid range must not reach the API")
}

func TestFetchRangeAPIError(t *testing.T) {
	client := newArchiveClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"reason":"out of range"}`, http.StatusBadRequest)
	})

	_, err := client.FetchRange(context.Background(), day(t, "2024-01-01"), day(t, "2024-01-02"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestFetchRangeNoDailyData(t *testing.T) {
	client := newArchiveClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"daily": {"time": []}}`))
	})

	_, err := client.FetchRange(context.Background(), day(t, "2024-01-01"), day(t, "2024-01-02"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no daily data")
}

func TestValidateRange(t *testing.T) {
	start := day(t, "2024-01-01")

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid", start, start.AddDate(0, 0, 7), nil},
		{"zero start", time.Time{}, start, ErrInvalidDate},
		{"zero end", start, time.Time{}, ErrInvalidDate},
		{"equal dates", start, start, ErrInvertedRange},
		{"inverted", start.AddDate(0, 0, 1), start, ErrInvertedRange},
		{"full year", start, start.AddDate(0, 0, 365), nil},
		{"over a year", start, start.AddDate(0, 0, 366), ErrRangeTooWide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.start, tt.end)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
