// Package openmeteo joins calendar days to daily weather observations from
// the Open-Meteo historical archive API, with a per-day TTL cache in front of
// the network.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
	"github.com/couchcryptid/venue-analytics-service/internal/observability"
)

// Range validation errors, returned before any network call is made.
var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvertedRange = errors.New("start date must be before end date")
	ErrRangeTooWide  = errors.New("date range cannot exceed one year")
)

const maxRangeDays = 365

// ValidateRange checks a requested date span: both dates must be set, start
// must be strictly before end, and the span must not exceed one year.
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrInvalidDate
	}
	if !start.Before(end) {
		return ErrInvertedRange
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return ErrRangeTooWide
	}
	return nil
}

// Client implements domain.WeatherSource against the Open-Meteo archive
// endpoint for a fixed venue coordinate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	latitude   float64
	longitude  float64
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an archive client for the given venue coordinates.
func NewClient(latitude, longitude float64, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://archive-api.open-meteo.com/v1/archive",
		latitude:   latitude,
		longitude:  longitude,
		logger:     logger,
		metrics:    metrics,
	}
}

// FetchRange requests daily observations for the inclusive [start, end] span
// in a single archive call and returns them keyed by ISO date. The range is
// validated first; a rejected range costs no network round trip.
func (c *Client) FetchRange(ctx context.Context, start, end time.Time) (map[string]domain.WeatherObservation, error) {
	if err := ValidateRange(start, end); err != nil {
		if c.metrics != nil {
			c.metrics.WeatherRequests.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	params := url.Values{
		"latitude":   {fmt.Sprintf("%.4f", c.latitude)},
		"longitude":  {fmt.Sprintf("%.4f", c.longitude)},
		"start_date": {start.Format(domain.ISODateLayout)},
		"end_date":   {end.Format(domain.ISODateLayout)},
		"daily":      {"temperature_2m_mean,weathercode,precipitation_sum,windspeed_10m_max"},
		"timezone":   {"auto"},
	}

	observations, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	if c.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		c.metrics.WeatherRequests.WithLabelValues(outcome).Inc()
	}
	if err == nil {
		c.logger.Debug("fetched weather range",
			"start", start.Format(domain.ISODateLayout),
			"end", end.Format(domain.ISODateLayout),
			"days", len(observations),
		)
	}
	return observations, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (map[string]domain.WeatherObservation, error) {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather archive request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var archive response
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(archive.Daily.Time) == 0 {
		return nil, errors.New("open-meteo API: response has no daily data")
	}

	observations := make(map[string]domain.WeatherObservation, len(archive.Daily.Time))
	for i, date := range archive.Daily.Time {
		description, icon := DescribeWeatherCode(dailyAt(archive.Daily.WeatherCode, i))
		observations[date] = domain.WeatherObservation{
			Date:          date,
			Temperature:   int(math.Round(dailyFloatAt(archive.Daily.TemperatureMean, i))),
			Description:   description,
			Icon:          icon,
			Precipitation: roundTenth(dailyFloatAt(archive.Daily.PrecipitationSum, i)),
			WindSpeed:     roundTenth(dailyFloatAt(archive.Daily.WindSpeedMax, i)),
		}
	}
	return observations, nil
}

// dailyAt guards against ragged parallel arrays in the archive response.
func dailyAt(values []int, i int) int {
	if i >= len(values) {
		return -1
	}
	return values[i]
}

func dailyFloatAt(values []float64, i int) float64 {
	if i >= len(values) {
		return 0
	}
	return values[i]
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Open-Meteo archive response types. The daily block is a set of parallel
// arrays indexed by date.

type response struct {
	Daily daily `json:"daily"`
}

type daily struct {
	Time             []string  `json:"time"`
	TemperatureMean  []float64 `json:"temperature_2m_mean"`
	WeatherCode      []int     `json:"weathercode"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WindSpeedMax     []float64 `json:"windspeed_10m_max"`
}
