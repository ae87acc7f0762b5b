package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
)

func readyService(t *testing.T, weather domain.WeatherSource) *Service {
	t.Helper()
	svc := newTestService(&stubFeed{records: testRecords(t)}, weather)
	require.NoError(t, svc.Refresh(context.Background()))
	return svc
}

func isoDay(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.ISODateLayout, iso)
	require.NoError(t, err)
	return d
}

func TestDailyOverview(t *testing.T) {
	weather := &stubWeather{}
	svc := readyService(t, weather)

	overview, err := svc.DailyOverview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.Days, 2)
	monday := overview.Days[0]
	assert.Equal(t, 30, monday.EnteringVisitors)
	assert.InDelta(t, 15.0, monday.CaptureRate, 0.001)
	assert.InDelta(t, 33.333, monday.ConversionRate, 0.01)
	require.NotNil(t, monday.Weather)
	assert.Equal(t, "Clear sky", monday.Weather.Description)

	// Tuesday leads both rankings: 40 visitors and a 40% capture rate.
	require.Len(t, overview.TopVisitors, 2)
	assert.Equal(t, 40.0, overview.TopVisitors[0].Value)
	require.Len(t, overview.TopCaptureRates, 2)
	assert.InDelta(t, 40.0, overview.TopCaptureRates[0].Value, 0.001)

	require.NotEmpty(t, overview.Findings)
	assert.Equal(t, domain.FindingSuccess, overview.Findings[0].Level)
	assert.Empty(t, overview.WeatherError)
}

func TestDailyOverviewWeatherFailureIsScoped(t *testing.T) {
	svc := readyService(t, &stubWeather{err: errors.New("archive unreachable")})

	overview, err := svc.DailyOverview(context.Background())
	require.NoError(t, err, "a weather failure must not fail the view")

	assert.Equal(t, "archive unreachable", overview.WeatherError)
	require.Len(t, overview.Days, 2)
	for _, day := range overview.Days {
		assert.Nil(t, day.Weather)
	}
}

func TestDayWithoutBenchmark(t *testing.T) {
	weather := &stubWeather{}
	svc := readyService(t, weather)

	view, err := svc.Day(context.Background(), DayRequest{Date: isoDay(t, "2024-01-01")})
	require.NoError(t, err)

	assert.Len(t, view.Hourly, 2)
	assert.Equal(t, 30, view.Primary.EnteringVisitors)
	assert.Nil(t, view.Benchmark)
	require.Len(t, view.Periods, 3)
	assert.Equal(t, "Morning", view.Periods[0].Name)
	// Morning covers [7, 10), so only the 9:00 sample counts.
	assert.InDelta(t, 10.0, view.Periods[0].Rate, 0.001)
	assert.Nil(t, view.Periods[0].BenchmarkRate)

	// A single-day span is widened so the archive range stays valid.
	require.Len(t, weather.ranges, 1)
	assert.Equal(t, isoDay(t, "2024-01-01"), weather.ranges[0][0])
	assert.Equal(t, isoDay(t, "2024-01-02"), weather.ranges[0][1])
	require.NotNil(t, view.Primary.Weather)
}

func TestDayWithDateBenchmark(t *testing.T) {
	svc := readyService(t, &stubWeather{})

	view, err := svc.Day(context.Background(), DayRequest{
		Date:          isoDay(t, "2024-01-01"),
		Benchmark:     BenchmarkDate,
		BenchmarkDate: isoDay(t, "2024-01-02"),
	})
	require.NoError(t, err)

	require.NotNil(t, view.Benchmark)
	assert.False(t, view.Benchmark.IsAverage)
	assert.Equal(t, 40, view.Benchmark.EnteringVisitors)
	assert.Len(t, view.BenchmarkHourly, 1)

	// Monday trails Tuesday on visitors and capture rate.
	assert.Equal(t, domain.ComparisonUnfavorable, view.Primary.Marks.Visitors)
	assert.Equal(t, domain.ComparisonFavorable, view.Benchmark.Marks.Visitors)
	assert.Equal(t, domain.ComparisonUnfavorable, view.Primary.Marks.CaptureRate)

	require.Len(t, view.Periods, 3)
	require.NotNil(t, view.Periods[0].BenchmarkRate)
	assert.InDelta(t, 40.0, *view.Periods[0].BenchmarkRate, 0.001)

	require.NotNil(t, view.Primary.Weather)
	require.NotNil(t, view.Benchmark.Weather)
}

func TestDayWithAverageBenchmark(t *testing.T) {
	svc := readyService(t, &stubWeather{})

	view, err := svc.Day(context.Background(), DayRequest{
		Date:      isoDay(t, "2024-01-01"),
		Benchmark: BenchmarkAverage,
	})
	require.NoError(t, err)

	// Only one Monday in the history, so the averages equal that Monday.
	require.NotNil(t, view.Benchmark)
	assert.True(t, view.Benchmark.IsAverage)
	assert.Equal(t, 30, view.Benchmark.EnteringVisitors)
	assert.Len(t, view.BenchmarkHourly, 2)
	assert.Nil(t, view.Benchmark.Weather, "averages describe no single day")

	assert.Equal(t, domain.ComparisonEven, view.Primary.Marks.Visitors)
}

func TestDayWithCustomPeriod(t *testing.T) {
	svc := readyService(t, &stubWeather{})

	view, err := svc.Day(context.Background(), DayRequest{
		Date:         isoDay(t, "2024-01-01"),
		CustomPeriod: &domain.TimePeriod{Name: "Custom", StartHour: 9, EndHour: 11},
	})
	require.NoError(t, err)

	require.Len(t, view.Periods, 4)
	custom := view.Periods[3]
	assert.Equal(t, "Custom", custom.Name)
	assert.InDelta(t, 15.0, custom.Rate, 0.001)
}

func TestDayForUnknownDate(t *testing.T) {
	svc := readyService(t, &stubWeather{})

	view, err := svc.Day(context.Background(), DayRequest{Date: isoDay(t, "2024-06-01")})
	require.NoError(t, err)

	assert.Empty(t, view.Hourly)
	assert.Zero(t, view.Primary.EnteringVisitors)
	assert.Equal(t, 100.0, view.Primary.Accuracy, "no counts at all agree perfectly")
	assert.Equal(t, "N/A", view.Primary.GenderSplit)
}

func TestViewsNotReady(t *testing.T) {
	svc := newTestService(&stubFeed{}, &stubWeather{})

	_, err := svc.DailyOverview(context.Background())
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = svc.Day(context.Background(), DayRequest{Date: isoDay(t, "2024-01-01")})
	assert.ErrorIs(t, err, ErrNotReady)
}
