package dashboard

import (
	"context"
	"time"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
)

// BenchmarkKind selects what a day-analysis row is compared against.
type BenchmarkKind string

const (
	BenchmarkNone    BenchmarkKind = "none"
	BenchmarkDate    BenchmarkKind = "date"    // a second calendar day
	BenchmarkAverage BenchmarkKind = "average" // weekday-hour averages
)

// RowMarks carries the per-metric comparison marks of one row in a two-row
// benchmark. Gender split and accuracy are informational and never compared.
type RowMarks struct {
	Visitors       domain.Comparison `json:"visitors,omitempty"`
	CaptureRate    domain.Comparison `json:"capture_rate,omitempty"`
	ConversionRate domain.Comparison `json:"conversion_rate,omitempty"`
	DwellTime      domain.Comparison `json:"dwell_time,omitempty"`
}

// DayRow is one rendered row of day-level metrics. CaptureRate is the
// business-hours variant; the unrestricted rate is reported alongside.
type DayRow struct {
	Date                    time.Time                  `json:"date"`
	IsAverage               bool                       `json:"is_average,omitempty"`
	EnteringVisitors        int                        `json:"entering_visitors"`
	CaptureRate             float64                    `json:"capture_rate"`
	UnrestrictedCaptureRate float64                    `json:"unrestricted_capture_rate"`
	ConversionRate          float64                    `json:"conversion_rate"`
	DwellTimeMinutes        float64                    `json:"dwell_time_minutes"`
	DwellTime               string                     `json:"dwell_time"`
	GenderSplit             string                     `json:"gender_split"`
	Accuracy                float64                    `json:"accuracy"`
	Weather                 *domain.WeatherObservation `json:"weather,omitempty"`
	Marks                   RowMarks                   `json:"marks,omitempty"`
}

// Overview is the daily-rollups view: one row per day plus rankings and data
// quality findings. WeatherError is scoped: when set, rows simply carry no
// weather and everything else renders.
type Overview struct {
	Days            []DayRow           `json:"days"`
	TopVisitors     []domain.RankedDay `json:"top_visitors"`
	TopCaptureRates []domain.RankedDay `json:"top_capture_rates"`
	Findings        []domain.Finding   `json:"findings"`
	WeatherError    string             `json:"weather_error,omitempty"`
	FetchedAt       time.Time          `json:"fetched_at"`
}

// PeriodRate is the capture rate of one intra-day window, with an optional
// benchmark value when the view is benchmarking.
type PeriodRate struct {
	domain.TimePeriod
	Rate          float64  `json:"rate"`
	BenchmarkRate *float64 `json:"benchmark_rate,omitempty"`
}

// DayRequest selects a day-analysis view.
type DayRequest struct {
	Date          time.Time
	Benchmark     BenchmarkKind
	BenchmarkDate time.Time          // required when Benchmark is BenchmarkDate
	CustomPeriod  *domain.TimePeriod // optional extra capture-rate window
}

// DayAnalysis is the single-day view: hourly records, day metrics, period
// capture rates, and an optional benchmark row with comparison marks.
type DayAnalysis struct {
	Primary         DayRow                 `json:"primary"`
	Benchmark       *DayRow                `json:"benchmark,omitempty"`
	Hourly          []domain.VisitorRecord `json:"hourly"`
	BenchmarkHourly []domain.VisitorRecord `json:"benchmark_hourly,omitempty"`
	Periods         []PeriodRate           `json:"periods"`
	WeatherError    string                 `json:"weather_error,omitempty"`
}

// DailyOverview assembles the daily-rollups view from the current snapshot.
func (s *Service) DailyOverview(ctx context.Context) (Overview, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Days:            make([]DayRow, 0, len(snap.Days)),
		TopVisitors:     domain.TopDaysByVisitors(snap.Days, 3),
		TopCaptureRates: domain.TopDaysByCaptureRate(snap.Records, snap.Days, 3),
		Findings:        domain.ValidateRecords(snap.Records),
		FetchedAt:       snap.FetchedAt,
	}

	weather := s.weatherForDays(ctx, snap.Days, &overview.WeatherError)
	for _, day := range snap.Days {
		row := buildDayRow(snap.Records, day, false)
		if obs, ok := weather[day.Date.Format(domain.ISODateLayout)]; ok {
			o := obs
			row.Weather = &o
		}
		overview.Days = append(overview.Days, row)
	}
	return overview, nil
}

// Day assembles the day-analysis view, optionally benchmarked against a
// second date or the weekday-hour averages of the full history.
func (s *Service) Day(ctx context.Context, req DayRequest) (DayAnalysis, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return DayAnalysis{}, err
	}

	view := DayAnalysis{
		Hourly:  domain.RecordsForDay(snap.Records, req.Date),
		Primary: buildDayRowForDate(snap.Records, req.Date),
	}

	benchRecords, benchDate, isAverage := s.benchmarkRecords(snap, req)
	if benchRecords != nil {
		row := buildDayRowForDate(benchRecords, benchDate)
		row.IsAverage = isAverage
		view.Primary.Marks, row.Marks = compareRows(view.Primary, row)
		view.Benchmark = &row
		view.BenchmarkHourly = domain.RecordsForDay(benchRecords, benchDate)
	}

	view.Periods = s.periodRates(snap.Records, req, benchRecords, benchDate)

	weather := s.weatherForSpan(ctx, req.Date, benchDate, &view.WeatherError)
	attachWeather(&view.Primary, weather)
	if view.Benchmark != nil && !view.Benchmark.IsAverage {
		attachWeather(view.Benchmark, weather)
	}
	return view, nil
}

// benchmarkRecords resolves the record set and date a benchmark row is
// computed over. Weekday averages materialize as pseudo-records on the
// primary date, so they flow through the same metric functions.
func (s *Service) benchmarkRecords(snap Snapshot, req DayRequest) (records []domain.VisitorRecord, date time.Time, isAverage bool) {
	switch req.Benchmark {
	case BenchmarkDate:
		if req.BenchmarkDate.IsZero() {
			return nil, time.Time{}, false
		}
		return snap.Records, req.BenchmarkDate, false
	case BenchmarkAverage:
		averages := domain.WeekdayHourlyAverages(snap.Records, req.Date.Weekday())
		if len(averages) == 0 {
			return nil, time.Time{}, false
		}
		pseudo := make([]domain.VisitorRecord, 0, len(averages))
		for _, a := range averages {
			pseudo = append(pseudo, a.RecordAt(req.Date))
		}
		return pseudo, req.Date, true
	default:
		return nil, time.Time{}, false
	}
}

// periodRates computes the fixed reporting windows (plus an optional custom
// window) over the primary day, with benchmark values when benchmarking.
func (s *Service) periodRates(records []domain.VisitorRecord, req DayRequest, benchRecords []domain.VisitorRecord, benchDate time.Time) []PeriodRate {
	periods := domain.FixedPeriods
	if req.CustomPeriod != nil {
		periods = append(append([]domain.TimePeriod{}, periods...), *req.CustomPeriod)
	}

	out := make([]PeriodRate, 0, len(periods))
	for _, p := range periods {
		pr := PeriodRate{
			TimePeriod: p,
			Rate:       domain.PeriodCaptureRate(records, req.Date, p.StartHour, p.EndHour),
		}
		if benchRecords != nil {
			rate := domain.PeriodCaptureRate(benchRecords, benchDate, p.StartHour, p.EndHour)
			pr.BenchmarkRate = &rate
		}
		out = append(out, pr)
	}
	return out
}

// weatherForDays joins the overview's full day span. Failures are scoped into
// errOut and leave the rows weatherless.
func (s *Service) weatherForDays(ctx context.Context, days []domain.DailyAggregate, errOut *string) map[string]domain.WeatherObservation {
	if len(days) == 0 {
		return nil
	}
	return s.weatherForSpan(ctx, days[0].Date, days[len(days)-1].Date, errOut)
}

// weatherForSpan fetches observations covering every requested day. The
// archive range must span at least two distinct days, so a single-day request
// is widened by one day.
func (s *Service) weatherForSpan(ctx context.Context, a, b time.Time, errOut *string) map[string]domain.WeatherObservation {
	if s.weather == nil || a.IsZero() {
		return nil
	}
	start, end := a, b
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		start, end = end, start
	}
	if !start.Before(end) {
		end = start.AddDate(0, 0, 1)
	}

	weather, err := s.weather.FetchRange(ctx, start, end)
	if err != nil {
		s.logger.Warn("weather join failed", "error", err)
		*errOut = err.Error()
		return nil
	}
	return weather
}

func attachWeather(row *DayRow, weather map[string]domain.WeatherObservation) {
	if obs, ok := weather[row.Date.Format(domain.ISODateLayout)]; ok {
		o := obs
		row.Weather = &o
	}
}

// buildDayRowForDate aggregates the given records for one date and renders
// the row; a date with no records renders zero metrics.
func buildDayRowForDate(records []domain.VisitorRecord, date time.Time) DayRow {
	day := domain.DailyAggregate{Date: date}
	for _, agg := range domain.DailyAggregates(domain.RecordsForDay(records, date)) {
		day = agg
	}
	day.Date = date
	return buildDayRow(records, day, false)
}

func buildDayRow(records []domain.VisitorRecord, day domain.DailyAggregate, isAverage bool) DayRow {
	dwell := domain.DwellTime(records, day.Date)
	return DayRow{
		Date:                    day.Date,
		IsAverage:               isAverage,
		EnteringVisitors:        day.EnteringVisitors,
		CaptureRate:             domain.BusinessHoursCaptureRate(records, day.Date),
		UnrestrictedCaptureRate: domain.DayCaptureRate(records, day.Date),
		ConversionRate:          domain.ConversionRate(day.EnteringGroups, day.EnteringVisitors),
		DwellTimeMinutes:        dwell,
		DwellTime:               domain.FormatMinutes(dwell),
		GenderSplit:             domain.GenderDistribution(day.EnteringMen, day.EnteringWomen),
		Accuracy:                domain.Accuracy(day.EnteringVisitors, day.LeavingVisitors),
	}
}

// compareRows marks the four compared metrics on both rows of a benchmark
// pair. Each metric is compared independently.
func compareRows(primary, benchmark DayRow) (RowMarks, RowMarks) {
	var p, b RowMarks
	p.Visitors, b.Visitors = domain.Compare(float64(primary.EnteringVisitors), float64(benchmark.EnteringVisitors))
	p.CaptureRate, b.CaptureRate = domain.Compare(primary.CaptureRate, benchmark.CaptureRate)
	p.ConversionRate, b.ConversionRate = domain.Compare(primary.ConversionRate, benchmark.ConversionRate)
	p.DwellTime, b.DwellTime = domain.Compare(primary.DwellTimeMinutes, benchmark.DwellTimeMinutes)
	return p, b
}
