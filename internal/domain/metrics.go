package domain

import (
	"fmt"
	"math"
	"time"
)

// TimePeriod is a named intra-day hour window used for period capture rates.
type TimePeriod struct {
	Name      string `json:"name"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// FixedPeriods are the venue's standard reporting windows.
var FixedPeriods = []TimePeriod{
	{Name: "Morning", StartHour: 7, EndHour: 10},
	{Name: "Noon", StartHour: 12, EndHour: 14},
	{Name: "Afternoon", StartHour: 16, EndHour: 20},
}

// CaptureRate is the percentage of passersby who entered the venue.
// Returns 0 when no passersby were recorded.
func CaptureRate(entering, passersby int) float64 {
	if passersby <= 0 {
		return 0
	}
	return float64(entering) / float64(passersby) * 100
}

// DayCaptureRate is the unrestricted capture rate over every record on the
// given calendar day.
func DayCaptureRate(records []VisitorRecord, date time.Time) float64 {
	entering, passersby := sumCapture(RecordsForDay(records, date), func(int) bool { return true })
	return CaptureRate(entering, passersby)
}

// BusinessHoursCaptureRate is the capture rate over the given day restricted
// to the business-hours window of that day's weekday.
func BusinessHoursCaptureRate(records []VisitorRecord, date time.Time) float64 {
	hours := HoursFor(date.Weekday())
	entering, passersby := sumCapture(RecordsForDay(records, date), hours.Contains)
	return CaptureRate(entering, passersby)
}

// PeriodCaptureRate is the capture rate over the given day restricted to
// hours in [startHour, endHour).
func PeriodCaptureRate(records []VisitorRecord, date time.Time, startHour, endHour int) float64 {
	entering, passersby := sumCapture(RecordsForDay(records, date), func(h int) bool {
		return h >= startHour && h < endHour
	})
	return CaptureRate(entering, passersby)
}

func sumCapture(records []VisitorRecord, include func(hour int) bool) (entering, passersby int) {
	for _, r := range records {
		if !include(r.Hour()) {
			continue
		}
		entering += r.EnteringVisitors
		passersby += r.Passersby
	}
	return entering, passersby
}

// ConversionRate is the percentage of entering visitors who arrived as part
// of a group. Capped at 100 because group-member counts may exceed the
// visitor total in noisy sensor data. Returns 0 when no visitors entered.
func ConversionRate(groupsIn, visitorsIn int) float64 {
	if visitorsIn == 0 {
		return 0
	}
	return math.Min(float64(groupsIn)/float64(visitorsIn)*100, 100)
}

// Accuracy scores how well the entering and leaving totals agree, in
// [0, 100]. Two zero totals agree perfectly; exactly one zero total is a full
// mismatch; otherwise the smaller total as a percentage of the larger.
func Accuracy(entering, leaving int) float64 {
	if entering == 0 && leaving == 0 {
		return 100
	}
	if entering == 0 || leaving == 0 {
		return 0
	}
	return float64(min(entering, leaving)) / float64(max(entering, leaving)) * 100
}

// DwellTime estimates the average visit duration in minutes for one calendar
// day from a live-occupancy approximation.
//
// For each hourly sample i (chronological order) the live count is
// max(0, cumulative entering through i - cumulative leaving before i): the
// leaving count recorded at sample i lags by one sample, since those visitors
// were still inside when the sample opened. The live counts are averaged
// across the day's samples, divided by the day's total entering visitors and
// scaled by 600 to yield a minutes-like figure.
//
// This is a heuristic, not a physical dwell-time measurement. The lagged
// subtraction and the x600 scale are retained from the sensor vendor's
// reporting convention and have no independent justification; treat the
// result as an approximation for comparing days, not as ground truth.
//
// Returns 0 when the day has no records or no entering visitors.
func DwellTime(records []VisitorRecord, date time.Time) float64 {
	day := RecordsForDay(records, date)
	if len(day) == 0 {
		return 0
	}

	var totalLive, cumEntering, cumLeavingBefore, totalEntering int
	for _, r := range day {
		cumEntering += r.EnteringVisitors
		totalLive += max(0, cumEntering-cumLeavingBefore)
		cumLeavingBefore += r.LeavingVisitors
		totalEntering += r.EnteringVisitors
	}
	if totalEntering == 0 {
		return 0
	}

	averageLive := float64(totalLive) / float64(len(day))
	return averageLive / float64(totalEntering) * 60 * 10
}

// GenderDistribution renders the male/female split among a visitor total as a
// display string with one decimal place, e.g. "♂ 60.0% / ♀ 40.0%".
// Returns "N/A" when the total is zero.
func GenderDistribution(men, women int) string {
	total := men + women
	if total == 0 {
		return "N/A"
	}
	menPct := float64(men) / float64(total) * 100
	womenPct := float64(women) / float64(total) * 100
	return fmt.Sprintf("♂ %.1f%% / ♀ %.1f%%", menPct, womenPct)
}

// FormatMinutes renders a minute figure as HH:MM. Negative or NaN input
// renders as "00:00".
func FormatMinutes(minutes float64) string {
	if math.IsNaN(minutes) || minutes < 0 {
		return "00:00"
	}
	h := int(minutes) / 60
	m := int(math.Round(math.Mod(minutes, 60)))
	if m == 60 {
		h, m = h+1, 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Comparison marks one side of a two-row benchmark comparison.
type Comparison string

const (
	ComparisonEven        Comparison = ""
	ComparisonFavorable   Comparison = "favorable"
	ComparisonUnfavorable Comparison = "unfavorable"
)

// Compare marks a (primary, benchmark) metric pair. The higher value is
// favorable and the lower unfavorable; equal values are unmarked. Applied
// per metric, never as a global ranking.
func Compare(primary, benchmark float64) (Comparison, Comparison) {
	switch {
	case primary > benchmark:
		return ComparisonFavorable, ComparisonUnfavorable
	case primary < benchmark:
		return ComparisonUnfavorable, ComparisonFavorable
	default:
		return ComparisonEven, ComparisonEven
	}
}
