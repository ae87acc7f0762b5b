package domain

import (
	"sort"
	"time"
)

// RankedDay pairs a calendar day with the metric value it ranked on.
type RankedDay struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TopDaysByVisitors returns the n busiest days by entering visitors,
// descending. Ties keep chronological order.
func TopDaysByVisitors(days []DailyAggregate, n int) []RankedDay {
	ranked := make([]RankedDay, 0, len(days))
	for _, d := range days {
		ranked = append(ranked, RankedDay{Date: d.Date, Value: float64(d.EnteringVisitors)})
	}
	return topN(ranked, n)
}

// TopDaysByCaptureRate returns the n best days by business-hours capture
// rate, descending. Ties keep chronological order.
func TopDaysByCaptureRate(records []VisitorRecord, days []DailyAggregate, n int) []RankedDay {
	ranked := make([]RankedDay, 0, len(days))
	for _, d := range days {
		ranked = append(ranked, RankedDay{Date: d.Date, Value: BusinessHoursCaptureRate(records, d.Date)})
	}
	return topN(ranked, n)
}

func topN(ranked []RankedDay, n int) []RankedDay {
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
