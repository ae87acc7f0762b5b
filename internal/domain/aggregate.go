package domain

import (
	"math"
	"sort"
	"time"
)

// DailyAggregates folds the record set into one aggregate per calendar day,
// summing every numeric field. Grouping is by formatted day key, so the fold
// is order-independent; the output is sorted ascending by date.
func DailyAggregates(records []VisitorRecord) []DailyAggregate {
	byDay := make(map[string]*DailyAggregate)
	for _, r := range records {
		key := r.DayKey()
		agg, ok := byDay[key]
		if !ok {
			d := r.Timestamp
			agg = &DailyAggregate{Date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())}
			byDay[key] = agg
		}
		agg.EnteringVisitors += r.EnteringVisitors
		agg.LeavingVisitors += r.LeavingVisitors
		agg.EnteringMen += r.EnteringMen
		agg.LeavingMen += r.LeavingMen
		agg.EnteringWomen += r.EnteringWomen
		agg.LeavingWomen += r.LeavingWomen
		agg.EnteringGroups += r.EnteringGroups
		agg.LeavingGroups += r.LeavingGroups
		agg.Passersby += r.Passersby
	}

	out := make([]DailyAggregate, 0, len(byDay))
	for _, agg := range byDay {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RecordsForDay returns the records on the given calendar day, preserving
// input order. Day membership is decided by day-key string equality.
func RecordsForDay(records []VisitorRecord, date time.Time) []VisitorRecord {
	key := date.Format(DayKeyLayout)
	var out []VisitorRecord
	for _, r := range records {
		if r.DayKey() == key {
			out = append(out, r)
		}
	}
	return out
}

// WeekdayHourlyAverages groups the full record set by hour of day, restricted
// to the given weekday, and averages every field across the matching
// historical days. Each average is rounded to the nearest integer. Hours with
// no records produce no entry, so the per-hour sample count is always
// positive. Output is sorted ascending by hour.
func WeekdayHourlyAverages(records []VisitorRecord, weekday time.Weekday) []WeekdayHourlyAverage {
	type bucket struct {
		sums  [9]int
		count int
	}
	byHour := make(map[int]*bucket)

	for _, r := range records {
		if r.Timestamp.Weekday() != weekday {
			continue
		}
		b, ok := byHour[r.Hour()]
		if !ok {
			b = &bucket{}
			byHour[r.Hour()] = b
		}
		for i, v := range recordFields(r) {
			b.sums[i] += v
		}
		b.count++
	}

	out := make([]WeekdayHourlyAverage, 0, len(byHour))
	for hour, b := range byHour {
		avg := func(i int) int {
			return int(math.Round(float64(b.sums[i]) / float64(b.count)))
		}
		out = append(out, WeekdayHourlyAverage{
			Weekday:          weekday,
			Hour:             hour,
			EnteringVisitors: avg(0),
			LeavingVisitors:  avg(1),
			EnteringMen:      avg(2),
			LeavingMen:       avg(3),
			EnteringWomen:    avg(4),
			LeavingWomen:     avg(5),
			EnteringGroups:   avg(6),
			LeavingGroups:    avg(7),
			Passersby:        avg(8),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func recordFields(r VisitorRecord) [9]int {
	return [9]int{
		r.EnteringVisitors, r.LeavingVisitors,
		r.EnteringMen, r.LeavingMen,
		r.EnteringWomen, r.LeavingWomen,
		r.EnteringGroups, r.LeavingGroups,
		r.Passersby,
	}
}
