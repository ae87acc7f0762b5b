package domain

import (
	"context"
	"time"
)

// Timestamp layouts used across the service. TimestampLayout and DayKeyLayout
// match the sensor vendor's locale format; ISODateLayout keys the weather API
// and its cache.
const (
	TimestampLayout = "2/01/2006 15:04"
	DayKeyLayout    = "2/01/2006"
	ISODateLayout   = "2006-01-02"
)

// VisitorRecord is one normalized hourly sensor sample. Immutable once
// created; every downstream stage reads it as-is.
type VisitorRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	EnteringVisitors int       `json:"entering_visitors"`
	LeavingVisitors  int       `json:"leaving_visitors"`
	EnteringMen      int       `json:"entering_men"`
	LeavingMen       int       `json:"leaving_men"`
	EnteringWomen    int       `json:"entering_women"`
	LeavingWomen     int       `json:"leaving_women"`
	EnteringGroups   int       `json:"entering_groups"`
	LeavingGroups    int       `json:"leaving_groups"`
	Passersby        int       `json:"passersby"`
}

// DayKey returns the record's calendar-day bucket key.
func (r VisitorRecord) DayKey() string {
	return r.Timestamp.Format(DayKeyLayout)
}

// Hour returns the record's hour of day (0-23).
func (r VisitorRecord) Hour() int {
	return r.Timestamp.Hour()
}

// DailyAggregate holds the field-wise sums of every record on one calendar
// day. Derived, never stored; recomputed from the record set on demand.
type DailyAggregate struct {
	Date             time.Time `json:"date"`
	EnteringVisitors int       `json:"entering_visitors"`
	LeavingVisitors  int       `json:"leaving_visitors"`
	EnteringMen      int       `json:"entering_men"`
	LeavingMen       int       `json:"leaving_men"`
	EnteringWomen    int       `json:"entering_women"`
	LeavingWomen     int       `json:"leaving_women"`
	EnteringGroups   int       `json:"entering_groups"`
	LeavingGroups    int       `json:"leaving_groups"`
	Passersby        int       `json:"passersby"`
}

// WeekdayHourlyAverage is the per-field average across all historical records
// sharing one (weekday, hour) pair, each field rounded to the nearest integer.
type WeekdayHourlyAverage struct {
	Weekday          time.Weekday `json:"weekday"`
	Hour             int          `json:"hour"`
	EnteringVisitors int          `json:"entering_visitors"`
	LeavingVisitors  int          `json:"leaving_visitors"`
	EnteringMen      int          `json:"entering_men"`
	LeavingMen       int          `json:"leaving_men"`
	EnteringWomen    int          `json:"entering_women"`
	LeavingWomen     int          `json:"leaving_women"`
	EnteringGroups   int          `json:"entering_groups"`
	LeavingGroups    int          `json:"leaving_groups"`
	Passersby        int          `json:"passersby"`
}

// RecordAt materializes the average as a pseudo-record on the given date, so
// benchmark rows flow through the same metric functions as real days.
func (a WeekdayHourlyAverage) RecordAt(date time.Time) VisitorRecord {
	return VisitorRecord{
		Timestamp: time.Date(date.Year(), date.Month(), date.Day(),
			a.Hour, 0, 0, 0, date.Location()),
		EnteringVisitors: a.EnteringVisitors,
		LeavingVisitors:  a.LeavingVisitors,
		EnteringMen:      a.EnteringMen,
		LeavingMen:       a.LeavingMen,
		EnteringWomen:    a.EnteringWomen,
		LeavingWomen:     a.LeavingWomen,
		EnteringGroups:   a.EnteringGroups,
		LeavingGroups:    a.LeavingGroups,
		Passersby:        a.Passersby,
	}
}

// WeatherObservation is one calendar day of archived weather, already
// translated to display units: temperature in whole °C, precipitation in mm
// and wind speed in km/h at one decimal.
type WeatherObservation struct {
	Date          string  `json:"date"` // ISO date, e.g. "2024-01-01"
	Temperature   int     `json:"temperature"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
}

// FeedSource supplies the normalized visitor record set.
type FeedSource interface {
	FetchRecords(ctx context.Context) ([]VisitorRecord, error)
}

// WeatherSource supplies daily weather observations keyed by ISO date for an
// inclusive date range.
type WeatherSource interface {
	FetchRange(ctx context.Context, start, end time.Time) (map[string]WeatherObservation, error)
}
