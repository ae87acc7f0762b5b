package domain

import "time"

// BusinessHours is the venue's open/close window for one weekday. Close is
// exclusive: an hour belongs to the window when open <= hour < close. Minutes
// are ignored, matching the hourly resolution of the feed.
type BusinessHours struct {
	Open  int
	Close int
}

// HoursFor returns the business-hours policy for a weekday:
// Mon-Fri 07:00-20:00, Sat 08:00-20:00, Sun 08:00-16:00.
func HoursFor(day time.Weekday) BusinessHours {
	switch day {
	case time.Sunday:
		return BusinessHours{Open: 8, Close: 16}
	case time.Saturday:
		return BusinessHours{Open: 8, Close: 20}
	default:
		return BusinessHours{Open: 7, Close: 20}
	}
}

// Contains reports whether the given hour of day falls inside the window.
func (h BusinessHours) Contains(hour int) bool {
	return hour >= h.Open && hour < h.Close
}
