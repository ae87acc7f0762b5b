package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column positions in a raw feed row.
const (
	colTimestamp = iota
	colEnteringVisitors
	colLeavingVisitors
	colEnteringMen
	colLeavingMen
	colEnteringWomen
	colLeavingWomen
	colEnteringGroups
	colLeavingGroups
	colPassersby
)

// ParseRow normalizes one raw feed row into a VisitorRecord. Numeric fields
// that are missing or unparseable default to 0. The only fatal condition is an
// unparseable timestamp: such a record cannot be bucketed by day and is
// reported back to the caller, which skips it without affecting its
// neighbours.
func ParseRow(fields []string) (VisitorRecord, error) {
	ts, err := time.Parse(TimestampLayout, strings.TrimSpace(fieldAt(fields, colTimestamp)))
	if err != nil {
		return VisitorRecord{}, fmt.Errorf("parse row timestamp %q: %w", fieldAt(fields, colTimestamp), err)
	}

	entering := parseIntOrZero(fieldAt(fields, colEnteringVisitors))
	leaving := parseIntOrZero(fieldAt(fields, colLeavingVisitors))

	enteringMen, enteringWomen := reconcileGender(entering,
		parseIntOrZero(fieldAt(fields, colEnteringMen)),
		parseIntOrZero(fieldAt(fields, colEnteringWomen)))
	leavingMen, leavingWomen := reconcileGender(leaving,
		parseIntOrZero(fieldAt(fields, colLeavingMen)),
		parseIntOrZero(fieldAt(fields, colLeavingWomen)))

	return VisitorRecord{
		Timestamp:        ts,
		EnteringVisitors: entering,
		LeavingVisitors:  leaving,
		EnteringMen:      enteringMen,
		LeavingMen:       leavingMen,
		EnteringWomen:    enteringWomen,
		LeavingWomen:     leavingWomen,
		EnteringGroups:   parseIntOrZero(fieldAt(fields, colEnteringGroups)),
		LeavingGroups:    parseIntOrZero(fieldAt(fields, colLeavingGroups)),
		Passersby:        parseIntOrZero(fieldAt(fields, colPassersby)),
	}, nil
}

// reconcileGender adjusts raw gender sub-counts so they sum exactly to the
// recorded total. See the package documentation for the three cases.
func reconcileGender(total, menRaw, womenRaw int) (men, women int) {
	sub := menRaw + womenRaw
	switch {
	case sub > 0 && sub != total:
		men = int(math.Round(float64(menRaw) * float64(total) / float64(sub)))
		women = total - men
	case sub == 0 && total > 0:
		men = int(math.Round(float64(total) / 2))
		women = total - men
	default:
		men, women = menRaw, womenRaw
	}
	return men, women
}

// fieldAt returns fields[i], or "" when the row is short.
func fieldAt(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

// parseIntOrZero parses a string as an integer, returning 0 on failure.
// Negative values are kept as recorded; ValidateRecords flags them.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
