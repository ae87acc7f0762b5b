// Package domain models a single venue's visitor-counting sensor feed and the
// derived footfall metrics computed from it.
//
// # Data Source
//
// The feed is a comma-separated document with one row per venue per hour.
// Row 0 is a header and is skipped. Columns, in fixed order:
//
//	timestamp, enteringVisitors, leavingVisitors, enteringMen, leavingMen,
//	enteringWomen, leavingWomen, enteringGroups, leavingGroups, passersby
//
// Timestamps use the locale day-first format "D/MM/YYYY H:mm" (24-hour clock,
// no leading zero on day or hour), e.g. "1/01/2024 9:00". Every numeric column
// is a non-negative integer counter. Missing or unparseable numeric fields
// default to 0; a bad field never fails the whole batch. A row whose timestamp
// does not parse is skipped entirely, since it cannot be bucketed by day.
//
// # Gender Reconciliation
//
// Sensor gender sub-counts frequently disagree with the visitor totals. During
// normalization the sub-counts are reconciled, independently for the entering
// and leaving directions:
//
//   - sub-counts present but inconsistent: men is rescaled proportionally
//     (round(menRaw * total / (menRaw + womenRaw))) and women takes the
//     remainder, so the pair sums exactly to the total
//   - sub-counts absent but total > 0: split evenly, men = round(total/2)
//   - already consistent, or total is 0: kept as recorded
//
// After normalization men + women == total holds for both directions.
//
// # Temporal Bucketing
//
// Records group into calendar days by their formatted date string
// ("D/MM/YYYY"), compared for exact equality. String keys rather than date
// values keep two records on the same wall-clock day together regardless of
// any time-zone drift in date arithmetic. Weekday-hour averages group the full
// data set by (weekday, hour of day) and average each field per hour, rounded
// to the nearest integer.
//
// # Metrics
//
// All metrics are pure functions of an immutable record slice plus a date
// selection. Capture rate relates entering visitors to passersby, optionally
// restricted to the venue's business hours (Mon-Fri 07:00-20:00, Sat
// 08:00-20:00, Sun 08:00-16:00). Conversion relates group arrivals to entering
// visitors, capped at 100% because group-member counts can exceed visitor
// totals in noisy sensor data. Accuracy compares the entering and leaving
// totals. Dwell time is a live-occupancy heuristic, not a measurement; see
// [DwellTime].
package domain
