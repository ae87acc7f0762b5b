package report

import (
	"fmt"
	"io"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
)

// WriteSummary prints a plain-text report of the daily aggregates, validation
// findings, and top-day rankings.
func WriteSummary(w io.Writer, records []domain.VisitorRecord, days []domain.DailyAggregate) error {
	if _, err := fmt.Fprintf(w, "Venue analytics report (%d records, %d days)\n\n", len(records), len(days)); err != nil {
		return err
	}

	fmt.Fprintln(w, "Validation:")
	for _, f := range domain.ValidateRecords(records) {
		fmt.Fprintf(w, "  [%s] %s\n", f.Level, f.Message)
	}

	fmt.Fprintln(w, "\nDaily metrics:")
	for _, d := range days {
		fmt.Fprintf(w, "  %s  in=%-5d passersby=%-6d capture=%5.2f%%  conversion=%5.2f%%  dwell=%s  accuracy=%5.1f%%  %s\n",
			d.Date.Format(domain.ISODateLayout),
			d.EnteringVisitors,
			d.Passersby,
			domain.CaptureRate(d.EnteringVisitors, d.Passersby),
			domain.ConversionRate(d.EnteringGroups, d.EnteringVisitors),
			domain.FormatMinutes(domain.DwellTime(records, d.Date)),
			domain.Accuracy(d.EnteringVisitors, d.LeavingVisitors),
			domain.GenderDistribution(d.EnteringMen, d.EnteringWomen),
		)
	}

	fmt.Fprintln(w, "\nTop days by visitors:")
	for i, rd := range domain.TopDaysByVisitors(days, 3) {
		fmt.Fprintf(w, "  %d. %s  %.0f visitors\n", i+1, rd.Date.Format(domain.ISODateLayout), rd.Value)
	}

	fmt.Fprintln(w, "\nTop days by capture rate:")
	for i, rd := range domain.TopDaysByCaptureRate(records, days, 3) {
		fmt.Fprintf(w, "  %d. %s  %.2f%%\n", i+1, rd.Date.Format(domain.ISODateLayout), rd.Value)
	}
	return nil
}
