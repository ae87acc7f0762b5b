// Package report renders visitor analytics as chart pages and as a plain-text
// summary for the one-shot report command.
package report

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
)

// DailyTrendChart plots entering visitors and passersby per day as a line
// chart, with capture rate on a second axis.
func DailyTrendChart(days []domain.DailyAggregate) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Daily Visitor Trends",
			Width:     "1100px",
			Height:    "450px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Daily visitor trends"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "visitors"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	dates := make([]string, 0, len(days))
	entering := make([]opts.LineData, 0, len(days))
	passersby := make([]opts.LineData, 0, len(days))
	capture := make([]opts.LineData, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date.Format(domain.ISODateLayout))
		entering = append(entering, opts.LineData{Value: d.EnteringVisitors})
		passersby = append(passersby, opts.LineData{Value: d.Passersby})
		capture = append(capture, opts.LineData{
			Value: fmt.Sprintf("%.2f", domain.CaptureRate(d.EnteringVisitors, d.Passersby)),
		})
	}

	line.ExtendYAxis(opts.YAxis{Name: "capture %", Type: "value"})
	line.SetXAxis(dates).
		AddSeries("Entering visitors", entering).
		AddSeries("Passersby", passersby).
		AddSeries("Capture rate", capture, charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
	return line
}

// HourlyChart plots a single day's entering visitors and passersby per hour.
func HourlyChart(records []domain.VisitorRecord) *charts.Bar {
	bar := charts.NewBar()

	title := "Hourly breakdown"
	if len(records) > 0 {
		title = "Hourly breakdown " + records[0].Timestamp.Format(domain.ISODateLayout)
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Hourly Breakdown",
			Width:     "1100px",
			Height:    "450px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	hours := make([]string, 0, len(records))
	entering := make([]opts.BarData, 0, len(records))
	passersby := make([]opts.BarData, 0, len(records))
	for _, r := range records {
		hours = append(hours, fmt.Sprintf("%02d:00", r.Hour()))
		entering = append(entering, opts.BarData{Value: r.EnteringVisitors})
		passersby = append(passersby, opts.BarData{Value: r.Passersby})
	}

	bar.SetXAxis(hours).
		AddSeries("Entering visitors", entering).
		AddSeries("Passersby", passersby)
	return bar
}

// DashboardPage combines the daily trend and hourly charts into one HTML page.
func DashboardPage(days []domain.DailyAggregate, hourly []domain.VisitorRecord) *components.Page {
	page := components.NewPage()
	page.PageTitle = "Venue Analytics"
	page.AddCharts(DailyTrendChart(days), HourlyChart(hourly))
	return page
}
