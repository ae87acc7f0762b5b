// Command genfeed generates a deterministic visitor-sensor CSV feed for local
// development and test fixtures. Output follows the sensor export format:
// hourly rows with entering/leaving totals, gender and group sub-counts, and a
// passersby count, timestamped d/MM/yyyy H:mm.
//
// Usage:
//
//	go run ./cmd/genfeed -days 14 -seed 42 -out data/feed.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/venue-analytics-service/internal/domain"
)

var header = []string{
	"Timestamp",
	"Entering Visitors", "Leaving Visitors",
	"Entering Men", "Leaving Men",
	"Entering Women", "Leaving Women",
	"Entering Groups", "Leaving Groups",
	"Passersby",
}

func main() {
	days := flag.Int("days", 14, "number of calendar days to generate")
	seed := flag.Int64("seed", 42, "random seed for reproducible output")
	start := flag.String("start", "2024-01-01", "first day (YYYY-MM-DD)")
	out := flag.String("out", "data/feed.csv", "output CSV path")
	flag.Parse()

	if err := run(*days, *seed, *start, *out); err != nil {
		log.Fatal(err)
	}
}

func run(days int, seed int64, start, out string) error {
	startDate, err := time.Parse(domain.ISODateLayout, start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	rows := generate(days, startDate, rand.New(rand.NewSource(seed)))

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Printf("wrote %d rows (%d days) to %s", len(rows), days, out)
	return nil
}

// generate produces 24 hourly rows per day. Traffic peaks around midday within
// business hours and drops to near zero outside them.
func generate(days int, startDate time.Time, rng *rand.Rand) [][]string {
	rows := make([][]string, 0, days*24)
	for d := 0; d < days; d++ {
		date := startDate.AddDate(0, 0, d)
		hours := domain.HoursFor(date.Weekday())
		for hour := 0; hour < 24; hour++ {
			rows = append(rows, hourRow(date, hour, hours.Open, hours.Close, rng))
		}
	}
	return rows
}

func hourRow(date time.Time, hour, openHour, closeHour int, rng *rand.Rand) []string {
	var entering, leaving, passersby int
	if hour >= openHour && hour < closeHour {
		// Triangular profile peaking mid-shift.
		mid := float64(openHour+closeHour) / 2
		span := float64(closeHour-openHour) / 2
		weight := 1 - absFloat(float64(hour)-mid)/span
		base := 10 + int(weight*40)
		entering = base + rng.Intn(10)
		leaving = entering - 2 + rng.Intn(5)
		if leaving < 0 {
			leaving = 0
		}
		passersby = entering*4 + rng.Intn(100)
	} else if rng.Intn(4) == 0 {
		passersby = rng.Intn(20)
	}

	enteringMen := 0
	leavingMen := 0
	if entering > 0 {
		enteringMen = rng.Intn(entering + 1)
	}
	if leaving > 0 {
		leavingMen = rng.Intn(leaving + 1)
	}

	groups := entering / 3
	ts := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)
	return []string{
		ts.Format(domain.TimestampLayout),
		strconv.Itoa(entering), strconv.Itoa(leaving),
		strconv.Itoa(enteringMen), strconv.Itoa(leavingMen),
		strconv.Itoa(entering - enteringMen), strconv.Itoa(leaving - leavingMen),
		strconv.Itoa(groups), strconv.Itoa(leaving / 3),
		strconv.Itoa(passersby),
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
