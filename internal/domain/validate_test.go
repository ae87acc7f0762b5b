package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingLevels(findings []Finding) []FindingLevel {
	levels := make([]FindingLevel, 0, len(findings))
	for _, f := range findings {
		levels = append(levels, f.Level)
	}
	return levels
}

func TestValidateRecords(t *testing.T) {
	t.Run("empty data set is an error", func(t *testing.T) {
		findings := ValidateRecords(nil)
		require.Len(t, findings, 1)
		assert.Equal(t, FindingError, findings[0].Level)
	})

	t.Run("clean data reports a single success", func(t *testing.T) {
		records := []VisitorRecord{
			mustRecord(t, "1/01/2024 9:00", "10", "2", "6", "1", "4", "1", "3", "1", "50"),
		}
		findings := ValidateRecords(records)
		require.Len(t, findings, 1)
		assert.Equal(t, FindingSuccess, findings[0].Level)
	})

	t.Run("missing timestamp is an error", func(t *testing.T) {
		records := []VisitorRecord{{EnteringVisitors: 1}}
		assert.Contains(t, findingLevels(ValidateRecords(records)), FindingError)
	})

	t.Run("negative counts are an error", func(t *testing.T) {
		records := []VisitorRecord{{
			Timestamp: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			Passersby: -3,
		}}
		findings := ValidateRecords(records)
		require.Len(t, findings, 1)
		assert.Equal(t, FindingError, findings[0].Level)
		assert.Contains(t, findings[0].Message, "negative")
	})

	t.Run("sub-counts exceeding totals are a warning", func(t *testing.T) {
		records := []VisitorRecord{{
			Timestamp:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			EnteringVisitors: 5,
			EnteringMen:      4,
			EnteringWomen:    4,
		}}
		findings := ValidateRecords(records)
		require.Len(t, findings, 1)
		assert.Equal(t, FindingWarning, findings[0].Level)
	})
}
