package domain

// FindingLevel classifies a validation finding.
type FindingLevel string

const (
	FindingError   FindingLevel = "error"
	FindingWarning FindingLevel = "warning"
	FindingSuccess FindingLevel = "success"
)

// Finding is one data-quality observation about the record set.
type Finding struct {
	Level   FindingLevel `json:"level"`
	Message string       `json:"message"`
}

// ValidateRecords runs the data-quality checks over a normalized record set
// and returns the findings. An empty data set is itself an error and
// short-circuits the remaining checks. When every check passes, a single
// success finding is returned.
func ValidateRecords(records []VisitorRecord) []Finding {
	if len(records) == 0 {
		return []Finding{{Level: FindingError, Message: "no data available"}}
	}

	var findings []Finding

	missingTimestamps := false
	negativeCounts := false
	inconsistentCounts := false
	for _, r := range records {
		if r.Timestamp.IsZero() {
			missingTimestamps = true
		}
		for _, v := range recordFields(r) {
			if v < 0 {
				negativeCounts = true
			}
		}
		if r.EnteringMen+r.EnteringWomen > r.EnteringVisitors ||
			r.LeavingMen+r.LeavingWomen > r.LeavingVisitors {
			inconsistentCounts = true
		}
	}

	if missingTimestamps {
		findings = append(findings, Finding{Level: FindingError, Message: "some entries are missing timestamps"})
	}
	if negativeCounts {
		findings = append(findings, Finding{Level: FindingError, Message: "invalid or negative numbers detected"})
	}
	if inconsistentCounts {
		findings = append(findings, Finding{Level: FindingWarning, Message: "inconsistent visitor counts detected"})
	}

	if len(findings) == 0 {
		findings = append(findings, Finding{Level: FindingSuccess, Message: "all data appears to be valid"})
	}
	return findings
}
