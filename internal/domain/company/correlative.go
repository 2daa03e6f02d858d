package company

import "fmt"

// Correlative is the candidate sequential number for a company's next
// official reconciliation report. It is derived from durable state on every
// read and becomes durable only through the repository's conditional commit.
type Correlative struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

// FormatLabel builds the official report label, e.g. "REP-2025-013"
func FormatLabel(prefix string, year, number int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, number)
}

// NextCorrelative computes the candidate correlative for the company.
// It never mutates the company: the sequence advances only when the
// candidate is committed after a confirmed print.
func NextCorrelative(c *Company, year int) Correlative {
	number := c.ReportSequence + 1
	return Correlative{
		Number: number,
		Label:  FormatLabel(c.ReportPrefix, year, number),
	}
}
