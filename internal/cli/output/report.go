package output

import (
	"time"

	"github.com/google/uuid"
)

// ValidationReport is the JSON shape of a validate run.
type ValidationReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Sort        string    `json:"sort"`
	Paths       []string  `json:"paths"`
	Errors      []string  `json:"errors,omitempty"`
	Violations  []string  `json:"violations,omitempty"`
	Clean       bool      `json:"clean"`
}

// NewValidationReport stamps a report with a fresh run id and timestamp.
func NewValidationReport(sort string, paths, errs, violations []string) *ValidationReport {
	return &ValidationReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Sort:        sort,
		Paths:       paths,
		Errors:      errs,
		Violations:  violations,
		Clean:       len(errs) == 0 && len(violations) == 0,
	}
}
