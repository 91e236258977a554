package linkcheck

import (
	"fmt"
	"strings"
	"time"
)

// Report aggregates the results of a validation run.
type Report struct {
	CheckedAt time.Time
	Results   []Result
	Valid     int
	Invalid   int
	Errors    int
	Skipped   int
}

func (r *Report) add(result Result) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case StatusValid:
		r.Valid++
	case StatusInvalid:
		r.Invalid++
	case StatusError:
		r.Errors++
	case StatusSkipped:
		r.Skipped++
	}
}

// Total returns the number of links checked.
func (r *Report) Total() int {
	return len(r.Results)
}

// Text renders the report as a plain-text summary with one line per
// non-valid link.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Checked %d external links: %d valid, %d invalid, %d errors, %d skipped\n",
		r.Total(), r.Valid, r.Invalid, r.Errors, r.Skipped)
	for _, result := range r.Results {
		if result.Status == StatusValid {
			continue
		}
		fmt.Fprintf(&b, "  [%s] %s", result.Status, result.URI)
		if result.StatusCode != 0 {
			fmt.Fprintf(&b, " (HTTP %d)", result.StatusCode)
		}
		if result.Error != "" {
			fmt.Fprintf(&b, ": %s", result.Error)
		}
		if result.SourceContext != "" {
			fmt.Fprintf(&b, " - %s", result.SourceContext)
		}
		b.WriteString("\n")
	}
	return b.String()
}
