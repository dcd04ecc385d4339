package validator

import (
	"fmt"
	"strings"
)

// PrintReport logs the result line by line. Nothing is written unless a
// logger writer is set.
func PrintReport(r ValidationResult) {
	verdict := "passed"
	if !r.Valid {
		verdict = "failed"
	}
	id := r.DocID
	if id == "" {
		id = "(unknown)"
	}
	logf("%s %s [%s]", id, verdict, orDash(r.Version))
	if r.Dialect != "" {
		logf("parsed as %s", r.Dialect)
	}
	logList("errors", "  • ", r.Errors)
	logList("warnings", "  • ", r.Warnings)
	logf("dataset score %.1f%%, missing %d required / %d optional",
		r.CompletenessScore*100, len(r.MissingRequired), len(r.MissingOptional))

	for _, res := range r.ResourceResults {
		logf("resource %s: %.1f%%, missing %d required / %d optional",
			res.Resource, res.CompletenessScore*100, len(res.MissingRequired), len(res.MissingOptional))
		logList("", "    • ", res.Errors)
	}
}

// logList writes a counted header (when title is set) and one line per item.
func logList(title, indent string, items []string) {
	if len(items) == 0 {
		return
	}
	if title != "" {
		logf("%s (%d):", title, len(items))
	}
	for _, it := range items {
		logf("%s%s", indent, it)
	}
}

// FormatSummary renders the result as one unstyled line.
func FormatSummary(r ValidationResult) string {
	verdict := "PASSED"
	if !r.Valid {
		verdict = "FAILED"
	}
	parts := []string{"Validation: " + verdict}
	if r.Version != "" {
		parts = append(parts, "Version: "+r.Version)
	}
	parts = append(parts, fmt.Sprintf("Score: %.1f%%", r.CompletenessScore*100))
	if n := len(r.ResourceResults); n > 0 {
		parts = append(parts, fmt.Sprintf("Resources: %d", n))
	}
	parts = append(parts,
		fmt.Sprintf("Errors: %d", len(r.Errors)),
		fmt.Sprintf("Warnings: %d", len(r.Warnings)))
	return strings.Join(parts, " | ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
