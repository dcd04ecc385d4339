package ui

import (
	"fmt"
	"io"
)

// ValidationReport mirrors the structure from internal/validator
// to avoid circular imports
type ValidationReport struct {
	DocID             string
	Version           string
	Dialect           string
	Valid             bool
	Errors            []string
	Warnings          []string
	CompletenessScore float64
	MissingRequired   []FieldKey
	MissingOptional   []FieldKey
	ResourceResults   []ResourceValidationResult
}

// ResourceValidationResult mirrors the resource validation result
type ResourceValidationResult struct {
	Resource          string
	CompletenessScore float64
	MissingRequired   []FieldKey
	MissingOptional   []FieldKey
	Errors            []string
	Warnings          []string
}

// ValidationUI renders validation reports
type ValidationUI struct {
	writer io.Writer
	quiet  bool
}

// NewValidationUI creates a new UI handler for the validation command
func NewValidationUI(w io.Writer, quiet bool) *ValidationUI {
	return &ValidationUI{writer: w, quiet: quiet}
}

// PrintReport renders a boxed validation report
func (v *ValidationUI) PrintReport(report ValidationReport) {
	if v.quiet {
		return
	}

	var p panel
	box := SuccessBox
	if report.Valid {
		p.line(Success.Bold(true).Render("✓ Validation Passed"))
	} else {
		box = ErrorBox
		p.line(Error.Bold(true).Render("✗ Validation Failed"))
	}
	p.blank()
	p.line(SectionHeader.Render("Dataset"))
	if report.DocID != "" {
		p.kv("Name", Highlight.Render(report.DocID))
	}
	if report.Version != "" {
		p.kv("Version", report.Version)
	}
	if report.Dialect != "" {
		p.kv("Dialect", report.Dialect)
	}
	p.score("Completeness", report.CompletenessScore, missingSummary(len(report.MissingRequired), len(report.MissingOptional)))
	p.list(Error, fmt.Sprintf("Errors (%d)", len(report.Errors)), GetCrossMark(), false, report.Errors)
	p.list(Warning, fmt.Sprintf("Warnings (%d)", len(report.Warnings)), GetWarnMark(), true, report.Warnings)

	if len(report.ResourceResults) > 0 {
		p.blank()
		p.line(SectionHeader.Render("Resources"))
		for _, r := range report.ResourceResults {
			p.kv("Name", Highlight.Render(r.Resource))
			p.score("Completeness", r.CompletenessScore, missingSummary(len(r.MissingRequired), len(r.MissingOptional)))
			p.list(Error, fmt.Sprintf("Errors (%d)", len(r.Errors)), GetCrossMark(), false, r.Errors)
			p.blank()
		}
	}

	fmt.Fprintln(v.writer, box.Render(p.String()))
}

func missingSummary(required, optional int) string {
	if required+optional == 0 {
		return "(all fields present)"
	}
	return fmt.Sprintf("(%d required, %d optional missing)", required, optional)
}

// PrintSimpleReport prints a minimal text report
func (v *ValidationUI) PrintSimpleReport(report ValidationReport) {
	if v.quiet {
		return
	}
	if report.Valid {
		fmt.Fprintf(v.writer, "%s Validation passed\n", GetCheckMark())
	} else {
		fmt.Fprintf(v.writer, "%s Validation failed\n", GetCrossMark())
	}
	fmt.Fprintf(v.writer, "Completeness: %.1f%%\n", report.CompletenessScore*100)
	fmt.Fprintf(v.writer, "Errors: %d, Warnings: %d\n", len(report.Errors), len(report.Warnings))
	for _, e := range report.Errors {
		fmt.Fprintf(v.writer, "  - %s\n", e)
	}
	if len(report.ResourceResults) > 0 {
		fmt.Fprintf(v.writer, "Resources: %d\n", len(report.ResourceResults))
	}
}
