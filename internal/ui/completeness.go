package ui

import (
	"fmt"
	"io"
	"strings"
)

// CompletenessReport mirrors the structure from internal/completeness
// to avoid circular imports
type CompletenessReport struct {
	DocID           string
	Family          string
	Score           float64
	Passed          int
	Total           int
	MissingRequired []FieldKey
	MissingOptional []FieldKey
	Resources       []ResourceReport
}

// ResourceReport mirrors the resource report structure
type ResourceReport struct {
	Resource        string
	Score           float64
	Passed          int
	Total           int
	MissingRequired []FieldKey
	MissingOptional []FieldKey
}

// FieldKey represents a field identifier
type FieldKey interface {
	String() string
}

// CompletenessUI renders completeness reports
type CompletenessUI struct {
	writer io.Writer
	quiet  bool
}

// NewCompletenessUI creates a new UI handler for the completeness command
func NewCompletenessUI(w io.Writer, quiet bool) *CompletenessUI {
	return &CompletenessUI{writer: w, quiet: quiet}
}

// PrintReport renders a boxed completeness report
func (c *CompletenessUI) PrintReport(report CompletenessReport) {
	if c.quiet {
		return
	}

	var p panel
	p.line(Success.Bold(true).Render("Metadata Completeness Report"))
	p.blank()
	p.line(SectionHeader.Render("Dataset"))
	if report.DocID != "" {
		p.kv("Name", Highlight.Render(report.DocID))
	}
	if report.Family != "" {
		p.kv("Version", report.Family)
	}
	p.score("Score", report.Score, fieldsPresent(report.Passed, report.Total))
	missingFields(&p, report.MissingRequired, report.MissingOptional)

	if len(report.Resources) > 0 {
		p.blank()
		p.line(SectionHeader.Render("Resources"))
		for _, r := range report.Resources {
			p.kv("Name", Highlight.Render(r.Resource))
			p.score("Score", r.Score, fieldsPresent(r.Passed, r.Total))
			missingFields(&p, r.MissingRequired, r.MissingOptional)
			p.blank()
		}
	}

	fmt.Fprintln(c.writer, SuccessBox.Render(p.String()))
}

func fieldsPresent(passed, total int) string {
	return fmt.Sprintf("(%d/%d fields present)", passed, total)
}

func missingFields(p *panel, required, optional []FieldKey) {
	p.list(Error, fmt.Sprintf("Required Fields (%d missing)", len(required)), GetCrossMark(), false, keyNames(required))
	p.list(Warning, fmt.Sprintf("Optional Fields (%d missing)", len(optional)), GetWarnMark(), true, keyNames(optional))
}

// PrintSimpleReport prints a minimal text report
func (c *CompletenessUI) PrintSimpleReport(report CompletenessReport) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.writer, "Dataset score: %.1f%% (%d/%d)\n", report.Score*100, report.Passed, report.Total)
	if len(report.MissingRequired) > 0 {
		fmt.Fprintf(c.writer, "Missing required: %s\n", strings.Join(keyNames(report.MissingRequired), ", "))
	}
	if len(report.MissingOptional) > 0 {
		fmt.Fprintf(c.writer, "Missing optional: %s\n", strings.Join(keyNames(report.MissingOptional), ", "))
	}
	if len(report.Resources) > 0 {
		fmt.Fprintln(c.writer, "\nResources:")
		for _, r := range report.Resources {
			fmt.Fprintf(c.writer, "  %s: %.1f%% (%d/%d)\n", r.Resource, r.Score*100, r.Passed, r.Total)
		}
	}
}
