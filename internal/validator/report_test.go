package validator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name string
		res  ValidationResult
		want string
	}{
		{
			name: "passed",
			res: ValidationResult{
				Valid:             true,
				Version:           "OEP-1.4.0",
				CompletenessScore: 0.83,
				Errors:            []string{"ignored"},
				Warnings:          []string{"one", "two"},
			},
			want: "Validation: PASSED | Version: OEP-1.4.0 | Score: 83.0% | Errors: 1 | Warnings: 2",
		},
		{
			name: "failed without version",
			res: ValidationResult{
				CompletenessScore: 0.42,
				Errors:            []string{"a", "b"},
				Warnings:          []string{"c"},
			},
			want: "Validation: FAILED | Score: 42.0% | Errors: 2 | Warnings: 1",
		},
		{
			name: "with resources",
			res: ValidationResult{
				Valid:             true,
				CompletenessScore: 0.5,
				ResourceResults:   []ResourceValidationResult{{Resource: "a"}, {Resource: "b"}},
			},
			want: "Validation: PASSED | Score: 50.0% | Resources: 2 | Errors: 0 | Warnings: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSummary(tt.res))
		})
	}
}

func TestPrintReport(t *testing.T) {
	ui.Init(true)
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	PrintReport(ValidationResult{
		DocID:    "model_draft.t",
		Version:  "OEP-1.4.0",
		Dialect:  "oep-v1.4",
		Errors:   []string{"boom"},
		Warnings: []string{"careful"},
		ResourceResults: []ResourceValidationResult{{
			Resource: "t",
			Errors:   []string{"required resource field missing: name"},
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "model_draft.t failed [OEP-1.4.0]")
	assert.Contains(t, out, "parsed as oep-v1.4")
	assert.Contains(t, out, "errors (1):")
	assert.Contains(t, out, "  • boom")
	assert.Contains(t, out, "warnings (1):")
	assert.Contains(t, out, "resource t: 0.0%")
	assert.Contains(t, out, "    • required resource field missing: name")
}

func TestPrintReportSilentWithoutLogger(t *testing.T) {
	SetLogger(nil)
	PrintReport(ValidationResult{Valid: true})
}
