package enricher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/metadata"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

type inputType int

const (
	inputText inputType = iota
	inputTextArea
	inputMultiText
)

// PromptInteractive asks for the missing fields of one target with a
// single huh form.
func PromptInteractive(target string, d *document.Dict, fields []metadata.FieldSpec) (map[metadata.Key]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	// Storage for form values - use map of pointers
	valueStore := make(map[metadata.Key]*string, len(fields))
	for _, spec := range fields {
		val := ""
		valueStore[spec.Key] = &val
	}

	formGroups := []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title(target+" Enrichment").
				Description("Please provide values for the missing fields.\nPress Enter to skip optional fields.").
				Next(true).
				NextLabel("Continue"),
		),
	}
	for _, spec := range fields {
		formGroups = append(formGroups, huh.NewGroup(createFieldInput(spec, kindOf(d, spec.Key), valueStore[spec.Key])))
	}

	if err := huh.NewForm(formGroups...).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, apperr.ErrCancelled
		}
		return nil, err
	}

	values := make(map[metadata.Key]string, len(fields))
	for _, spec := range fields {
		if v := *valueStore[spec.Key]; v != "" {
			values[spec.Key] = v
		}
	}
	return values, nil
}

// kindOf picks the input for a field from its key and current value.
func kindOf(d *document.Dict, k metadata.Key) inputType {
	if v, ok := d.Lookup(k.String()); ok {
		if _, isList := v.([]any); isList {
			return inputMultiText
		}
	}
	if strings.HasSuffix(k.String(), "description") {
		return inputTextArea
	}
	return inputText
}

func createFieldInput(spec metadata.FieldSpec, kind inputType, valuePtr *string) huh.Field {
	title := formatTitle(spec.Key, spec.Weight, spec.Required)
	validate := func(s string) error {
		if spec.Required && strings.TrimSpace(s) == "" {
			return fmt.Errorf("this field is required")
		}
		return nil
	}

	switch kind {
	case inputTextArea:
		return huh.NewText().
			Title(title).
			Description(formatDescription(false)).
			Value(valuePtr).
			Lines(5).
			CharLimit(1000).
			Validate(validate)
	case inputMultiText:
		return huh.NewInput().
			Title(title).
			Description(formatDescription(true)).
			Value(valuePtr).
			Validate(validate)
	default:
		return huh.NewInput().
			Title(title).
			Description(formatDescription(false)).
			Value(valuePtr).
			Validate(validate)
	}
}

func formatTitle(key metadata.Key, weight float64, required bool) string {
	requiredLabel := ""
	if required {
		requiredLabel = ui.Error.Render(" [REQUIRED]")
	}
	weightLabel := ui.Muted.Render(fmt.Sprintf(" (weight: %.2f)", weight))
	return fmt.Sprintf("%s%s%s", key, weightLabel, requiredLabel)
}

func formatDescription(isArray bool) string {
	if isArray {
		return ui.Muted.Render("Enter comma-separated values")
	}
	return ui.Muted.Render("Press Enter to skip")
}
