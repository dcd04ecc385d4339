package enricher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

// BuildPreview renders the changes and the completeness progression.
func BuildPreview(initial, final completeness.Report, changes []Change) string {
	var sb strings.Builder

	sb.WriteString(ui.Bold.Render("Preview Changes"))
	sb.WriteString("\n\n")

	var dataset, resources []Change
	for _, c := range changes {
		if c.Resource == "" {
			dataset = append(dataset, c)
		} else {
			resources = append(resources, c)
		}
	}

	if len(dataset) > 0 {
		sb.WriteString(ui.Primary.Render("Dataset Fields:"))
		sb.WriteString("\n")
		for _, c := range dataset {
			fmt.Fprintf(&sb, "  %s %s: %s\n",
				ui.Success.Render("✓"),
				ui.Secondary.Render(c.Key.String()),
				ui.Dim.Render(truncateValue(c.Value, 60)))
		}
		sb.WriteString("\n")
	}

	if len(resources) > 0 {
		sb.WriteString(ui.Primary.Render("Resource Fields:"))
		sb.WriteString("\n")
		last := ""
		for _, c := range resources {
			if c.Resource != last {
				fmt.Fprintf(&sb, "  %s:\n", ui.Bold.Render(c.Resource))
				last = c.Resource
			}
			fmt.Fprintf(&sb, "    %s %s: %s\n",
				ui.Success.Render("✓"),
				ui.Secondary.Render(c.Key.String()),
				ui.Dim.Render(truncateValue(c.Value, 60)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(ui.Primary.Render("Completeness Progress:"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Initial:          %s (%d/%d fields)\n", scoreStyle(initial.Score), initial.Passed, initial.Total)
	fmt.Fprintf(&sb, "  After enrichment: %s (%d/%d fields)\n", scoreStyle(final.Score), final.Passed, final.Total)

	if len(final.Resources) > 0 {
		sb.WriteString("\n")
		sb.WriteString(ui.Primary.Render("Resources:"))
		sb.WriteString("\n")
		for _, r := range final.Resources {
			fmt.Fprintf(&sb, "  %s: %s (%d/%d fields)\n", r.Resource, scoreStyle(r.Score), r.Passed, r.Total)
		}
	}
	return sb.String()
}

func scoreStyle(score float64) string {
	percentage := fmt.Sprintf("%.1f%%", score*100)
	if score >= 0.8 {
		return ui.Success.Render(percentage)
	} else if score >= 0.5 {
		return ui.Warning.Render(percentage)
	}
	return ui.Error.Render(percentage)
}

// ConfirmPreview prints the preview in a box and asks for confirmation
// using huh.
func ConfirmPreview(preview string) (bool, error) {
	fmt.Println(ui.Box.Render(preview))

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save changes?").
				Description("Do you want to save these changes to the metadata?").
				Value(&confirm).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, apperr.ErrCancelled
		}
		return false, err
	}
	return confirm, nil
}

func truncateValue(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
