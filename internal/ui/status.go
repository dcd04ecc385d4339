package ui

import "fmt"

// spinnerFrames animate running rows outside Bubble Tea.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Status is the state of one row of a progress display.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusComplete
	StatusFailed
	StatusSkipped
)

// statusLine renders one row. spin is the icon of a running row; final
// rows show their note after an arrow.
func statusLine(s Status, name, note, spin string, final bool) string {
	var icon string
	var nameStyle, noteStyle styleWrapper
	switch s {
	case StatusRunning:
		if final {
			return statusLine(StatusPending, name, "", spin, true)
		}
		icon, nameStyle, noteStyle = spin, StepRunning, Secondary
	case StatusComplete:
		icon, nameStyle, noteStyle = GetCheckMark(), StepComplete, Dim
	case StatusFailed:
		icon, nameStyle, noteStyle = GetCrossMark(), StepFailed, Error
	case StatusSkipped:
		icon, nameStyle, noteStyle = Warning.Render("⊘"), StepSkipped, Warning
	default:
		icon, nameStyle, noteStyle = Muted.Render("○"), StepPending, Dim
	}
	line := fmt.Sprintf("%s %s", icon, nameStyle.Render(name))
	switch {
	case note == "":
	case final || s == StatusFailed:
		line += " " + noteStyle.Render("→ "+note)
	default:
		line += " " + noteStyle.Render(note)
	}
	return line
}
