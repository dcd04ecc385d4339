package ui

import "sync/atomic"

// Basic ANSI color codes used by the logging package.
// Reports use the lipgloss styles from styles.go instead.
const (
	Reset      = "\033[0m"
	LegacyBold = "\033[1m"
	FgCyan     = "\033[36m"
	FgGreen    = "\033[32m"
	FgMagenta  = "\033[35m"
	FgYellow   = "\033[33m"
	FgRed      = "\033[31m"
)

var noColor atomic.Bool

// Init configures whether raw ANSI codes are emitted.
func Init(disableColor bool) { noColor.Store(disableColor) }

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	if noColor.Load() || code == "" {
		return s
	}
	return code + s + Reset
}
