package ui

import (
	"fmt"
	"strings"
)

// scoreColor picks the style for a completeness score.
func scoreColor(score float64) styleWrapper {
	switch {
	case score >= 0.8:
		return Success
	case score >= 0.5:
		return Warning
	}
	return Error
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(score float64, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return scoreColor(score).Render(bar)
}

// renderScorePercentage formats the score as a percentage
func renderScorePercentage(score float64) string {
	return scoreColor(score).Render(fmt.Sprintf("%.1f%%", score*100))
}
