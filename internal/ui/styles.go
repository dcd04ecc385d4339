package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
)

// Palette. Every style and the fang help scheme derive from it.
var (
	ColorPrimary   = lipgloss.Color("#1F6FB2") // OEP blue
	ColorSecondary = lipgloss.Color("#22B8CF") // teal
	ColorSuccess   = lipgloss.Color("#2FB344") // green
	ColorWarning   = lipgloss.Color("#F2A900") // amber
	ColorError     = lipgloss.Color("#E03131") // red
	ColorMuted     = lipgloss.Color("#6C757D") // gray
	ColorHighlight = lipgloss.Color("#F59F00") // orange

	ColorText    = lipgloss.Color("#F8F9FA")
	ColorTextDim = lipgloss.Color("#ADB5BD")
)

// styleWrapper renders through lipgloss unless colours are disabled with
// Init. Boxes keep their border without colour.
type styleWrapper struct {
	style lipgloss.Style
	box   bool
}

func (s styleWrapper) Render(str string) string {
	if !noColor.Load() {
		return s.style.Render(str)
	}
	if s.box {
		return s.style.UnsetBorderForeground().Render(str)
	}
	return str
}

// Bold returns a copy with bold set to v.
func (s styleWrapper) Bold(v bool) styleWrapper {
	return styleWrapper{style: s.style.Bold(v), box: s.box}
}

func fg(c color.Color) styleWrapper {
	return styleWrapper{style: lipgloss.NewStyle().Foreground(c)}
}

func box(c color.Color) styleWrapper {
	return styleWrapper{
		style: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1),
		box:   true,
	}
}

// Text styles
var (
	Bold      = styleWrapper{style: lipgloss.NewStyle().Bold(true)}
	Dim       = fg(ColorTextDim)
	Muted     = fg(ColorMuted)
	Success   = fg(ColorSuccess)
	Warning   = fg(ColorWarning)
	Error     = fg(ColorError)
	Primary   = fg(ColorPrimary)
	Secondary = fg(ColorSecondary)
	Highlight = fg(ColorHighlight).Bold(true)

	Title         = fg(ColorPrimary).Bold(true)
	SectionHeader = fg(ColorSecondary).Bold(true)
)

// Boxes around reports
var (
	Box        = box(ColorMuted)
	SuccessBox = box(ColorSuccess)
	ErrorBox   = box(ColorError)
)

// Row styles of progress displays
var (
	StepPending  = fg(ColorMuted)
	StepRunning  = fg(ColorSecondary)
	StepComplete = fg(ColorSuccess)
	StepFailed   = fg(ColorError)
	StepSkipped  = fg(ColorWarning)
)

// Marks are functions so they follow Init.

func GetCheckMark() string { return Success.Render("✓") }
func GetCrossMark() string { return Error.Render("✗") }
func GetWarnMark() string  { return Warning.Render("⚠") }
func GetInfoMark() string  { return Secondary.Render("ℹ") }
func GetBullet() string    { return Muted.Render("•") }

// FormatKeyValue renders "key: value" with a dimmed key.
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// FormatStatus prefixes message with the mark for status: success, error,
// warning or info. Anything else gets a bullet.
func FormatStatus(status, message string) string {
	marks := map[string]func() string{
		"success": GetCheckMark,
		"error":   GetCrossMark,
		"warning": GetWarnMark,
		"info":    GetInfoMark,
	}
	mark, ok := marks[status]
	if !ok {
		mark = GetBullet
	}
	return mark() + " " + message
}

// FangColorScheme maps the palette onto fang's help and error output.
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#E9ECEF"), lipgloss.Color("#212529")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorHighlight,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is shown above the root help.
const BannerASCII = `
  ___  _ __ ___ (_)
 / _ \| '_ ` + "`" + ` _ \| |
| (_) | | | | | | |
 \___/|_| |_| |_|_|
`

// RenderGradientBanner colours the banner.
func RenderGradientBanner(banner string) string {
	return Secondary.Render(banner)
}
