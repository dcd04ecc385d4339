package ui

import (
	"fmt"
	"strings"
)

// panel collects the lines of a boxed report. Consecutive blank lines
// collapse into one and leading or trailing blanks are dropped.
type panel struct {
	lines []string
}

func (p *panel) line(s string) { p.lines = append(p.lines, s) }

func (p *panel) blank() { p.lines = append(p.lines, "") }

func (p *panel) kv(key, value string) { p.line(FormatKeyValue(key, value)) }

// score writes a labelled progress bar followed by note in dim text.
func (p *panel) score(label string, score float64, note string) {
	p.kv(label, renderProgressBar(score, 40)+" "+renderScorePercentage(score))
	if note != "" {
		p.line(Dim.Render(note))
	}
}

// list writes a "▼ title" header and one marked row per item.
func (p *panel) list(header styleWrapper, title, mark string, dim bool, items []string) {
	if len(items) == 0 {
		return
	}
	p.blank()
	p.line(header.Render("▼ " + title))
	for _, it := range items {
		if dim {
			it = Dim.Render(it)
		}
		p.line(fmt.Sprintf("  %s %s", mark, it))
	}
}

func (p *panel) String() string {
	out := make([]string, 0, len(p.lines))
	for _, l := range p.lines {
		if l == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func keyNames(keys []FieldKey) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return names
}
