// Package logging is the opt-in line logger shared by the internal packages.
// A Logger without a Writer discards everything.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

// Logger writes one line per call:
//
//	<prefix> doc=<id> <message>
//
// The id is trimmed and shown as "(unknown)" when blank.
type Logger struct {
	Writer io.Writer

	Prefix string // defaults to "Log:"
	Color  string // ANSI code from package ui

	// OmitDoc drops the "doc=<id>" field.
	OmitDoc bool

	mu sync.Mutex
}

func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	l.Writer = w
	l.mu.Unlock()
}

func (l *Logger) Enabled() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Writer != nil
}

// Logf formats the message and writes it as a single line.
func (l *Logger) Logf(docID string, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Writer == nil {
		return
	}

	var b strings.Builder
	prefix := l.Prefix
	if prefix == "" {
		prefix = "Log:"
	}
	b.WriteString(ui.Color(prefix, l.Color))
	if !l.OmitDoc {
		id := strings.TrimSpace(docID)
		if id == "" {
			id = "(unknown)"
		}
		b.WriteString(" doc=")
		b.WriteString(id)
	}
	b.WriteByte(' ')
	b.WriteString(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	b.WriteByte('\n')
	io.WriteString(l.Writer, b.String())
}
