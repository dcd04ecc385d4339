package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type row struct {
	name   string
	status Status
	note   string
}

// Workflow redraws a list of rows in place while a batch runs. It writes
// plain ANSI sequences, so several can share a terminal with log output.
type Workflow struct {
	writer io.Writer
	title  string

	mu      sync.Mutex
	rows    []*row
	frame   int
	drawn   int // lines written by the last redraw
	running bool
	stop    chan struct{}
	stopped chan struct{}
}

// NewWorkflow creates a workflow that prints title when started.
func NewWorkflow(w io.Writer, title string) *Workflow {
	return &Workflow{writer: w, title: title}
}

// AddTask appends a pending row and returns its index.
func (wf *Workflow) AddTask(name string) int {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	wf.rows = append(wf.rows, &row{name: name})
	return len(wf.rows) - 1
}

func (wf *Workflow) set(idx int, fn func(r *row)) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if idx >= 0 && idx < len(wf.rows) {
		fn(wf.rows[idx])
	}
}

// StartTask marks a row as running.
func (wf *Workflow) StartTask(idx int, message string) {
	wf.set(idx, func(r *row) { r.status, r.note = StatusRunning, message })
}

// UpdateMessage replaces the note of a row.
func (wf *Workflow) UpdateMessage(idx int, message string) {
	wf.set(idx, func(r *row) { r.note = message })
}

// CompleteTask marks a row as done; details stay visible after Stop.
func (wf *Workflow) CompleteTask(idx int, details string) {
	wf.set(idx, func(r *row) { r.status, r.note = StatusComplete, details })
}

// FailTask marks a row as failed.
func (wf *Workflow) FailTask(idx int, errMsg string) {
	wf.set(idx, func(r *row) { r.status, r.note = StatusFailed, errMsg })
}

// Start prints the title and animates running rows until Stop.
func (wf *Workflow) Start() {
	wf.mu.Lock()
	if wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = true
	wf.stop = make(chan struct{})
	wf.stopped = make(chan struct{})
	if wf.title != "" {
		fmt.Fprintln(wf.writer, Title.Render(wf.title))
	}
	wf.mu.Unlock()

	go func() {
		defer close(wf.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-wf.stop:
				return
			case <-ticker.C:
				wf.redraw(false)
			}
		}
	}()
}

// Stop ends the animation and prints the final state of every row.
func (wf *Workflow) Stop() {
	wf.mu.Lock()
	if !wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = false
	wf.mu.Unlock()

	close(wf.stop)
	<-wf.stopped
	wf.redraw(true)
}

func (wf *Workflow) redraw(final bool) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	var b strings.Builder
	b.WriteString(strings.Repeat("\033[A\033[K", wf.drawn))
	lines := wf.lines(final)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	wf.frame = (wf.frame + 1) % len(spinnerFrames)
	wf.drawn = len(lines)
	fmt.Fprint(wf.writer, b.String())
}

// lines renders every row. Callers hold mu.
func (wf *Workflow) lines(final bool) []string {
	spin := Secondary.Render(spinnerFrames[wf.frame])
	out := make([]string, len(wf.rows))
	for i, r := range wf.rows {
		out[i] = statusLine(r.status, r.name, r.note, spin, final)
	}
	return out
}

// SimpleSpinner is a one-row workflow for a single short operation.
type SimpleSpinner struct {
	wf  *Workflow
	idx int
}

// NewSimpleSpinner creates a spinner showing message.
func NewSimpleSpinner(w io.Writer, message string) *SimpleSpinner {
	wf := NewWorkflow(w, "")
	return &SimpleSpinner{wf: wf, idx: wf.AddTask(message)}
}

// Start begins the animation.
func (s *SimpleSpinner) Start() {
	s.wf.StartTask(s.idx, "")
	s.wf.Start()
}

// Stop replaces the spinner row with the outcome.
func (s *SimpleSpinner) Stop(success bool, finalMessage string) {
	s.wf.set(s.idx, func(r *row) {
		r.name, r.note, r.status = finalMessage, "", StatusComplete
		if !success {
			r.status = StatusFailed
		}
	})
	s.wf.Stop()
}
