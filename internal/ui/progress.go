package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// stepMsg updates one step of a ProgressModel.
type stepMsg struct {
	index  int
	status Status
	note   string
}

// doneMsg ends a ProgressModel.
type doneMsg struct{ err error }

// ProgressModel is the Bubble Tea model behind ProgressTracker: a title
// and a fixed list of steps.
type ProgressModel struct {
	spinner spinner.Model
	title   string
	steps   []row
	done    bool
	err     error
}

// NewProgressModel creates a model with every step pending.
func NewProgressModel(title string, steps []string) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	m := ProgressModel{spinner: s, title: title, steps: make([]row, len(steps))}
	for i, name := range steps {
		m.steps[i] = row{name: name}
	}
	return m
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stepMsg:
		if msg.index >= 0 && msg.index < len(m.steps) {
			m.steps[msg.index].status = msg.status
			m.steps[msg.index].note = msg.note
		}
	case doneMsg:
		m.done, m.err = true, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() tea.View {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(Title.Render(m.title))
		b.WriteString("\n\n")
	}
	lines := make([]string, len(m.steps))
	for i, s := range m.steps {
		lines[i] = statusLine(s.status, s.name, s.note, m.spinner.View(), m.done)
	}
	b.WriteString(strings.Join(lines, "\n"))

	if m.done {
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(ErrorBox.Render(GetCrossMark() + " " + m.err.Error()))
		} else {
			b.WriteString(Success.Render(fmt.Sprintf("✓ Completed %d/%d steps", m.completed(), len(m.steps))))
		}
		b.WriteString("\n")
	}
	return tea.NewView(b.String())
}

func (m ProgressModel) completed() int {
	n := 0
	for _, s := range m.steps {
		if s.status == StatusComplete {
			n++
		}
	}
	return n
}

// ProgressTracker runs a ProgressModel in the background so callers only
// report step changes.
type ProgressTracker struct {
	title string
	steps []string

	mu      sync.Mutex
	program *tea.Program
	exited  chan struct{}
}

// NewProgressTracker creates a tracker for the named steps.
func NewProgressTracker(title string, steps []string) *ProgressTracker {
	return &ProgressTracker{title: title, steps: steps}
}

// Start shows the display.
func (pt *ProgressTracker) Start() {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	if pt.program != nil {
		return
	}
	pt.program = tea.NewProgram(NewProgressModel(pt.title, pt.steps), tea.WithoutSignalHandler())
	pt.exited = make(chan struct{})
	go func() {
		defer close(pt.exited)
		_, _ = pt.program.Run()
	}()
}

// UpdateStep sets the status and note of step index.
func (pt *ProgressTracker) UpdateStep(index int, status Status, note string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	if pt.program != nil {
		pt.program.Send(stepMsg{index: index, status: status, note: note})
	}
}

// Complete renders the final state and waits for the display to exit.
func (pt *ProgressTracker) Complete(err error) {
	pt.mu.Lock()
	p, exited := pt.program, pt.exited
	pt.program = nil
	pt.mu.Unlock()
	if p == nil {
		return
	}
	p.Send(doneMsg{err: err})
	select {
	case <-exited:
	case <-time.After(time.Second):
		p.Kill()
	}
}
