package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// ConvertUI shows the progress of a batch conversion
type ConvertUI struct {
	writer    io.Writer
	quiet     bool
	workflow  *Workflow
	startTime time.Time
	index     map[string]int
}

// NewConvertUI creates a new UI handler for the convert command
func NewConvertUI(w io.Writer, quiet bool) *ConvertUI {
	return &ConvertUI{
		writer:    w,
		quiet:     quiet,
		startTime: time.Now(),
		index:     make(map[string]int),
	}
}

// StartWorkflow adds one task per input file and starts the display
func (c *ConvertUI) StartWorkflow(paths []string, target string) {
	if c.quiet {
		return
	}
	c.startTime = time.Now()
	c.workflow = NewWorkflow(c.writer, "Converting to "+target)
	for _, p := range paths {
		c.index[p] = c.workflow.AddTask(fmt.Sprintf("Converting %s", filepath.Base(p)))
	}
	c.workflow.Start()
}

// StartFile marks a file as being processed
func (c *ConvertUI) StartFile(path string) {
	if idx, ok := c.task(path); ok {
		c.workflow.StartTask(idx, "reading...")
	}
}

// UpdateFile updates the status of a file being processed
func (c *ConvertUI) UpdateFile(path, status string) {
	if idx, ok := c.task(path); ok {
		c.workflow.UpdateMessage(idx, Dim.Render(status))
	}
}

// CompleteFile marks a file as converted
func (c *ConvertUI) CompleteFile(path, details string) {
	if idx, ok := c.task(path); ok {
		c.workflow.CompleteTask(idx, details)
	}
}

// FailFile marks a file as failed
func (c *ConvertUI) FailFile(path string, err error) {
	if idx, ok := c.task(path); ok {
		c.workflow.FailTask(idx, err.Error())
	}
}

func (c *ConvertUI) task(path string) (int, bool) {
	if c.quiet || c.workflow == nil {
		return 0, false
	}
	idx, ok := c.index[path]
	return idx, ok
}

// FinishWorkflow completes the workflow display
func (c *ConvertUI) FinishWorkflow() {
	if c.quiet || c.workflow == nil {
		return
	}
	c.workflow.Stop()
}

// PrintSummary prints a final summary
func (c *ConvertUI) PrintSummary(converted, failed int, outputDir, target string) {
	if c.quiet {
		return
	}
	elapsed := time.Since(c.startTime)

	var summary strings.Builder
	title := Success.Bold(true).Render("Conversion Complete")
	if failed > 0 {
		title = Warning.Bold(true).Render("Conversion Finished With Errors")
	}
	summary.WriteString(title)
	summary.WriteString("\n\n")
	summary.WriteString(FormatKeyValue("Files converted", fmt.Sprintf("%d", converted)))
	summary.WriteString("\n")
	if failed > 0 {
		summary.WriteString(FormatKeyValue("Files failed", Error.Render(fmt.Sprintf("%d", failed))))
		summary.WriteString("\n")
	}
	summary.WriteString(FormatKeyValue("Target", target))
	summary.WriteString("\n")
	if outputDir != "" {
		summary.WriteString(FormatKeyValue("Output directory", outputDir))
		summary.WriteString("\n")
	}
	summary.WriteString(FormatKeyValue("Duration", elapsed.Round(time.Millisecond).String()))

	fmt.Fprintln(c.writer)
	if failed > 0 {
		fmt.Fprintln(c.writer, ErrorBox.Render(summary.String()))
		return
	}
	fmt.Fprintln(c.writer, SuccessBox.Render(summary.String()))
}

// LogStep prints a simple log message (non-workflow mode)
func (c *ConvertUI) LogStep(icon, message string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.writer, FormatStatus(icon, message))
}
