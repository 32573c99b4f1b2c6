package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet reached
	StepRunning                    // Currently executing
	StepComplete                   // Completed or passed
	StepFailed                     // Blocked or failed
	StepSkipped                    // Skipped
)

// Step represents a single line in a checklist
type Step struct {
	Number  int        // Step number (1-based)
	Name    string     // Step description
	Status  StepStatus // Current status
	Message string     // Optional note (e.g., "3 records", "SDK 28")
}

// Checklist is a numbered list of steps with status markers. It renders
// the acquisition chain trace and the doctor report.
type Checklist struct {
	Label string
	Steps []Step
	Width int
}

// NewChecklist creates a checklist with one pending step per name
func NewChecklist(label string, names ...string) *Checklist {
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name, Status: StepPending}
	}
	return &Checklist{Label: label, Steps: steps, Width: GetTerminalWidth()}
}

// Add appends a step and returns its number
func (c *Checklist) Add(name string, status StepStatus, message string) int {
	n := len(c.Steps) + 1
	c.Steps = append(c.Steps, Step{Number: n, Name: name, Status: status, Message: message})
	return n
}

// Update sets a step's status and optional message by name. Unknown names
// are ignored.
func (c *Checklist) Update(name string, status StepStatus, message string) {
	for i := range c.Steps {
		if c.Steps[i].Name == name {
			c.Steps[i].Status = status
			c.Steps[i].Message = message
			return
		}
	}
}

// Count returns how many steps have the given status
func (c *Checklist) Count(status StepStatus) int {
	n := 0
	for _, s := range c.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Render returns the styled checklist as a string
func (c *Checklist) Render() string {
	var b strings.Builder

	if c.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(TextColor).PaddingLeft(2).Render(c.Label))
		b.WriteString("\n\n")
	}

	nameWidth := 0
	for _, s := range c.Steps {
		if w := lipgloss.Width(s.Name); w > nameWidth {
			nameWidth = w
		}
	}

	lines := make([]string, 0, len(c.Steps))
	for _, step := range c.Steps {
		lines = append(lines, c.renderStepLine(step, nameWidth))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// renderStepLine renders a single step line
func (c *Checklist) renderStepLine(step Step, nameWidth int) string {
	var marker string
	var style lipgloss.Style

	switch step.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	case StepSkipped:
		marker, style = StepMarkerSkipped, StepPendingStyle
	default:
		marker, style = StepMarkerPending, StepPendingStyle
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  [%d/%d] ", step.Number, len(c.Steps)))
	b.WriteString(style.Render(step.Name))
	b.WriteString(strings.Repeat(" ", nameWidth-lipgloss.Width(step.Name)+2))
	b.WriteString(style.Render(marker))

	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}

	return b.String()
}

// String implements fmt.Stringer
func (c *Checklist) String() string {
	return c.Render()
}
