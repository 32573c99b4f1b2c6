package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/ui"
	"go.uber.org/zap"
)

// Screen is the viewer's current state
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenList
	ScreenDenied
	ScreenFailed
)

// Messages for async operations
type outcomeMsg struct {
	runID   uuid.UUID
	outcome acquire.Outcome
}

type copiedMsg struct {
	what string
	name string
	err  error
}

type grantedMsg struct {
	err error
}

// Options configures the viewer
type Options struct {
	// Source labels where records come from, e.g. "local" or a share URL
	Source string
	// Clipboard writes text to the system clipboard
	Clipboard func(string) error
	// Grant records all permissions as granted. Nil hides the grant key.
	Grant func() error
}

// Model is the interactive credential viewer
type Model struct {
	acquirer Acquirer
	opts     Options
	ctx      context.Context
	cancel   context.CancelFunc

	Screen        Screen
	RunID         uuid.UUID
	Outcome       acquire.Outcome
	Status        string
	StatusIsError bool

	List    list.Model
	Spinner spinner.Model
	Help    help.Model

	ListKeys    listKeyMap
	DeniedKeys  deniedKeyMap
	LoadingKeys loadingKeyMap

	Width  int
	Height int
}

// New creates a viewer over acquirer
func New(acquirer Acquirer, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Source == "" {
		opts.Source = "local"
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	l := list.New([]list.Item{}, credentialDelegate{}, defaultWidth-4, defaultHeight-8)
	l.Title = "Saved networks"
	l.Styles.Title = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		acquirer:    acquirer,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		Screen:      ScreenLoading,
		List:        l,
		Spinner:     s,
		Help:        help.New(),
		ListKeys:    newListKeyMap(),
		DeniedKeys:  newDeniedKeyMap(opts.Grant != nil),
		LoadingKeys: newLoadingKeyMap(),
	}
}

// Run starts the viewer on the terminal
func Run(acquirer Acquirer, opts Options) error {
	_, err := tea.NewProgram(New(acquirer, opts), tea.WithAltScreen()).Run()
	return err
}

// Init starts the first acquisition
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, func() tea.Msg { return reloadMsg{} })
}

type reloadMsg struct{}

// startRun begins an acquisition and marks it as the only one whose
// outcome will be accepted
func (m Model) startRun() (Model, tea.Cmd) {
	id, results := m.acquirer.Start(m.ctx)
	m.RunID = id
	m.Screen = ScreenLoading
	m.Status = ""
	return m, tea.Batch(m.Spinner.Tick, waitForOutcome(id, results))
}

func waitForOutcome(id uuid.UUID, results <-chan acquire.Outcome) tea.Cmd {
	return func() tea.Msg {
		out, ok := <-results
		if !ok {
			out = acquire.Outcome{Status: acquire.StatusCancelled}
		}
		return outcomeMsg{runID: id, outcome: out}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.List.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case reloadMsg:
		return m.startRun()

	case outcomeMsg:
		return m.applyOutcome(msg), nil

	case copiedMsg:
		if msg.err != nil {
			m.Status, m.StatusIsError = "Copy failed: "+msg.err.Error(), true
		} else {
			m.Status, m.StatusIsError = fmt.Sprintf("Copied %s for %s", msg.what, msg.name), false
		}
		return m, nil

	case grantedMsg:
		if msg.err != nil {
			m.Status, m.StatusIsError = "Could not save permissions: "+msg.err.Error(), true
			return m, nil
		}
		return m.startRun()

	case spinner.TickMsg:
		if m.Screen != ScreenLoading {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.Screen == ScreenList {
		m.List, cmd = m.List.Update(msg)
	}
	return m, cmd
}

// applyOutcome adopts the outcome of the current run and drops stale ones
func (m Model) applyOutcome(msg outcomeMsg) Model {
	if msg.runID != m.RunID {
		logging.Debug("Dropping stale outcome",
			zap.String("run_id", msg.runID.String()),
			zap.String("current", m.RunID.String()),
		)
		return m
	}

	m.Outcome = msg.outcome
	switch msg.outcome.Status {
	case acquire.StatusSuccess, acquire.StatusEmpty:
		m.Screen = ScreenList
		m.List.ResetFilter()
		m.List.SetItems(toItems(msg.outcome.Records))
		m.List.Select(0)
		m.List.Title = "Saved networks · " + msg.outcome.Origin.Label()
	case acquire.StatusPermissionDenied:
		m.Screen = ScreenDenied
	default:
		m.Screen = ScreenFailed
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While typing a filter every key belongs to the list
	if m.Screen == ScreenList && m.List.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	switch m.Screen {
	case ScreenLoading:
		if key.Matches(msg, m.LoadingKeys.Quit) {
			return m.quit()
		}
		return m, nil

	case ScreenDenied:
		switch {
		case key.Matches(msg, m.DeniedKeys.Quit):
			return m.quit()
		case key.Matches(msg, m.DeniedKeys.Grant):
			return m, grantCmd(m.opts.Grant)
		case key.Matches(msg, m.DeniedKeys.Reload):
			return m.startRun()
		}
		return m, nil

	case ScreenFailed:
		switch {
		case key.Matches(msg, m.ListKeys.Quit):
			return m.quit()
		case key.Matches(msg, m.ListKeys.Reload):
			return m.startRun()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.ListKeys.Quit):
		return m.quit()
	case key.Matches(msg, m.ListKeys.Reload):
		return m.startRun()
	case key.Matches(msg, m.ListKeys.Copy):
		return m.copySelected(true)
	case key.Matches(msg, m.ListKeys.CopyName):
		return m.copySelected(false)
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// copySelected copies the selected record's secret or name. Sentinel
// secrets are not copied.
func (m Model) copySelected(secret bool) (tea.Model, tea.Cmd) {
	item, ok := m.List.SelectedItem().(credentialItem)
	if !ok {
		return m, nil
	}
	rec := item.record

	if !secret {
		return m, copyCmd(m.opts.Clipboard, rec.NetworkName, "name", rec.NetworkName)
	}
	if rec.IsSentinel() {
		m.Status, m.StatusIsError = rec.Secret+" for "+rec.NetworkName, false
		return m, nil
	}
	return m, copyCmd(m.opts.Clipboard, rec.Secret, "password", rec.NetworkName)
}

func copyCmd(write func(string) error, text, what, name string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{what: what, name: name, err: write(text)}
	}
}

func grantCmd(grant func() error) tea.Cmd {
	if grant == nil {
		return nil
	}
	return func() tea.Msg {
		return grantedMsg{err: grant()}
	}
}

// View renders the current screen
func (m Model) View() string {
	var content, helpText string

	switch m.Screen {
	case ScreenLoading:
		content = "\n  " + m.Spinner.View() + " Reading saved networks...\n"
		helpText = m.Help.View(m.LoadingKeys)
	case ScreenDenied:
		content = m.renderDenied()
		helpText = m.Help.View(m.DeniedKeys)
	case ScreenFailed:
		content = "\n" + RenderError(m.Outcome.Message()) + "\n\n  " +
			RenderSubtitle(acquire.TroubleshootingHint(m.Outcome.Err)) + "\n"
		helpText = m.Help.View(m.ListKeys)
	default:
		content = m.renderList()
		helpText = m.Help.View(m.ListKeys)
	}

	if m.Status != "" {
		style := StatusStyle
		if m.StatusIsError {
			style = StatusErrorStyle
		}
		content += "\n  " + style.Render(m.Status)
	}

	return RenderApplicationContainer(BuildHeaderContent(m.opts.Source), content, helpText, m.Width, m.Height)
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString("\n")
	if m.Outcome.Synthetic() {
		b.WriteString("  " + ui.RenderDemoBanner() + "\n\n")
	}
	if len(m.List.Items()) == 0 {
		b.WriteString("  " + WarningStyle.Render("⚠ No saved networks found") + "\n")
		return b.String()
	}
	b.WriteString(m.List.View())
	return b.String()
}

func (m Model) renderDenied() string {
	var b strings.Builder
	b.WriteString("\n  " + WarningStyle.Render("⚠ Permissions required") + "\n\n")

	var missing []string
	var acqErr *acquire.Error
	if errors.As(m.Outcome.Err, &acqErr) {
		for _, p := range acqErr.Missing {
			missing = append(missing, "    • "+p.Label())
		}
	}
	if len(missing) > 0 {
		b.WriteString("  Missing:\n" + strings.Join(missing, "\n") + "\n\n")
	}

	if m.opts.Grant != nil {
		b.WriteString("  " + RenderSubtitle("Press g to grant and read saved networks.") + "\n")
	} else {
		b.WriteString("  " + RenderSubtitle("Grant permissions on the serving device, then press r.") + "\n")
	}
	return b.String()
}

// Records returns the records currently shown, in list order
func (m Model) Records() []credential.Record {
	items := m.List.Items()
	out := make([]credential.Record, 0, len(items))
	for _, it := range items {
		if ci, ok := it.(credentialItem); ok {
			out = append(out, ci.record)
		}
	}
	return out
}
