// Package tui is the interactive resume browser: intake on the left,
// history on the right, with the controller state machine deciding
// which view is active. Rendering stays here; all transitions live in
// the controller package.
package tui

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphaelgruber/cvlens/internal/client"
	"github.com/raphaelgruber/cvlens/internal/controller"
	"github.com/raphaelgruber/cvlens/internal/models"
)

// stubsMsg carries the startup/refresh history listing.
type stubsMsg struct {
	entries []models.HistoryEntry
	err     error
}

// resolvedMsg carries the outcome of a submit or fetch effect.
type resolvedMsg struct {
	gen uint64
	rec models.ResumeRecord
	err error
}

// Model is the bubbletea model for the browser.
type Model struct {
	ctrl    *controller.Controller
	client  *client.Client
	timeout time.Duration
	theme   Theme

	spinner  spinner.Model
	input    textinput.Model
	entering bool
	cursor   int
	note     string
	width    int
	height   int
	quitting bool

	// cancels the in-flight request when the user starts over
	cancel context.CancelFunc
}

// New creates the browser model.
func New(ctrl *controller.Controller, c *client.Client, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/resume.pdf"

	return Model{
		ctrl:    ctrl,
		client:  c,
		timeout: timeout,
		theme:   defaultTheme,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:   ti,
	}
}

// Init starts the spinner and seeds the history sidebar from the server.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadHistory())
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case stubsMsg:
		if msg.err != nil {
			m.note = "history unavailable: " + client.Message(msg.err)
			return m, nil
		}
		m.ctrl.Store().MergeStubs(msg.entries)
		m.clampCursor()
		return m, nil

	case resolvedMsg:
		m.cancel = nil
		m.ctrl.Resolve(msg.gen, msg.rec, msg.err)
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey dispatches key presses as controller commands.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// While typing a path, only enter/esc are commands.
	if m.entering {
		switch msg.String() {
		case "enter":
			m.entering = false
			m.input.Blur()
			if err := m.ctrl.SelectFile(m.input.Value()); err != nil {
				m.note = selectErrorNote(err)
			} else {
				m.note = ""
			}
			return m, nil
		case "esc":
			m.entering = false
			m.input.Blur()
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "u":
		// Choosing a file is allowed at any time except mid-request.
		if m.ctrl.State() == controller.StatePending {
			return m, nil
		}
		m.entering = true
		m.input.SetValue("")
		return m, m.input.Focus()

	case "esc":
		if m.ctrl.State() != controller.StatePending {
			m.ctrl.NewAnalysis()
			m.note = ""
		}
		return m, nil

	case "n":
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.ctrl.NewAnalysis()
		m.note = ""
		return m, nil

	case "r":
		if m.ctrl.State() == controller.StatePending {
			return m, nil
		}
		m.note = ""
		return m, m.loadHistory()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.ctrl.Store().Len()-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.confirmOrOpen()
	}

	return m, nil
}

// confirmOrOpen submits the pending candidate when there is one,
// otherwise opens the history entry under the cursor. Both are rejected
// by the controller while a request is in flight.
func (m Model) confirmOrOpen() (tea.Model, tea.Cmd) {
	if m.ctrl.Candidate() != nil {
		eff, err := m.ctrl.ConfirmUpload()
		if err != nil {
			if err != controller.ErrBusy {
				m.note = err.Error()
			}
			return m, nil
		}
		return m.runEffect(eff)
	}

	entries := m.ctrl.Store().All()
	if len(entries) == 0 || m.cursor >= len(entries) {
		return m, nil
	}
	eff, issued, err := m.ctrl.SelectEntry(entries[m.cursor].ID)
	if err != nil || !issued {
		return m, nil
	}
	return m.runEffect(eff)
}

// runEffect executes a controller effect as a tea command. The result
// comes back as a resolvedMsg tagged with the effect generation, so a
// superseded request can never overwrite newer state.
func (m Model) runEffect(eff controller.Effect) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel

	cmd := func() tea.Msg {
		defer cancel()
		switch eff.Kind {
		case controller.EffectSubmit:
			rec, err := m.client.Submit(ctx, eff.Candidate)
			return resolvedMsg{gen: eff.Gen, rec: rec, err: err}
		default:
			rec, err := m.client.Get(ctx, eff.ID)
			return resolvedMsg{gen: eff.Gen, rec: rec, err: err}
		}
	}
	return m, cmd
}

// loadHistory fetches the server listing. Failures surface as a status
// note; the sidebar keeps whatever the snapshot loaded.
func (m Model) loadHistory() tea.Cmd {
	c := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := c.List(ctx)
		return stubsMsg{entries: entries, err: err}
	}
}

func (m *Model) clampCursor() {
	if n := m.ctrl.Store().Len(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n := m.ctrl.Store().Len(); n == 0 {
		m.cursor = 0
	}
}

func selectErrorNote(err error) string {
	return fmt.Sprintf("cannot use file: %v", err)
}

// Run starts the interactive browser and blocks until the user quits.
func Run(ctrl *controller.Controller, c *client.Client, timeout time.Duration) error {
	p := tea.NewProgram(New(ctrl, c, timeout))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser UI error: %w", err)
	}
	return nil
}
