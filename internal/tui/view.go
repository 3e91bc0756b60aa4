package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/cvlens/internal/controller"
	"github.com/raphaelgruber/cvlens/internal/models"
	"github.com/raphaelgruber/cvlens/internal/render"
)

// Theme holds the color scheme for the browser.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

var defaultTheme = Theme{
	Accent:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

const sidebarWidth = 34

// View renders the active view plus the history sidebar.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	main := m.renderMain()
	sidebar := m.renderSidebar()

	body := lipgloss.JoinHorizontal(lipgloss.Top, main, sidebar)

	var footer string
	if m.note != "" {
		footer = m.theme.errorStyle().Render(m.note) + "\n"
	}
	footer += m.theme.hintStyle().Render(m.keyHelp())

	return tea.NewView(fmt.Sprintf("%s\n%s\n", body, footer))
}

// renderMain renders the view selected by the controller state.
func (m Model) renderMain() string {
	width := m.mainWidth()
	style := lipgloss.NewStyle().Width(width).Padding(0, 1)

	switch m.ctrl.State() {
	case controller.StatePending:
		return style.Render(fmt.Sprintf("%s Parsing resume…", m.spinner.View()))

	case controller.StateDetail:
		rec := m.ctrl.Active()
		if rec == nil {
			return style.Render("")
		}
		return style.Render(render.Record(*rec, width-2))

	case controller.StateFailed:
		msg := m.theme.errorStyle().Render("✗ " + m.ctrl.ErrorMessage())
		hint := m.theme.hintStyle().Render("press enter to retry, n to start over")
		if m.ctrl.Candidate() == nil {
			hint = m.theme.hintStyle().Render("press n to start over")
		}
		return style.Render(msg + "\n\n" + hint)

	default:
		return style.Render(m.renderIntake())
	}
}

// renderIntake shows the path prompt or the pending candidate summary.
func (m Model) renderIntake() string {
	title := m.theme.accentStyle().Render("New analysis")

	if m.entering {
		return fmt.Sprintf("%s\n\n%s", title, m.input.View())
	}

	if cand := m.ctrl.Candidate(); cand != nil {
		info := fmt.Sprintf("%s (%s", cand.Filename, byteCount(cand.Size()))
		if cand.Pages > 0 {
			info += ", " + models.CountLabel(cand.Pages, "page")
		}
		info += ")"
		return fmt.Sprintf("%s\n\n%s\n%s", title, info,
			m.theme.hintStyle().Render("enter to upload, u to pick another file"))
	}

	return fmt.Sprintf("%s\n\n%s", title,
		m.theme.hintStyle().Render("press u to choose a PDF"))
}

// renderSidebar lists history entries with the cursor.
func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.accentStyle().Render("History"))
	b.WriteString("\n")

	entries := m.ctrl.Store().All()
	if len(entries) == 0 {
		b.WriteString(m.theme.hintStyle().Render("no analyses yet"))
	}

	now := time.Now()
	activeID := ""
	if rec := m.ctrl.Active(); rec != nil {
		activeID = rec.ID
	}

	for i, e := range entries {
		line := fmt.Sprintf("%s  %s",
			models.Truncate(e.Filename, 20), models.FormatWhen(e.CreatedAt, now))
		marker := "  "
		if e.ID == activeID {
			marker = "* "
		}
		if i == m.cursor {
			b.WriteString(m.theme.selectedStyle().Render("> " + line))
		} else {
			b.WriteString(marker + line)
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(sidebarWidth).Padding(0, 1).Render(b.String())
}

func (m Model) keyHelp() string {
	if m.entering {
		return "enter confirm · esc cancel"
	}
	switch m.ctrl.State() {
	case controller.StatePending:
		return "n cancel · q quit"
	case controller.StateDetail:
		return "u upload · n new · r refresh · ↑/↓ history · enter open · q quit"
	default:
		return "u upload · enter confirm/open · r refresh · ↑/↓ history · q quit"
	}
}

func (m Model) mainWidth() int {
	if m.width <= 0 {
		return 80 - sidebarWidth
	}
	w := m.width - sidebarWidth
	if w < 20 {
		w = 20
	}
	return w
}

func byteCount(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}
