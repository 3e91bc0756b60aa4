// Package render turns parsed resume records into styled terminal text,
// shared by the one-shot CLI commands and the interactive browser.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/cvlens/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFD7"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D787"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	skillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AF5F"))
)

// Record renders the full record. Width bounds wrapped paragraphs; pass
// 0 for an unbounded width.
func Record(rec models.ResumeRecord, width int) string {
	var b strings.Builder

	name := rec.Fields.Name
	if name == "" {
		name = "(no name extracted)"
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s · %s · %s",
		rec.Filename, models.ShortID(rec.ID), rec.CreatedAt.Local().Format(time.DateTime))))
	b.WriteString("\n\n")

	if rec.Fields.Email != "" || rec.Fields.Phone != "" {
		if rec.Fields.Email != "" {
			b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("email"), rec.Fields.Email))
		}
		if rec.Fields.Phone != "" {
			b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("phone"), rec.Fields.Phone))
		}
		b.WriteString("\n")
	}

	if rec.Fields.Summary != "" {
		b.WriteString(sectionStyle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(wrap(rec.Fields.Summary, width))
		b.WriteString("\n\n")
	}

	if len(rec.Fields.Experience) > 0 {
		b.WriteString(sectionStyle.Render("Experience"))
		b.WriteString("\n")
		for _, exp := range rec.Fields.Experience {
			head := exp.Title
			if exp.Company != "" {
				head += " — " + exp.Company
			}
			b.WriteString("  • " + head)
			if exp.Period != "" {
				b.WriteString(" " + labelStyle.Render("("+exp.Period+")"))
			}
			b.WriteString("\n")
			if exp.Description != "" {
				b.WriteString(indent(wrap(exp.Description, width-4), 4))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(rec.Fields.Education) > 0 {
		b.WriteString(sectionStyle.Render("Education"))
		b.WriteString("\n")
		for _, edu := range rec.Fields.Education {
			head := edu.Degree
			if edu.Institution != "" {
				head += " — " + edu.Institution
			}
			b.WriteString("  • " + head)
			if edu.Period != "" {
				b.WriteString(" " + labelStyle.Render("("+edu.Period+")"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(rec.Fields.Skills) > 0 {
		b.WriteString(sectionStyle.Render("Skills"))
		b.WriteString("\n  ")
		for i, skill := range rec.Fields.Skills {
			if i > 0 {
				b.WriteString(labelStyle.Render(" · "))
			}
			b.WriteString(skillStyle.Render(skill))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Entries renders a history listing, newest first.
func Entries(entries []models.HistoryEntry, now time.Time) string {
	if len(entries) == 0 {
		return "No analyses yet.\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s %-30s %s\n", "ID", "FILE", "WHEN"))
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%-10s %-30s %s\n",
			models.ShortID(e.ID), models.Truncate(e.Filename, 30), models.FormatWhen(e.CreatedAt, now)))
	}
	return b.String()
}

// wrap is a simple greedy word wrapper.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len([]rune(w)) > width {
				b.WriteString("\n")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(w)
		line += len([]rune(w))
	}
	return b.String()
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
