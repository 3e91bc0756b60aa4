package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raphaelgruber/cvlens/internal/models"
)

func sampleRecord() models.ResumeRecord {
	return models.ResumeRecord{
		ID:        "4f6b2c1a-90d2-4f6e-a1f3-b8a1c2d3e4f5",
		Filename:  "ada.pdf",
		CreatedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Fields: models.Fields{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Phone:   "+44 1234",
			Summary: "Analyst and programmer with a focus on mechanical computation.",
			Experience: []models.Experience{
				{Title: "Analyst", Company: "Analytical Engines Ltd", Period: "1840-1850", Description: "Wrote the first published algorithm."},
			},
			Education: []models.Education{
				{Degree: "Mathematics", Institution: "Private tutors", Period: "1830s"},
			},
			Skills: []string{"mathematics", "algorithms"},
		},
	}
}

func TestRecordContainsAllSections(t *testing.T) {
	out := Record(sampleRecord(), 80)

	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada.pdf")
	assert.Contains(t, out, "4f6b2c1a")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "+44 1234")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Analyst — Analytical Engines Ltd")
	assert.Contains(t, out, "Mathematics — Private tutors")
	assert.Contains(t, out, "algorithms")
}

func TestRecordHandlesEmptyFields(t *testing.T) {
	rec := models.ResumeRecord{ID: "x", Filename: "empty.pdf", CreatedAt: time.Now()}
	out := Record(rec, 80)

	assert.Contains(t, out, "(no name extracted)")
	assert.NotContains(t, out, "Experience")
	assert.NotContains(t, out, "Skills")
}

func TestEntries(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)
	out := Entries([]models.HistoryEntry{
		{ID: "abcdefgh1234", Filename: "first.pdf", CreatedAt: now.Add(-time.Hour)},
		{ID: "second-id", Filename: "a-very-long-resume-filename-that-keeps-going.pdf", CreatedAt: now.AddDate(0, -1, 0)},
	}, now)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3, "header plus one line per entry")
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[1], "abcdefgh")
	assert.Contains(t, lines[1], "first.pdf")
	assert.Contains(t, lines[2], "…", "long filenames are truncated")
}

func TestEntriesEmpty(t *testing.T) {
	assert.Equal(t, "No analyses yet.\n", Entries(nil, time.Now()))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"no wrap needed", "short line", 20, "short line"},
		{"wraps at width", "one two three four", 9, "one two\nthree\nfour"},
		{"zero width passthrough", "anything at all", 0, "anything at all"},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrap(tt.in, tt.width); got != tt.want {
				t.Errorf("wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
