// Package models defines the data structures shared between the CVLens
// client, history store, and views.
package models

import "time"

// ResumeRecord is the structured output of parsing one resume document.
// The backend assigns the id; for backend variants that return bare
// fields the client attaches id, filename, and timestamp before the
// record is handed to anyone else. Records are never mutated after
// creation.
type ResumeRecord struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
	Fields    Fields    `json:"fields"`
}

// Fields holds the extracted resume content.
type Fields struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
}

// Experience is one position on the resume.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Education is one degree or program on the resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
}

// HistoryEntry is the lightweight listing projection of a ResumeRecord,
// as returned by GET /analyses.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"timestamp"`
}

// Stub returns the listing projection of the record.
func (r ResumeRecord) Stub() HistoryEntry {
	return HistoryEntry{
		ID:        r.ID,
		Filename:  r.Filename,
		CreatedAt: r.CreatedAt,
	}
}
