// Package intake holds the candidate file chosen for upload until the
// user confirms or resets it. Only PDF documents are accepted.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ErrInvalidType is returned by Select for non-PDF files. The previous
// candidate, if any, is left untouched.
var ErrInvalidType = errors.New("only PDF files are supported")

// ErrNoCandidate is returned by Confirm when nothing is selected.
var ErrNoCandidate = errors.New("no file selected")

var pdfMagic = []byte("%PDF-")

// Candidate is a file chosen but not yet submitted for parsing.
type Candidate struct {
	Path     string
	Filename string
	Data     []byte
	// Pages is best effort; 0 when the document couldn't be read.
	Pages int
}

// Size returns the candidate's size in bytes.
func (c Candidate) Size() int64 { return int64(len(c.Data)) }

// Intake tracks at most one pending candidate.
type Intake struct {
	pending *Candidate
}

// New creates an empty intake.
func New() *Intake {
	return &Intake{}
}

// Select reads and validates the file at path. On success it replaces
// any prior candidate; on failure the prior candidate stays. Select
// never performs a network call.
func (i *Intake) Select(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ErrInvalidType
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return ErrInvalidType
	}

	i.pending = &Candidate{
		Path:     path,
		Filename: filepath.Base(path),
		Data:     data,
		Pages:    pageCount(data),
	}
	return nil
}

// Confirm returns the pending candidate for submission without clearing
// it. The caller resets the intake only after the submission settles
// successfully, so a failed upload can be retried without reselecting.
func (i *Intake) Confirm() (Candidate, error) {
	if i.pending == nil {
		return Candidate{}, ErrNoCandidate
	}
	return *i.pending, nil
}

// Pending returns the current candidate, or nil.
func (i *Intake) Pending() *Candidate {
	return i.pending
}

// Reset clears the pending candidate unconditionally.
func (i *Intake) Reset() {
	i.pending = nil
}

// pageCount parses the document for display purposes. The magic header
// already validated the type, so a parse failure just means 0 pages.
func pageCount(data []byte) int {
	defer func() {
		// ledongthuc/pdf panics on some malformed cross-reference tables.
		_ = recover()
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}
