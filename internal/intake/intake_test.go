package intake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestSelectAcceptsPDF(t *testing.T) {
	i := New()
	path := writeFile(t, "cv.pdf", []byte("%PDF-1.7\nsome content"))

	require.NoError(t, i.Select(path))
	cand := i.Pending()
	require.NotNil(t, cand)
	assert.Equal(t, "cv.pdf", cand.Filename)
	assert.Equal(t, path, cand.Path)
	assert.Equal(t, int64(21), cand.Size())
	assert.Equal(t, 0, cand.Pages, "unparseable body still selects, page count is best effort")
}

func TestSelectRejectsWrongExtension(t *testing.T) {
	i := New()
	path := writeFile(t, "cv.docx", []byte("%PDF-1.7 pretending"))

	err := i.Select(path)
	require.ErrorIs(t, err, ErrInvalidType)
	assert.Nil(t, i.Pending())
}

func TestSelectRejectsWrongMagic(t *testing.T) {
	i := New()
	path := writeFile(t, "cv.pdf", []byte("PK\x03\x04 zip bytes"))

	err := i.Select(path)
	require.ErrorIs(t, err, ErrInvalidType)
	assert.Nil(t, i.Pending())
}

func TestSelectKeepsPriorCandidateOnFailure(t *testing.T) {
	i := New()
	good := writeFile(t, "good.pdf", []byte("%PDF-1.4\nbody"))
	require.NoError(t, i.Select(good))

	bad := writeFile(t, "bad.txt", []byte("nope"))
	require.ErrorIs(t, i.Select(bad), ErrInvalidType)

	require.NotNil(t, i.Pending())
	assert.Equal(t, "good.pdf", i.Pending().Filename)
}

func TestSelectReplacesPriorCandidate(t *testing.T) {
	i := New()
	first := writeFile(t, "first.pdf", []byte("%PDF-1.4\na"))
	second := writeFile(t, "second.pdf", []byte("%PDF-1.4\nb"))

	require.NoError(t, i.Select(first))
	require.NoError(t, i.Select(second))
	assert.Equal(t, "second.pdf", i.Pending().Filename)
}

func TestSelectMissingFile(t *testing.T) {
	i := New()
	err := i.Select(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidType)
}

func TestConfirmIsAReadNotATransition(t *testing.T) {
	i := New()
	path := writeFile(t, "cv.pdf", []byte("%PDF-1.4\nbody"))
	require.NoError(t, i.Select(path))

	cand, err := i.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", cand.Filename)
	assert.NotNil(t, i.Pending(), "confirm does not clear the candidate")

	again, err := i.Confirm()
	require.NoError(t, err)
	assert.Equal(t, cand, again)
}

func TestConfirmEmpty(t *testing.T) {
	i := New()
	_, err := i.Confirm()
	require.ErrorIs(t, err, ErrNoCandidate)
}

func TestReset(t *testing.T) {
	i := New()
	path := writeFile(t, "cv.pdf", []byte("%PDF-1.4\nbody"))
	require.NoError(t, i.Select(path))

	i.Reset()
	assert.Nil(t, i.Pending())

	i.Reset() // reset on empty is fine
	assert.Nil(t, i.Pending())
}
