package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/cvlens/internal/models"
)

func rec(id, filename string, created time.Time) models.ResumeRecord {
	return models.ResumeRecord{
		ID:        id,
		Filename:  filename,
		CreatedAt: created,
		Fields: models.Fields{
			Name:   "Ada Lovelace",
			Email:  "ada@example.com",
			Skills: []string{"analysis"},
		},
	}
}

func TestRecordOrderAndIdempotence(t *testing.T) {
	s := New("", nil)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Record(rec("a", "a.pdf", base))
	s.Record(rec("b", "b.pdf", base.Add(time.Hour)))
	s.Record(rec("a", "a.pdf", base)) // duplicate id
	s.Record(rec("c", "c.pdf", base.Add(2*time.Hour)))

	all := s.All()
	require.Len(t, all, 3, "each distinct id exactly once")
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "a", all[2].ID)
}

func TestFindReturnsExactRecord(t *testing.T) {
	s := New("", nil)
	want := rec("a", "a.pdf", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	want.Fields.Experience = []models.Experience{{Title: "Engineer", Company: "ACME", Period: "2020-2024"}}
	s.Record(want)

	got, ok := s.Find("a")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = s.Find("missing")
	assert.False(t, ok)
}

func TestMergeStubsKeepsCachedRecords(t *testing.T) {
	s := New("", nil)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Record(rec("local", "local.pdf", base))

	s.MergeStubs([]models.HistoryEntry{
		{ID: "srv-2", Filename: "b.pdf", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "srv-1", Filename: "a.pdf", CreatedAt: base.Add(time.Hour)},
	})

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "srv-2", all[0].ID)
	assert.Equal(t, "srv-1", all[1].ID)
	assert.Equal(t, "local", all[2].ID, "cached record survives a server list that omits it")

	// Stubs have no cached full record until fetched.
	_, ok := s.Find("srv-1")
	assert.False(t, ok)
	_, ok = s.Find("local")
	assert.True(t, ok)
}

func TestMergeStubsDeduplicates(t *testing.T) {
	s := New("", nil)
	s.MergeStubs([]models.HistoryEntry{
		{ID: "x", Filename: "x.pdf"},
		{ID: "x", Filename: "x.pdf"},
	})
	assert.Equal(t, 1, s.Len())
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s := New(path, nil)
	s.Record(rec("a", "a.pdf", base))
	s.Record(rec("b", "b.pdf", base.Add(time.Hour)))

	// A fresh store sees the same entries and full records.
	s2 := New(path, nil)
	all := s2.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)

	got, ok := s2.Find("a")
	require.True(t, ok)
	assert.Equal(t, rec("a", "a.pdf", base), got)
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Equal(t, 0, s.Len())
}

func TestLoadCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	s := New(path, nil)
	assert.Equal(t, 0, s.Len(), "corrupt snapshot yields an empty store, not an error")

	// The store is still usable and persists over the corrupt file.
	s.Record(rec("a", "a.pdf", time.Now().UTC()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var recs []models.ResumeRecord
	require.NoError(t, json.Unmarshal(data, &recs))
	require.Len(t, recs, 1)
}

func TestNoPersistenceWhenPathEmpty(t *testing.T) {
	s := New("", nil)
	s.Record(rec("a", "a.pdf", time.Now().UTC()))
	assert.Equal(t, 1, s.Len())
}
