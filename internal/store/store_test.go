package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasitlab/disaster-lens/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAnalysis(id string) *model.Analysis {
	return &model.Analysis{
		ID:          id,
		EventType:   "น้ำท่วม",
		Location:    "หาดใหญ่",
		EventTypeEN: "flood",
		LocationEN:  "Hat Yai",
		Model:       "gemini-2.5-flash",
		ParsedCount: 12,
		Events: []model.DisasterEvent{
			{Time: "2020-01", DamageAmount: 100, Fatalities: 1, Injuries: 2,
				Source: "X: http://x", Description: "a"},
		},
		RawText:   "[...]",
		CreatedAt: "2026-08-23T10:00:00Z",
	}
}

func TestSaveAndReadAnalysis(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveAnalysis(sampleAnalysis("a1")))

	got, err := s.ReadAnalysis("a1")
	require.NoError(t, err)

	assert.Equal(t, "น้ำท่วม", got.EventType)
	assert.Equal(t, "flood", got.EventTypeEN)
	assert.Equal(t, 12, got.ParsedCount)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "2020-01", got.Events[0].Time)
	assert.Equal(t, "[...]", got.RawText)
}

func TestListAnalyses_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	first := sampleAnalysis("a1")
	first.CreatedAt = "2026-08-22T10:00:00Z"
	second := sampleAnalysis("a2")
	second.CreatedAt = "2026-08-23T10:00:00Z"

	require.NoError(t, s.SaveAnalysis(first))
	require.NoError(t, s.SaveAnalysis(second))

	list, err := s.ListAnalyses()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a2", list[0].ID)
	assert.Equal(t, "a1", list[1].ID)

	assert.Equal(t, 2, s.AnalysisCount())
}

func TestReadAnalysis_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ReadAnalysis("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
