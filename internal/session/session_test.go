package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsBrowsing(t *testing.T) {
	var s Session
	assert.Equal(t, Browsing, s.State())
	assert.False(t, s.Searching())
	_, editing := s.Active()
	assert.False(t, editing)
}

func TestStartEditPreloadsDraft(t *testing.T) {
	var s Session
	s.StartEdit("id-1", "Buy milk")

	assert.Equal(t, Editing, s.State())
	id, editing := s.Active()
	require.True(t, editing)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, "Buy milk", s.EditDraft)
}

func TestStartEditWhileEditingSwitchesTarget(t *testing.T) {
	var s Session
	s.StartEdit("id-1", "first")
	s.StartEdit("id-2", "second")

	id, editing := s.Active()
	require.True(t, editing)
	assert.Equal(t, "id-2", id, "last request wins")
	assert.Equal(t, "second", s.EditDraft)
}

func TestSubmitEdit(t *testing.T) {
	var s Session
	s.StartEdit("id-1", "Buy milk")
	s.EditDraft = "Buy oat milk"

	id, draft, ok := s.SubmitEdit()
	require.True(t, ok)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, "Buy oat milk", draft)
	assert.Equal(t, Browsing, s.State())
	assert.Empty(t, s.EditDraft)

	_, _, ok = s.SubmitEdit()
	assert.False(t, ok, "nothing to submit while browsing")
}

func TestCancelEditDiscardsDraft(t *testing.T) {
	var s Session
	s.StartEdit("id-1", "Buy milk")
	s.EditDraft = "half-typed chan"

	s.CancelEdit()
	assert.Equal(t, Browsing, s.State())
	assert.Empty(t, s.EditDraft)
}

func TestNoteRemoved(t *testing.T) {
	var s Session
	s.StartEdit("id-1", "Buy milk")

	s.NoteRemoved("id-2")
	assert.Equal(t, Editing, s.State(), "removing another item keeps the edit open")

	s.NoteRemoved("id-1")
	assert.Equal(t, Browsing, s.State(), "removing the edited item closes the edit")
}

func TestToggleSearchClearsQueryBothWays(t *testing.T) {
	var s Session

	assert.True(t, s.ToggleSearch())
	s.SearchQuery = "milk"
	assert.False(t, s.ToggleSearch())
	assert.Empty(t, s.SearchQuery)

	assert.True(t, s.ToggleSearch())
	assert.Empty(t, s.SearchQuery)
}

func TestSearchDoesNotDisturbEditDraft(t *testing.T) {
	var s Session
	s.StartEdit("id-1", "Buy milk")
	s.EditDraft = "Buy oat milk"

	s.ToggleSearch()
	s.SearchQuery = "dog"
	s.ToggleSearch()

	id, editing := s.Active()
	require.True(t, editing)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, "Buy oat milk", s.EditDraft)
}

func TestExitSearch(t *testing.T) {
	var s Session
	s.ExitSearch() // no-op while off

	s.ToggleSearch()
	s.SearchQuery = "milk"
	s.ExitSearch()
	assert.False(t, s.Searching())
	assert.Empty(t, s.SearchQuery)
}
