package store

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aybkr/tudu/internal/model"
)

// fakePersister records every save and can be told to fail.
type fakePersister struct {
	loaded  []model.Todo
	loadErr error
	saveErr error
	saves   [][]model.Todo
}

func (f *fakePersister) Load() ([]model.Todo, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersister) Save(items []model.Todo) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := make([]model.Todo, len(items))
	copy(cp, items)
	f.saves = append(f.saves, cp)
	return nil
}

func quiet() *log.Logger { return log.New(io.Discard) }

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(nil, quiet())
}

func TestAddPrepends(t *testing.T) {
	s := newStore(t)

	first, err := s.Add("Buy milk")
	require.NoError(t, err)
	second, err := s.Add("Walk dog")
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID, "newest item comes first")
	assert.Equal(t, first.ID, items[1].ID)
	assert.False(t, items[0].Done)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAddRejectsEmptyDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"tabs and newlines", "\t\n "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			_, err := s.Add(tt.in)
			assert.ErrorIs(t, err, ErrEmptyDescription)
			assert.Equal(t, 0, s.Len(), "list unchanged")
		})
	}
}

func TestUpdateChangesOnlyThatDescription(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add("first")
	b, _ := s.Add("second")
	require.NoError(t, s.SetDone(a.ID, true))

	require.NoError(t, s.Update(a.ID, "first edited"))

	items := s.Items()
	require.Len(t, items, 2)
	// Order unchanged: b was added last so it is still first.
	assert.Equal(t, b.ID, items[0].ID)
	assert.Equal(t, "second", items[0].Description)
	assert.Equal(t, a.ID, items[1].ID)
	assert.Equal(t, "first edited", items[1].Description)
	assert.True(t, items[1].Done, "done flag untouched by update")
}

func TestUpdateValidation(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add("keep me")

	assert.ErrorIs(t, s.Update(a.ID, "  "), ErrEmptyDescription)
	assert.ErrorIs(t, s.Update("missing", "text"), ErrNotFound)

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "keep me", got.Description)
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add("one")
	b, _ := s.Add("two")

	require.NoError(t, s.Remove(a.ID))
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get(a.ID)
	assert.False(t, ok)
	_, ok = s.Get(b.ID)
	assert.True(t, ok)

	assert.ErrorIs(t, s.Remove(a.ID), ErrNotFound)
	assert.Equal(t, 1, s.Len(), "missing id is a no-op")
}

func TestSetDoneIdempotent(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add("task")

	require.NoError(t, s.SetDone(a.ID, true))
	require.NoError(t, s.SetDone(a.ID, true))
	got, _ := s.Get(a.ID)
	assert.True(t, got.Done)
	assert.Equal(t, "task", got.Description, "only the done field changes")

	assert.ErrorIs(t, s.SetDone("missing", true), ErrNotFound)
}

func TestToggle(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add("task")

	done, err := s.Toggle(a.ID)
	require.NoError(t, err)
	assert.True(t, done)
	done, err = s.Toggle(a.ID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestReorderIsAPermutation(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")

	// Stored order is [c, b, a]; reverse it.
	require.NoError(t, s.Reorder([]string{a.ID, b.ID, c.ID}))
	items := s.Items()
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(items))

	tests := []struct {
		name string
		ids  []string
	}{
		{"too short", []string{a.ID, b.ID}},
		{"too long", []string{a.ID, b.ID, c.ID, c.ID}},
		{"duplicate id", []string{a.ID, a.ID, c.ID}},
		{"unknown id", []string{a.ID, b.ID, "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Reorder(tt.ids)
			assert.ErrorIs(t, err, ErrBadReorder)
			assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(s.Items()), "list unchanged on bad reorder")
		})
	}
}

func TestMove(t *testing.T) {
	s := newStore(t)
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")
	// Stored order: [c, b, a]

	require.NoError(t, s.Move(c.ID, 2))
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(s.Items()))

	// Clamped at the edges.
	require.NoError(t, s.Move(c.ID, 5))
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(s.Items()))
	require.NoError(t, s.Move(b.ID, -3))
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(s.Items()))

	assert.ErrorIs(t, s.Move("missing", 1), ErrNotFound)
}

func TestFilter(t *testing.T) {
	s := newStore(t)
	s.Add("Buy milk")
	s.Add("Walk dog")
	s.Add("buy MILK again")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case-insensitive", "MILK", []string{"buy MILK again", "Buy milk"}},
		{"substring", "alk", []string{"Walk dog"}},
		{"no match", "xyz", []string{}},
		{"empty query returns all", "", []string{"buy MILK again", "Walk dog", "Buy milk"}},
		{"query is trimmed", "  milk  ", []string{"buy MILK again", "Buy milk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.query)
			descs := make([]string, 0, len(got))
			for _, item := range got {
				descs = append(descs, item.Description)
			}
			assert.Equal(t, tt.want, descs)
			assert.Equal(t, 3, s.Len(), "filtering never mutates the stored list")
		})
	}
}

func TestItemsReturnsACopy(t *testing.T) {
	s := newStore(t)
	s.Add("original")

	items := s.Items()
	items[0].Description = "mutated"

	got := s.Items()
	assert.Equal(t, "original", got[0].Description)
}

func TestEveryMutationPersists(t *testing.T) {
	p := &fakePersister{}
	s := New(p, quiet())

	a, _ := s.Add("one")
	b, _ := s.Add("two")
	s.Update(a.ID, "one edited")
	s.SetDone(a.ID, true)
	s.Reorder([]string{a.ID, b.ID})
	s.Remove(b.ID)

	require.Len(t, p.saves, 6)
	last := p.saves[len(p.saves)-1]
	require.Len(t, last, 1)
	assert.Equal(t, "one edited", last[0].Description)
}

func TestFailedValidationDoesNotPersist(t *testing.T) {
	p := &fakePersister{}
	s := New(p, quiet())

	s.Add("   ")
	s.Update("missing", "text")
	s.Remove("missing")

	assert.Empty(t, p.saves)
}

func TestPersistFailureFallsBackToMemory(t *testing.T) {
	p := &fakePersister{saveErr: errors.New("disk full")}
	s := New(p, quiet())

	_, err := s.Add("still works")
	require.NoError(t, err)
	_, err = s.Add("and again")
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len(), "store keeps running in memory")
}

func TestOpenWithCorruptStoreStartsEmpty(t *testing.T) {
	p := &fakePersister{loadErr: errors.New("corrupt document")}
	s := Open(p, quiet())
	assert.Equal(t, 0, s.Len())
}

func TestOpenLoadsPersistedItems(t *testing.T) {
	p := &fakePersister{loaded: []model.Todo{
		{ID: "1", Description: "persisted", Done: true},
	}}
	s := Open(p, quiet())
	require.Equal(t, 1, s.Len())
	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "persisted", got.Description)
	assert.True(t, got.Done)
}

// The end-to-end scenario: add, edit, toggle, add, remove.
func TestLifecycleScenario(t *testing.T) {
	s := newStore(t)

	milk, err := s.Add("Buy milk")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.Update(milk.ID, "Buy oat milk"))
	got, _ := s.Get(milk.ID)
	assert.Equal(t, "Buy oat milk", got.Description)
	assert.Equal(t, milk.ID, got.ID, "id unchanged by edit")

	require.NoError(t, s.SetDone(milk.ID, true))

	dog, err := s.Add("Walk dog")
	require.NoError(t, err)
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, dog.ID, items[0].ID)
	assert.Equal(t, milk.ID, items[1].ID)
	assert.True(t, items[1].Done)

	require.NoError(t, s.Remove(items[1].ID))
	items = s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Walk dog", items[0].Description)
}

func ids(items []model.Todo) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.ID
	}
	return out
}
