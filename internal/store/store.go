// Package store implements the todo list state: an ordered in-memory list
// with synchronous, id-addressed mutations, written through to a Persister
// after every change.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aybkr/tudu/internal/model"
)

var (
	// ErrEmptyDescription rejects add/update with a blank description.
	ErrEmptyDescription = errors.New("empty description")
	// ErrNotFound means the id does not exist; callers treat it as a no-op.
	ErrNotFound = errors.New("todo not found")
	// ErrBadReorder means the proposed order is not a permutation of the list.
	ErrBadReorder = errors.New("reorder is not a permutation of the list")
)

// Persister loads and saves the full ordered list. jsonstore is the only
// production implementation; tests swap in fakes.
type Persister interface {
	Load() ([]model.Todo, error)
	Save([]model.Todo) error
}

// Store holds the ordered todo list. Mutations are synchronous and persist
// the whole list before returning. A persist failure downgrades the store
// to in-memory for the rest of the session; it is never fatal.
type Store struct {
	items   []model.Todo
	persist Persister
	logger  *log.Logger
	memOnly bool
}

// Open loads the persisted list into a new Store. A load failure (corrupt
// or unreadable document) is logged and the store starts empty.
func Open(p Persister, logger *log.Logger) *Store {
	s := New(p, logger)
	if p == nil {
		return s
	}
	items, err := p.Load()
	if err != nil {
		s.logger.Warn("load failed, starting with empty list", "err", err)
		return s
	}
	s.items = items
	return s
}

// New builds an empty Store. Pass a nil Persister for a memory-only store.
func New(p Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{persist: p, logger: logger}
}

// Add validates, prepends and persists a new pending entry.
func (s *Store) Add(description string) (model.Todo, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.Todo{}, ErrEmptyDescription
	}
	t := model.NewTodo(description)
	s.items = append([]model.Todo{t}, s.items...)
	s.flush()
	return t, nil
}

// Update replaces the description of the entry with the given id. Done and
// position are untouched.
func (s *Store) Update(id, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	s.items[i].Description = description
	s.flush()
	return nil
}

// Remove deletes the entry with the given id.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.flush()
	return nil
}

// SetDone sets the done flag of the entry with the given id. Setting the
// same value twice is a no-op beyond the redundant write.
func (s *Store) SetDone(id string, done bool) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("set done %s: %w", id, ErrNotFound)
	}
	s.items[i].Done = done
	s.flush()
	return nil
}

// Toggle flips the done flag and returns the new value.
func (s *Store) Toggle(id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}
	s.items[i].Done = !s.items[i].Done
	s.flush()
	return s.items[i].Done, nil
}

// Reorder replaces the list order with the given id sequence. The sequence
// must be a permutation of the current ids; otherwise the list is left
// unchanged.
func (s *Store) Reorder(ids []string) error {
	if len(ids) != len(s.items) {
		return ErrBadReorder
	}
	byID := make(map[string]model.Todo, len(s.items))
	for _, t := range s.items {
		byID[t.ID] = t
	}
	next := make([]model.Todo, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return ErrBadReorder
		}
		delete(byID, id)
		next = append(next, t)
	}
	s.items = next
	s.flush()
	return nil
}

// Move shifts the entry with the given id by delta positions (negative is
// towards the front), clamped to the list bounds. It is the drag-reorder
// primitive used by the TUI.
func (s *Store) Move(id string, delta int) error {
	from := s.index(id)
	if from < 0 {
		return fmt.Errorf("move %s: %w", id, ErrNotFound)
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(s.items)-1 {
		to = len(s.items) - 1
	}
	if to == from {
		return nil
	}
	ids := make([]string, len(s.items))
	for i, t := range s.items {
		ids[i] = t.ID
	}
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]string{id}, ids[to:]...)...)
	return s.Reorder(ids)
}

// Filter returns the entries whose description contains query,
// case-insensitively, in stored order. An empty query returns everything.
// The stored list is never mutated by filtering.
func (s *Store) Filter(query string) []model.Todo {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Items()
	}
	out := make([]model.Todo, 0, len(s.items))
	for _, t := range s.items {
		if strings.Contains(strings.ToLower(t.Description), query) {
			out = append(out, t)
		}
	}
	return out
}

// Items returns a copy of the list in stored order.
func (s *Store) Items() []model.Todo {
	out := make([]model.Todo, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (model.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.items[i], true
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.items) }

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// flush writes the full list through the persister. On the first failure
// the store keeps running in memory and stops retrying.
func (s *Store) flush() {
	if s.persist == nil || s.memOnly {
		return
	}
	if err := s.persist.Save(s.items); err != nil {
		s.logger.Warn("persistence unavailable, keeping list in memory", "err", err)
		s.memOnly = true
	}
}
