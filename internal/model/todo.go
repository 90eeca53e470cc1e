// Package model holds the domain types shared by the store, CLI and TUI.
package model

import "github.com/google/uuid"

// Todo is the domain model for a single list entry.
// ID is assigned once at creation and never changes; Description is
// guaranteed non-empty by the store's validation.
type Todo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// NewTodo builds a pending entry with a fresh unique id.
func NewTodo(description string) Todo {
	return Todo{
		ID:          NewID(),
		Description: description,
		Done:        false,
	}
}

// NewID returns a fresh unique id for a todo entry.
func NewID() string {
	return uuid.NewString()
}
