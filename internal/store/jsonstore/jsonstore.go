// Package jsonstore persists the todo list as a single JSON document on
// disk. One namespaced file, human-readable, full-document replace on every
// write. No locking; fine for a local single-user app.
package jsonstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/aybkr/tudu/internal/model"
)

// DataFileName is the namespaced key the list is stored under.
const DataFileName = "tudu.todos.json"

const schemaVersion = 1

//go:embed todos.schema.json
var schemaJSON string

var documentSchema = mustCompileSchema()

// document is the on-disk envelope around the ordered todo list.
type document struct {
	SchemaVersion int          `json:"schema_version"`
	Todos         []model.Todo `json:"todos"`
}

// Store reads and writes the todo document at a fixed path.
type Store struct {
	path string
}

// New returns a Store rooted at dir. The directory is created on first Save.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, DataFileName)}
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the persisted list. A missing file yields an empty list; a
// document that fails to parse or validate is reported as an error so the
// caller can fall back to an empty default.
func (s *Store) Load() ([]model.Todo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := validateDocument(b); err != nil {
		return nil, fmt.Errorf("validate %s: %w", s.path, err)
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if doc.Todos == nil {
		doc.Todos = []model.Todo{}
	}
	return doc.Todos, nil
}

// Save writes the full list, replacing the previous document.
func (s *Store) Save(items []model.Todo) error {
	doc := document{SchemaVersion: schemaVersion, Todos: items}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todos: %w", err)
	}
	b = append(b, '\n')
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// validateDocument checks the raw document against the embedded schema.
// Anything that does not match is treated as corrupt.
func validateDocument(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return documentSchema.Validate(v)
}

func mustCompileSchema() *jsonschema.Schema {
	return jsonschema.MustCompileString("todos.schema.json", schemaJSON)
}
