// Package docstore persists a single JSON document on disk and serializes
// all read-modify-write cycles against it. Both the timesheet and the audit
// log are stored this way: the whole document is rewritten on every change,
// which is fine at the data volumes this system handles.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupt is returned when the document file exists but cannot be parsed.
// The file is left untouched so no prior entries are lost.
var ErrCorrupt = errors.New("document corrupt")

// Store holds one JSON document of type T at a fixed path. A missing file
// reads as the zero-value document; writers queue on a per-store mutex so
// concurrent updates never lose each other's changes.
type Store[T any] struct {
	path string
	mu   sync.Mutex
}

// New creates a store for the document at path. The file is not created
// until the first update.
func New[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the location of the underlying document file.
func (s *Store[T]) Path() string { return s.path }

// Load reads the current document. A nonexistent file yields the zero value
// of T and no error; an unparsable file yields ErrCorrupt.
func (s *Store[T]) Load(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Update runs fn on the current document under the store lock and persists
// the result atomically. If fn returns an error nothing is written.
func (s *Store[T]) Update(ctx context.Context, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.persist(doc)
}

// Replace overwrites the document with doc, bypassing the read step. The
// write gateway uses it to undo a partially committed approval; nothing
// else should.
func (s *Store[T]) Replace(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(doc)
}

func (s *Store[T]) load(ctx context.Context) (T, error) {
	var doc T
	if err := ctx.Err(); err != nil {
		return doc, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return doc, nil
}

// persist writes doc to a temp file and renames it into place, so readers
// never observe a half-written document.
func (s *Store[T]) persist(doc T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", s.path, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
