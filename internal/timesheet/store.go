package timesheet

import (
	"context"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/docstore"
)

// Store is the append-only timesheet document store for one user. Existing
// entries are never altered or removed; Append always places the new entry
// at the end of the sequence.
type Store struct {
	doc *docstore.Store[Document]
}

// NewStore creates a store backed by the JSON document at path.
func NewStore(path string) *Store {
	return &Store{doc: docstore.New[Document](path)}
}

// Path returns the location of the timesheet document.
func (s *Store) Path() string { return s.doc.Path() }

// Load returns the current document. A missing file is an empty timesheet,
// not an error.
func (s *Store) Load(ctx context.Context) (Document, error) {
	return s.doc.Load(ctx)
}

// Entries returns the document if it belongs to user, or an empty document
// scoped to user otherwise. This is the read side consumed by the timesheet
// agent and the HTTP API.
func (s *Store) Entries(ctx context.Context, user string) (Document, error) {
	doc, err := s.doc.Load(ctx)
	if err != nil {
		return Document{}, err
	}
	if doc.User != user {
		return Document{User: user, Entries: []Entry{}}, nil
	}
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}
	return doc, nil
}

// Append adds entry to the end of the document and persists it, returning
// the updated document. An absent document is initialized for entry's user.
func (s *Store) Append(ctx context.Context, user string, entry Entry) (Document, error) {
	var updated Document
	err := s.doc.Update(ctx, func(doc *Document) error {
		if doc.User == "" {
			doc.User = user
		}
		doc.Entries = append(doc.Entries, entry)
		updated = *doc
		return nil
	})
	if err != nil {
		return Document{}, fmt.Errorf("appending timesheet entry: %w", err)
	}
	return updated, nil
}

// Restore rewrites the document to a previously loaded state. It exists
// solely so the write gateway can undo an append whose paired audit record
// failed to persist.
func (s *Store) Restore(ctx context.Context, doc Document) error {
	return s.doc.Replace(ctx, doc)
}
