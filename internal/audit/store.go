package audit

import (
	"context"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/docstore"
)

// DefaultLimit is the number of entries ReadRecent returns when the caller
// does not specify one.
const DefaultLimit = 100

// Store is the append-only audit log store.
type Store struct {
	doc *docstore.Store[Document]
}

// NewStore creates a store backed by the JSON document at path. The
// document is created lazily on the first append.
func NewStore(path string) *Store {
	return &Store{doc: docstore.New[Document](path)}
}

// Path returns the location of the audit document.
func (s *Store) Path() string { return s.doc.Path() }

// Append adds record to the end of the log and persists it.
func (s *Store) Append(ctx context.Context, record Entry) error {
	err := s.doc.Update(ctx, func(doc *Document) error {
		doc.Entries = append(doc.Entries, record)
		return nil
	})
	if err != nil {
		return fmt.Errorf("appending audit record: %w", err)
	}
	return nil
}

// ReadRecent returns the last limit entries in original insertion order,
// or all entries when limit >= total. A nonexistent log reads as empty with
// total 0, not as an error. Limits <= 0 fall back to DefaultLimit.
func (s *Store) ReadRecent(ctx context.Context, limit int) (*RecentLog, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	doc, err := s.doc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	total := len(doc.Entries)
	recent := doc.Entries
	if total > limit {
		recent = doc.Entries[total-limit:]
	}
	if recent == nil {
		recent = []Entry{}
	}

	return &RecentLog{
		TotalEntries:    total,
		ReturnedEntries: len(recent),
		Entries:         recent,
	}, nil
}
