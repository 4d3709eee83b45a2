package timesheet

import (
	"context"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/docstore"
)

// SuggestionQueue persists suggestions between an analysis run and the
// review session that decides them.
type SuggestionQueue struct {
	doc *docstore.Store[[]Suggestion]
}

// NewSuggestionQueue creates a queue backed by the JSON document at path.
func NewSuggestionQueue(path string) *SuggestionQueue {
	return &SuggestionQueue{doc: docstore.New[[]Suggestion](path)}
}

// Pending returns the suggestions awaiting a decision.
func (q *SuggestionQueue) Pending(ctx context.Context) ([]Suggestion, error) {
	sugs, err := q.doc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading suggestions: %w", err)
	}
	return sugs, nil
}

// Add appends suggestions to the queue.
func (q *SuggestionQueue) Add(ctx context.Context, sugs ...Suggestion) error {
	return q.doc.Update(ctx, func(pending *[]Suggestion) error {
		*pending = append(*pending, sugs...)
		return nil
	})
}

// Remove drops the suggestion with the given ID, typically after it has
// been approved or rejected.
func (q *SuggestionQueue) Remove(ctx context.Context, id string) error {
	return q.doc.Update(ctx, func(pending *[]Suggestion) error {
		kept := (*pending)[:0]
		for _, s := range *pending {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		*pending = kept
		return nil
	})
}
