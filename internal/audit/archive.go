package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ccg-demos/timesleuth/internal/db"
)

// Archiver moves audit entries older than a cutoff out of the hot log and
// into the archive database. Entries are copied in order inside a single
// transaction before the hot document is rewritten, so an interrupted run
// can at worst leave a duplicate in the archive, never a gap.
type Archiver struct {
	store   *Store
	archive *db.DB
}

// NewArchiver creates an Archiver over the given store and archive database.
func NewArchiver(store *Store, archive *db.DB) *Archiver {
	return &Archiver{store: store, archive: archive}
}

// ArchiveBefore moves every entry with a timestamp before cutoff into the
// archive and returns how many were moved. The archive insert commits while
// the document lock is held, so a concurrent append can neither be lost nor
// observe a half-archived log.
func (a *Archiver) ArchiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	moved := 0
	err := a.store.doc.Update(ctx, func(doc *Document) error {
		var old, keep []Entry
		for _, e := range doc.Entries {
			if e.Timestamp.Before(cutoff) {
				old = append(old, e)
			} else {
				keep = append(keep, e)
			}
		}
		if len(old) == 0 {
			return errNothingToArchive
		}

		tx, err := a.archive.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning archive transaction: %w", err)
		}
		defer tx.Rollback()

		for _, e := range old {
			record, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("marshalling audit record: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO audit_archive (action, user, timestamp, suggestion_id, record)
				 VALUES (?, ?, ?, ?, ?)`,
				string(e.Action), e.User, e.Timestamp.UTC().Format(time.RFC3339), e.SuggestionID, string(record),
			)
			if err != nil {
				return fmt.Errorf("inserting archived record: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing archive transaction: %w", err)
		}

		if keep == nil {
			keep = []Entry{}
		}
		doc.Entries = keep
		moved = len(old)
		return nil
	})
	if err == errNothingToArchive {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// errNothingToArchive short-circuits the document rewrite when no entry is
// old enough to move.
var errNothingToArchive = errors.New("nothing to archive")

// Archived returns up to limit archived entries, oldest first.
func (a *Archiver) Archived(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := a.archive.QueryContext(ctx,
		`SELECT record FROM audit_archive ORDER BY seq LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scanning archived record: %w", err)
		}
		var e Entry
		if err := json.Unmarshal([]byte(record), &e); err != nil {
			return nil, fmt.Errorf("unmarshalling archived record: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
