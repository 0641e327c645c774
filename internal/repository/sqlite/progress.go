package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/repository"
)

// compile-time check that *DB implements repository.ProgressRepository
var _ repository.ProgressRepository = (*DB)(nil)

// Append inserts a quiz attempt. The entry gets an xid — sortable by
// creation time, URL-safe — and its CreatedAt timestamp here; the caller
// supplies the calendar Date.
//
// This is the log's only write path. There is deliberately no Update or
// Delete companion.
func (db *DB) Append(ctx context.Context, entry *model.ProgressEntry) error {
	entry.ID = xid.New().String()
	entry.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO progress (id, username, goal, score, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Username,
		entry.Goal,
		entry.Score,
		entry.Date,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending progress for %q: %w", entry.Username, err)
	}

	return nil
}

// ListByUser returns a user's attempts oldest-first. rowid order is
// insertion order, which for an append-only log is chronological order.
func (db *DB) ListByUser(ctx context.Context, username string) ([]model.ProgressEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, goal, score, date, created_at
		 FROM progress WHERE username = ? ORDER BY rowid`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing progress for %q: %w", username, err)
	}
	defer rows.Close()

	entries := []model.ProgressEntry{}
	for rows.Next() {
		var e model.ProgressEntry
		if err := rows.Scan(
			&e.ID,
			&e.Username,
			&e.Goal,
			&e.Score,
			&e.Date,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning progress row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating progress rows: %w", err)
	}

	return entries, nil
}
