// Package repository defines the storage interfaces the service layer
// depends on. Services receive these interfaces, never a concrete store —
// tests inject in-memory mocks, production injects the sqlite package.
package repository

import (
	"context"

	"github.com/sakif/skillgap/internal/model"
)

// UserRepository stores user accounts and their streak counters.
type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict (wrapped) if
	// the username is already taken — usernames are the primary key and
	// are never overwritten.
	Create(ctx context.Context, user *model.User) error

	// GetByUsername returns apperror.ErrNotFound (wrapped) for unknown names.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// UpdateStreak writes the three streak fields in one statement. It is
	// the only mutation path for the counters.
	UpdateStreak(ctx context.Context, username string, streak, totalDays int, lastActive string) error

	// SetLastEmailDate records the calendar day of the last automated
	// reminder, the daily-gate state.
	SetLastEmailDate(ctx context.Context, username, date string) error

	// List returns all users in insertion order. Callers sort; returning
	// a fixed base order keeps tie-breaking deterministic.
	List(ctx context.Context) ([]model.User, error)
}

// ProgressRepository is the append-only quiz attempt log. There is no
// update or delete — entries are immutable once written.
type ProgressRepository interface {
	Append(ctx context.Context, entry *model.ProgressEntry) error

	// ListByUser returns a user's entries oldest-first (insertion order,
	// which is also chronological order).
	ListByUser(ctx context.Context, username string) ([]model.ProgressEntry, error)
}
