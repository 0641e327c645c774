package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/skillgap/internal/apperror"
	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user row with zeroed counters.
//
// The username is the primary key, and a duplicate INSERT is reported as a
// conflict — registration never overwrites an existing account (overwriting
// would silently wipe the account's streak counters).
func (db *DB) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, streak, total_days, last_active, last_email_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Streak,
		user.TotalDays,
		user.LastActive,
		user.LastEmailDate,
		user.CreatedAt,
	)
	if err != nil {
		// modernc's driver has no typed constraint error worth depending
		// on; match the message like the sqlite tooling itself does.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "constraint failed") {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByUsername retrieves a user by name.
// Returns apperror.ErrNotFound if no such user exists.
func (db *DB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT username, email, password_hash, streak, total_days, last_active, last_email_date, created_at
		 FROM users WHERE username = ?`,
		username,
	).Scan(
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Streak,
		&u.TotalDays,
		&u.LastActive,
		&u.LastEmailDate,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &u, nil
}

// UpdateStreak writes the three streak fields in a single statement — the
// only mutation path for the counters.
func (db *DB) UpdateStreak(ctx context.Context, username string, streakCount, totalDays int, lastActive string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET streak = ?, total_days = ?, last_active = ? WHERE username = ?`,
		streakCount, totalDays, lastActive, username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating streak for %q: %w", username, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("user", username)
	}

	return nil
}

// SetLastEmailDate records the calendar day of the last automated reminder.
func (db *DB) SetLastEmailDate(ctx context.Context, username, date string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET last_email_date = ? WHERE username = ?`,
		date, username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating last_email_date for %q: %w", username, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("user", username)
	}

	return nil
}

// List returns every user in insertion order (rowid order). The leaderboard
// sorts on top of this; the fixed base order is what makes its tie-breaking
// deterministic.
func (db *DB) List(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT username, email, password_hash, streak, total_days, last_active, last_email_date, created_at
		 FROM users ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.Streak,
			&u.TotalDays,
			&u.LastActive,
			&u.LastEmailDate,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}

	return users, nil
}
