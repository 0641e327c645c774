package service

// Hand-written in-memory mocks for the repository interfaces, shared by
// the service tests in this package. They keep insertion order the way the
// SQLite implementation does, since the leaderboard's tie-breaking depends
// on it.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/skillgap/internal/apperror"
	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/repository"
)

type mockUserRepo struct {
	users map[string]*model.User
	order []string // usernames in insertion order
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Username]; ok {
		return apperror.Conflict("user", user.Username)
	}
	stored := *user
	m.users[user.Username] = &stored
	m.order = append(m.order, user.Username)
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) UpdateStreak(_ context.Context, username string, streak, totalDays int, lastActive string) error {
	user, ok := m.users[username]
	if !ok {
		return apperror.NotFound("user", username)
	}
	user.Streak = streak
	user.TotalDays = totalDays
	user.LastActive = lastActive
	return nil
}

func (m *mockUserRepo) SetLastEmailDate(_ context.Context, username, date string) error {
	user, ok := m.users[username]
	if !ok {
		return apperror.NotFound("user", username)
	}
	user.LastEmailDate = date
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.order))
	for _, username := range m.order {
		result = append(result, *m.users[username])
	}
	return result, nil
}

type mockProgressRepo struct {
	entries []model.ProgressEntry
	nextID  int
}

var _ repository.ProgressRepository = (*mockProgressRepo)(nil)

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{}
}

func (m *mockProgressRepo) Append(_ context.Context, entry *model.ProgressEntry) error {
	m.nextID++
	entry.ID = fmt.Sprintf("mock-%d", m.nextID)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockProgressRepo) ListByUser(_ context.Context, username string) ([]model.ProgressEntry, error) {
	result := []model.ProgressEntry{}
	for _, e := range m.entries {
		if e.Username == username {
			result = append(result, e)
		}
	}
	return result, nil
}

// testLogger discards everything below error so test output stays quiet.
func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
