package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/repository"
)

// medals are the fixed labels for the top three ranks. Rank 4 and below
// get nothing.
var medals = [3]string{"🥇", "🥈", "🥉"}

// LeaderboardService produces the ranked user table.
type LeaderboardService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewLeaderboardService(users repository.UserRepository, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{users: users, logger: logger}
}

// Standings returns every user ranked by streak descending.
//
// The sort MUST be stable: ties keep the repository's insertion order, so
// two users on the same streak always rank the same way between calls.
// Zero users is a valid leaderboard — an empty slice, not an error.
func (s *LeaderboardService) Standings(ctx context.Context) ([]model.LeaderboardEntry, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users for leaderboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Streak > users[j].Streak
	})

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entry := model.LeaderboardEntry{
			Rank:      i + 1,
			Username:  u.Username,
			Streak:    u.Streak,
			TotalDays: u.TotalDays,
		}
		if i < len(medals) {
			entry.Medal = medals[i]
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
