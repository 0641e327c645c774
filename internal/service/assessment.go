package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/skillgap/internal/apperror"
	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/quiz"
	"github.com/sakif/skillgap/internal/repository"
	"github.com/sakif/skillgap/internal/streak"
)

// AssessmentService runs the quiz flow: grade a submission, append it to
// the progress log, then update the streak — in that order. The progress
// entry is committed before the streak update runs, so a streak failure
// leaves the attempt on record.
type AssessmentService struct {
	users    repository.UserRepository
	progress repository.ProgressRepository
	policy   streak.Policy
	logger   *slog.Logger

	// now is injectable so tests control the calendar day.
	now func() time.Time
}

func NewAssessmentService(
	users repository.UserRepository,
	progress repository.ProgressRepository,
	policy streak.Policy,
	logger *slog.Logger,
) *AssessmentService {
	return &AssessmentService{
		users:    users,
		progress: progress,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmissionResult is what a graded quiz submission returns to the user:
// the score, the flagged gaps, the study plan, and the counters after the
// streak update.
type SubmissionResult struct {
	quiz.Result
	Plan      string `json:"plan"`
	Streak    int    `json:"streak"`
	TotalDays int    `json:"totalDays"`
}

// Submit grades a quiz submission for a career goal and records it.
func (s *AssessmentService) Submit(ctx context.Context, username, goalName string, answers []string) (*SubmissionResult, error) {
	goal, ok := quiz.GoalByName(goalName)
	if !ok {
		return nil, apperror.ValidationFailed("goal", fmt.Sprintf("unknown career goal %q", goalName))
	}

	graded, err := quiz.Grade(goal, answers)
	if err != nil {
		// A goal whose skills have no questions can't be assessed — a
		// client error, not a crash.
		return nil, apperror.ValidationFailed("goal", fmt.Sprintf("no quiz available for goal %q", goalName))
	}

	today := s.now().Format(streak.DateFormat)

	entry := &model.ProgressEntry{
		Username: username,
		Goal:     goalName,
		Score:    graded.Percent,
		Date:     today,
	}
	if err := s.progress.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append progress",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("recording quiz attempt: %w", err)
	}

	user, changed, err := s.updateStreak(ctx, username, today)
	if err != nil {
		return nil, err
	}

	s.logger.Info("quiz submitted",
		slog.String("username", username),
		slog.String("goal", goalName),
		slog.Int("percent", graded.Percent),
		slog.Bool("streakAdvanced", changed),
	)

	result := &SubmissionResult{
		Result: graded,
		Plan:   quiz.Plan(goalName, graded.Gaps),
	}
	if user != nil {
		result.Streak = user.Streak
		result.TotalDays = user.TotalDays
	}
	return result, nil
}

// updateStreak applies the configured streak policy for one activity day.
//
// A missing user row is a defensive no-op (warn and carry on), matching
// how the rest of the app treats absent records as zero state.
func (s *AssessmentService) updateStreak(ctx context.Context, username, today string) (*model.User, bool, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("streak update skipped: user row missing",
				slog.String("username", username),
			)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("loading user for streak update: %w", err)
	}

	state := streak.State{
		Streak:     user.Streak,
		TotalDays:  user.TotalDays,
		LastActive: user.LastActive,
	}

	next, changed := streak.Update(s.policy, state, today)
	if !changed {
		return user, false, nil
	}

	if err := s.users.UpdateStreak(ctx, username, next.Streak, next.TotalDays, next.LastActive); err != nil {
		return nil, false, fmt.Errorf("writing streak update: %w", err)
	}

	user.Streak = next.Streak
	user.TotalDays = next.TotalDays
	user.LastActive = next.LastActive
	return user, true, nil
}

// Dashboard is the data behind the progress page: the full attempt history
// oldest-first plus the current counters.
type Dashboard struct {
	Entries    []model.ProgressEntry `json:"entries"`
	Streak     int                   `json:"streak"`
	TotalDays  int                   `json:"totalDays"`
	LastActive string                `json:"lastActive"`
}

// Progress assembles a user's dashboard. A missing user row yields zero
// counters rather than an error.
func (s *AssessmentService) Progress(ctx context.Context, username string) (*Dashboard, error) {
	entries, err := s.progress.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}

	d := &Dashboard{Entries: entries}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return d, nil
		}
		return nil, fmt.Errorf("loading user counters: %w", err)
	}

	d.Streak = user.Streak
	d.TotalDays = user.TotalDays
	d.LastActive = user.LastActive
	return d, nil
}
