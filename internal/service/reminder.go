package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sakif/skillgap/internal/apperror"
	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/notifier"
	"github.com/sakif/skillgap/internal/repository"
	"github.com/sakif/skillgap/internal/streak"
)

// The reminder content is fixed; there is no templating.
const (
	reminderSubject = "Daily Skill Reminder"
	reminderBody    = "Practice today and keep your streak!"
)

// ReminderService sends the practice-reminder email.
//
// Two paths share the same send:
//   - SendNow: the manual "send now" action. No gating at all — pressing
//     the button five times sends five emails.
//   - SendDaily: the automated path, gated by last_email_date to at most
//     one delivery per user per calendar day.
//
// mailer may be nil: that is the disabled-notifier state entered when the
// EMAIL_USER/EMAIL_PASS secrets are absent. Both paths then return a
// missing-configuration error instead of attempting a send.
type ReminderService struct {
	users  repository.UserRepository
	mailer notifier.Sender
	logger *slog.Logger
	now    func() time.Time
}

func NewReminderService(users repository.UserRepository, mailer notifier.Sender, logger *slog.Logger) *ReminderService {
	return &ReminderService{
		users:  users,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
	}
}

// SendNow makes one immediate delivery attempt to the user's own address,
// bypassing the daily gate. The outcome is returned as an explicit Result,
// sent or not.
func (s *ReminderService) SendNow(ctx context.Context, username string) (notifier.Result, error) {
	user, err := s.precheck(ctx, username)
	if err != nil {
		return notifier.Result{}, err
	}

	return s.mailer.Send(ctx, user.Email, reminderSubject, reminderBody), nil
}

// SendDaily is the automated reminder path.
//
// GATE SEMANTICS:
// At most one delivery per calendar day, tracked by last_email_date on the
// user row. The date is written only AFTER a successful send — a failed
// attempt does not consume the day, so a later call may try again.
func (s *ReminderService) SendDaily(ctx context.Context, username string) (notifier.Result, error) {
	user, err := s.precheck(ctx, username)
	if err != nil {
		return notifier.Result{}, err
	}

	today := s.now().Format(streak.DateFormat)
	if user.LastEmailDate == today {
		return notifier.Result{Sent: false, Reason: "already sent today"}, nil
	}

	res := s.mailer.Send(ctx, user.Email, reminderSubject, reminderBody)
	if !res.Sent {
		return res, nil
	}

	if err := s.users.SetLastEmailDate(ctx, username, today); err != nil {
		// The email went out; only the gate write failed. Surface the send
		// as successful and log the bookkeeping failure — worst case the
		// user gets a second reminder today.
		s.logger.Error("failed to record reminder date",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}

	return res, nil
}

// precheck handles the states common to both paths: notifier disabled,
// unknown user, user without an email address.
func (s *ReminderService) precheck(ctx context.Context, username string) (*model.User, error) {
	if s.mailer == nil {
		return nil, apperror.Unavailable("email reminders are not configured on this server")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user.Email == "" {
		return nil, apperror.ValidationFailed("email", "no email address on record")
	}

	return user, nil
}
