// Package service contains the business logic layer: validation, the
// streak rules, ranking, and the reminder gate. Handlers translate HTTP to
// these calls; repositories do the storage. Nothing here imports net/http
// or database/sql.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sakif/skillgap/internal/apperror"
	"github.com/sakif/skillgap/internal/auth"
	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/repository"
)

// AuthService handles registration and login.
//
// DELIBERATELY MINIMAL:
// No password complexity rules, no rate limiting, no lockout. The
// credential check is a stored-digest equality comparison. This matches
// the app's actual surface; hardening it is out of scope.
type AuthService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register creates an account with zeroed streak counters.
//
// Returns apperror.ErrConflict (via the repository) when the username is
// taken — a duplicate registration never overwrites the existing account.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: auth.HashPassword(password),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return user, nil
}

// Authenticate checks a username/password pair.
//
// Unknown username and wrong password both return the same
// invalid-credentials error, so a caller can't probe which usernames
// exist. No state changes on failure.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, apperror.InvalidCredentials()
	}

	return user, nil
}

// Profile returns the stored record for a logged-in user.
func (s *AuthService) Profile(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}
