package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillgap/internal/auth"
	"github.com/sakif/skillgap/internal/handler"
	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/repository/sqlite"
	"github.com/sakif/skillgap/internal/service"
)

// withUsername plants a username in the request context the way the auth
// middleware would, so a handler can be exercised in isolation.
func withUsername(r *http.Request, tokens *auth.TokenService, username string) *http.Request {
	token, _ := tokens.Generate(username)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	return r
}

func TestReminder_MissingConfiguration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Create(context.Background(), &model.User{
		Username: "alice",
		Email:    "alice@example.com",
	}))

	tokens, err := auth.NewTokenService("handler-test-secret-0123456789")
	require.NoError(t, err)

	// nil mailer == EMAIL_USER/EMAIL_PASS absent: the endpoint answers
	// with a visible missing-configuration error, not a crash.
	h := handler.NewReminderHandler(service.NewReminderService(db, nil, logger), logger)

	protected := auth.RequireUser(tokens)(http.HandlerFunc(h.HandleSendNow))

	req := withUsername(httptest.NewRequest(http.MethodPost, "/api/reminder", nil), tokens, "alice")
	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, "missing_configuration", errResp.Error)
}
