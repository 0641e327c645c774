package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillgap/internal/auth"
	"github.com/sakif/skillgap/internal/handler"
	"github.com/sakif/skillgap/internal/model"
	"github.com/sakif/skillgap/internal/notifier"
	"github.com/sakif/skillgap/internal/repository/sqlite"
	"github.com/sakif/skillgap/internal/service"
	"github.com/sakif/skillgap/internal/streak"
)

// recordingMailer always reports success and counts deliveries.
type recordingMailer struct {
	sends int
}

func (m *recordingMailer) Send(_ context.Context, _, _, _ string) notifier.Result {
	m.sends++
	return notifier.Result{Sent: true}
}

// testAPI is a fully wired router over an in-memory database, mirroring
// the production route map. Handler tests drive it end to end through
// httptest, cookies included.
type testAPI struct {
	router *chi.Mux
	mailer *recordingMailer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService("handler-test-secret-0123456789")
	require.NoError(t, err)

	mailer := &recordingMailer{}

	authHandler := handler.NewAuthHandler(service.NewAuthService(db, logger), tokens, logger)
	assessmentHandler := handler.NewAssessmentHandler(
		service.NewAssessmentService(db, db, streak.PolicyCumulative, logger), logger)
	leaderboardHandler := handler.NewLeaderboardHandler(service.NewLeaderboardService(db, logger), logger)
	reminderHandler := handler.NewReminderHandler(service.NewReminderService(db, mailer, logger), logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/goals", assessmentHandler.HandleGoals)
		r.Get("/quiz/{goal}", assessmentHandler.HandleQuiz)
		r.Get("/leaderboard", leaderboardHandler.HandleLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Post("/quiz/{goal}", assessmentHandler.HandleSubmit)
			r.Get("/progress", assessmentHandler.HandleProgress)
			r.Post("/reminder", reminderHandler.HandleSendNow)
			r.Post("/reminder/daily", reminderHandler.HandleSendDaily)
		})
	})

	return &testAPI{router: r, mailer: mailer}
}

// do runs one request through the router. cookie may be nil for anonymous
// requests.
func (a *testAPI) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// registerAndLogin creates a user and returns their session cookie.
func registerAndLogin(t *testing.T, a *testAPI, username string) *http.Cookie {
	t.Helper()

	rr := a.do(http.MethodPost, "/api/register",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = a.do(http.MethodPost, "/api/login",
		`{"username":"`+username+`","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestRegisterLoginFlow(t *testing.T) {
	api := newTestAPI(t)

	cookie := registerAndLogin(t, api, "alice")

	rr := api.do(http.MethodGet, "/api/me", "", cookie)
	assert.Equal(t, http.StatusOK, rr.Code)

	var me model.User
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&me))
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, 0, me.Streak)
}

func TestRegister_Duplicate(t *testing.T) {
	api := newTestAPI(t)

	body := `{"username":"alice","email":"alice@example.com","password":"pw"}`
	rr := api.do(http.MethodPost, "/api/register", body, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = api.do(http.MethodPost, "/api/register", body, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, "already_exists", errResp.Error)
}

func TestLogin_WrongPassword(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api, "alice")

	rr := api.do(http.MethodPost, "/api/login", `{"username":"alice","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
	assert.Equal(t, "invalid_credentials", errResp.Error)
}

func TestProtectedRoutes_RequireSession(t *testing.T) {
	api := newTestAPI(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodPost, "/api/quiz/Data%20Scientist"},
		{http.MethodGet, "/api/progress"},
		{http.MethodPost, "/api/reminder"},
		{http.MethodPost, "/api/reminder/daily"},
	} {
		rr := api.do(route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func TestQuiz_QuestionsDoNotLeakAnswers(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(http.MethodGet, "/api/quiz/Data%20Scientist", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// The correct option must never appear as a field in the payload.
	assert.NotContains(t, rr.Body.String(), `"answer"`)
	assert.Contains(t, rr.Body.String(), "len([1,2,3]) ?")
}

func TestQuizSubmitFlow(t *testing.T) {
	api := newTestAPI(t)
	cookie := registerAndLogin(t, api, "alice")

	// 4 of 5 correct → 80, above the bar.
	rr := api.do(http.MethodPost, "/api/quiz/Data%20Scientist",
		`{"answers":["3","def","[]","rows","IF"]}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result service.SubmissionResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.Equal(t, 80, result.Percent)
	assert.Empty(t, result.Gaps)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 1, result.TotalDays)

	// The attempt shows up on the dashboard.
	rr = api.do(http.MethodGet, "/api/progress", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var dashboard service.Dashboard
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dashboard))
	require.Len(t, dashboard.Entries, 1)
	assert.Equal(t, 80, dashboard.Entries[0].Score)
	assert.Equal(t, 1, dashboard.Streak)
}

func TestQuizSubmit_UnknownGoal(t *testing.T) {
	api := newTestAPI(t)
	cookie := registerAndLogin(t, api, "alice")

	rr := api.do(http.MethodPost, "/api/quiz/Astronaut", `{"answers":[]}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLeaderboard(t *testing.T) {
	api := newTestAPI(t)

	// Empty board first: 200 with [].
	rr := api.do(http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	cookie := registerAndLogin(t, api, "alice")
	registerAndLogin(t, api, "bob")

	// alice submits once; bob never does.
	api.do(http.MethodPost, "/api/quiz/Data%20Scientist",
		`{"answers":["3","def","[]","rows","WHERE"]}`, cookie)

	rr = api.do(http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []model.LeaderboardEntry
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.NotEmpty(t, entries[0].Medal)
	assert.Equal(t, "bob", entries[1].Username)
}

func TestReminder_DailyGateOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	cookie := registerAndLogin(t, api, "alice")

	rr := api.do(http.MethodPost, "/api/reminder/daily", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var first notifier.Result
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&first))
	assert.True(t, first.Sent)

	rr = api.do(http.MethodPost, "/api/reminder/daily", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var second notifier.Result
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&second))
	assert.False(t, second.Sent)
	assert.Equal(t, "already sent today", second.Reason)

	assert.Equal(t, 1, api.mailer.sends)

	// The manual path still goes through.
	rr = api.do(http.MethodPost, "/api/reminder", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, api.mailer.sends)
}
