package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/skillgap/internal/auth"
	"github.com/sakif/skillgap/internal/quiz"
	"github.com/sakif/skillgap/internal/service"
)

// goalParam extracts the {goal} path segment. Goal names contain spaces
// ("Data Scientist"), so the raw parameter arrives percent-encoded and must
// be unescaped before the catalog lookup.
func goalParam(r *http.Request) string {
	raw := chi.URLParam(r, "goal")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// AssessmentHandler serves the career catalog, the quiz, and the progress
// dashboard.
type AssessmentHandler struct {
	svc    *service.AssessmentService
	logger *slog.Logger
}

func NewAssessmentHandler(svc *service.AssessmentService, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{svc: svc, logger: logger}
}

// HandleGoals lists the career goals and their skills.
//
// HTTP: GET /api/goals (public)
func (h *AssessmentHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quiz.Goals)
}

// HandleQuiz returns the quiz for one goal: the flattened question list in
// presenting order. Answers are not included — grading is server-side, so
// the correct options never go over the wire.
//
// HTTP: GET /api/quiz/{goal} (public)
func (h *AssessmentHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	goalName := goalParam(r)

	goal, ok := quiz.GoalByName(goalName)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "unknown career goal: " + goalName,
		})
		return
	}

	writeJSON(w, http.StatusOK, quiz.QuestionsFor(goal))
}

type submitRequest struct {
	// Answers are selected option texts in the order the quiz presented
	// the questions.
	Answers []string `json:"answers"`
}

// HandleSubmit grades a submission, records progress, updates the streak.
//
// HTTP: POST /api/quiz/{goal} (requires session)
// Response: score, gaps, study plan, and the counters after the update.
func (h *AssessmentHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "login required",
		})
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	result, err := h.svc.Submit(r.Context(), username, goalParam(r), req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleProgress returns the dashboard data: attempt history oldest-first
// plus the current streak counters.
//
// HTTP: GET /api/progress (requires session)
func (h *AssessmentHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "login required",
		})
		return
	}

	dashboard, err := h.svc.Progress(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
