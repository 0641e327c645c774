package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/skillgap/internal/service"
)

// LeaderboardHandler serves the ranked user table.
type LeaderboardHandler struct {
	svc    *service.LeaderboardService
	logger *slog.Logger
}

func NewLeaderboardHandler(svc *service.LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc, logger: logger}
}

// HandleLeaderboard returns all users ranked by streak.
//
// HTTP: GET /api/leaderboard (public)
// Zero users yields [] with 200, never an error.
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Standings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
