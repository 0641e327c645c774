package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/skillgap/internal/auth"
	"github.com/sakif/skillgap/internal/service"
)

// ReminderHandler serves the two reminder paths. Both respond 200 with the
// explicit send result — a failed delivery is a result, not an HTTP error:
//
//	{"sent": true}
//	{"sent": false, "reason": "already sent today"}
//
// Only the disabled-notifier and unknown-user states become error statuses.
type ReminderHandler struct {
	svc    *service.ReminderService
	logger *slog.Logger
}

func NewReminderHandler(svc *service.ReminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, logger: logger}
}

// HandleSendNow is the manual "send now" action — no daily gating.
//
// HTTP: POST /api/reminder (requires session)
func (h *ReminderHandler) HandleSendNow(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "login required",
		})
		return
	}

	result, err := h.svc.SendNow(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleSendDaily is the automated path: at most one delivery per user per
// calendar day. Meant to be hit by an external scheduler or the client on
// login — the server itself runs no timers.
//
// HTTP: POST /api/reminder/daily (requires session)
func (h *ReminderHandler) HandleSendDaily(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "login required",
		})
		return
	}

	result, err := h.svc.SendDaily(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
