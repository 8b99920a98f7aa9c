// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rallypoint/server/middleware"
	"github.com/rallypoint/server/models"
	"github.com/rallypoint/server/session"
)

type SessionHandler struct {
	engine *session.Engine
}

func NewSessionHandler(engine *session.Engine) *SessionHandler {
	return &SessionHandler{engine: engine}
}

// GetSession handles GET /api/sessions
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")

	sess, err := h.engine.GetSession(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, err, "Failed to fetch session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Session: sess})
}

// RenameSession handles PUT /api/sessions
func (h *SessionHandler) RenameSession(w http.ResponseWriter, r *http.Request) {
	var req models.RenameSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.engine.RenameSession(r.Context(), req.SessionID, req.Name); err != nil {
		writeEngineError(w, err, "Failed to update session")
		return
	}

	slog.Info("session renamed", "session_id", req.SessionID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses:
// validation failures are the caller's fault, a missing session is 404
// where existence is required, and everything else is an internal failure
// reported without leaking diagnostics.
func writeEngineError(w http.ResponseWriter, err error, internalMsg string) {
	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	default:
		slog.Error("engine operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, internalMsg)
	}
}
