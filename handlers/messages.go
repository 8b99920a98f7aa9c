// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/rallypoint/server/middleware"
	"github.com/rallypoint/server/models"
	"github.com/rallypoint/server/session"
)

type MessageHandler struct {
	engine *session.Engine
}

func NewMessageHandler(engine *session.Engine) *MessageHandler {
	return &MessageHandler{engine: engine}
}

// CreateMessage handles POST /api/messages
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.engine.PostMessage(r.Context(), req.SessionID, req.Sender, req.Message, req.Location)
	if err != nil {
		writeEngineError(w, err, "Failed to process message")
		return
	}

	slog.Info("message posted",
		"session_id", req.SessionID,
		"sender_id", req.Sender.ID,
		"with_location", req.Location != nil,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// GetView handles GET /api/messages
// Returns the full snapshot a polling client renders: recent messages and
// fresh locations.
func (h *MessageHandler) GetView(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")

	view, err := h.engine.GetView(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, err, "Failed to fetch data")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}
