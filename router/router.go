// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/rallypoint/server/handlers"
	"github.com/rallypoint/server/middleware"
	"github.com/rallypoint/server/session"
)

func NewRouter(engine *session.Engine) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	messageHandler := handlers.NewMessageHandler(engine)
	sessionHandler := handlers.NewSessionHandler(engine)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Messages: post chat (optionally refreshing the sender's location) and
	// fetch the polling snapshot
	mux.HandleFunc("POST /api/messages", middleware.WithLogging(messageHandler.CreateMessage))
	mux.HandleFunc("GET /api/messages", middleware.WithLogging(messageHandler.GetView))

	// Sessions: metadata lookup and rename
	mux.HandleFunc("GET /api/sessions", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("PUT /api/sessions", middleware.WithLogging(sessionHandler.RenameSession))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rallypoint API v1"))
	})

	return mux
}
