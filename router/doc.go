// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Rally Point API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(engine)

# Endpoints

Health:

	GET /health

Messages:

	POST /api/messages - Post a chat message (lazily creates the session,
	                     optionally refreshes the sender's location)
	GET  /api/messages - Polling snapshot: recent messages + fresh locations
	                     (query: sessionId)

Sessions:

	GET /api/sessions - Session metadata (query: sessionId)
	PUT /api/sessions - Rename a session

# Handler Initialization

The router creates handler instances with dependency injection:

	messageHandler := handlers.NewMessageHandler(engine)
	sessionHandler := handlers.NewSessionHandler(engine)

All handlers receive the session engine; nothing reaches the database
directly from the HTTP layer.
*/
package router
