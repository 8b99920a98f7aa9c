// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Rally Point API.

# Handler Types

Each handler is a struct wrapping the session engine:

  - MessageHandler: message posting and the polling view
  - SessionHandler: session metadata lookup and rename

Handlers are created via constructor functions that accept *session.Engine:

	messageHandler := handlers.NewMessageHandler(engine)

# Message Flow

	POST /api/messages → CreateMessage ({success:true})
	GET  /api/messages?sessionId= → GetView ({messages, locations})

A message post lazily creates its session and, when a location is attached,
refreshes the sender's position mark. The view is a replace-in-place
snapshot, not a delta: clients re-render from it on every poll.

# Session Flow

	GET /api/sessions?sessionId= → GetSession ({session})
	PUT /api/sessions             → RenameSession ({success:true})

# Error Mapping

Engine errors map to statuses via writeEngineError:

	*session.ValidationError   → 400
	session.ErrSessionNotFound → 404
	anything else              → 500 (logged, generic message)
*/
package handlers
