// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - PostMessageRequest: sessionId, message, location (optional), sender
  - RenameSessionRequest: sessionId, name

# Response Types

Types for JSON responses:

  - SuccessResponse: success
  - SessionViewResponse: messages, locations
  - SessionResponse: session
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Session: named coordination context, retention clock in created_at
  - Message: chat message, append-only, ordered by created_at
  - LocationMark: one live position slot per (session, participant)
  - Sender: caller-supplied ephemeral identity (id + name)
  - Coordinates: resolved latitude/longitude pair

Field names on the wire are snake_case for stored rows (sender_id,
created_at, ...) and camelCase for request envelopes (sessionId), matching
the polling clients.
*/
package models
