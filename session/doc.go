// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session is the ephemeral session engine: the one component that
owns the domain rules for meetup coordination.

# Operations

The engine is built over a store, as engine := session.NewEngine(st), and
exposes:

  - PostMessage: validate, ensure session, append message, optionally
    refresh the sender's location mark
  - GetView: composite snapshot of recent messages and fresh locations,
    fetched concurrently; the single call polling clients repeat
  - GetSession: metadata lookup, hard error on absence
  - RenameSession: display-name update, silent no-op on a missing session
  - ReapExpired: purge sessions older than the retention window with all
    their children
  - SlugID: derive a session id from a human-chosen name

# Policy

	FreshnessWindow = 5 * time.Minute
	RetentionWindow = 24 * time.Hour
	MessageLimit    = 100

A location mark older than FreshnessWindow disappears from the view
without being deleted; recency is the only membership model. RetentionWindow
is measured against the session's created_at.

# Errors

Three kinds reach callers, and a store failure is never downgraded to a
success:

  - *ValidationError: a required field is missing (map to 400)
  - ErrSessionNotFound: GetSession on an absent id (map to 404)
  - *store.Error: persistence failure, not retried here (map to 500)

Caller retries are safe: EnsureSession and UpsertLocation are idempotent,
and a duplicated message on client retry is an accepted risk.
*/
package session
