// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer for sessions, messages, and
location marks.

# Operations

All operations take a context and run against the handle created by db.Open,
wrapped as st := store.New(conn):

  - EnsureSession: insert-if-absent, race-safe, duplicate collapses to no-op
  - InsertMessage: append, returns row with assigned id and timestamp
  - UpsertLocation: replace-on-conflict keyed by (session_id, participant_id)
  - ListRecentMessages: most recent first, bounded
  - ListFreshLocations: only marks updated within maxAge of now
  - GetSession: metadata or ErrNotFound
  - RenameSession: zero-row update on a missing session is not an error
  - ReapExpired: transactional cascade delete of aged sessions and children

# Timestamps

created_at and updated_at are assigned by the store at write time, never by
the caller. The clock is UTC truncated to whole seconds so the stored text
is ordered identically on both database engines.

# Errors

Failures are wrapped in *Error carrying the operation name; unwrap with
errors.As. Every operation is bounded by a 5s timeout, and a deadline
expiry surfaces as an *Error like any other driver failure. GetSession on
an absent id returns ErrNotFound instead.
*/
package store
