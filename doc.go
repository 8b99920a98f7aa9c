// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Rally Point API server.

Rally Point is an ephemeral meetup-coordination backend: ad-hoc groups join
a named short-lived session, exchange chat messages, and broadcast live
positions that polling clients render on a map. There are no accounts;
identity is an opaque id each client invents for itself, and every session
self-expires 24 hours after creation.

# Starting the Server

	go run . -p 3000

By default the server stores everything in a local SQLite file
(rallypoint.db). Point it at PostgreSQL instead with:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

Optional settings (flags or environment):

  - PORT (-p): listen port (default: 3000)
  - DATABASE_URL (-d): SQLite path or Postgres connection string
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - REAP_INTERVAL (--reap-interval): expired-session purge cadence (default: 1h)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a layered architecture with dependency injection:

  - store: persistence operations over sessions, messages, locations
  - session: the engine owning domain rules (freshness, retention,
    validation, the composite polling view)
  - handlers: HTTP request handlers (messages, sessions)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
