// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open selects the driver from configuration:

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

Supported engines are SQLite (modernc.org/sqlite, the default, a pure-Go
file database) and PostgreSQL (lib/pq). Queries elsewhere in the server use
$N placeholders in occurrence order, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - sessions: named coordination contexts, created_at drives retention
  - messages: append-only chat rows per session
  - locations: one live position per (session_id, participant_id)

# Relationships

	sessions 1──* messages
	sessions 1──* locations

The retention sweep deletes a session and its children inside one
transaction, so orphaned child rows are never readable.

# Indexes

Performance indexes on:

  - sessions.created_at (retention sweep)
  - messages.(session_id, created_at) (recent-message window)
  - locations.(session_id, updated_at) (freshness filter)
*/
package db
