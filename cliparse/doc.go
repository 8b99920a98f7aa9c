// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: SQLite file path or PostgreSQL connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - ReapInterval: cadence of the expired-session purge (default: 1h)

# CLI Flags

	-p             Server port
	-d             Database URL or file path
	-t             Database type
	--reap-interval Purge cadence

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	REAP_INTERVAL → --reap-interval

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if values are invalid:

  - DATABASE_TYPE must be sqlite or postgres
  - DATABASE_URL must be provided for postgres (sqlite defaults to rallypoint.db)
  - REAP_INTERVAL must parse as a positive duration

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg)
	// ...
	mux := router.NewRouter(engine)
*/
package cliparse
