package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/rallypoint/server/cliparse"
	"github.com/rallypoint/server/db"
	"github.com/rallypoint/server/middleware"
	"github.com/rallypoint/server/router"
	"github.com/rallypoint/server/session"
	"github.com/rallypoint/server/store"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	conn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Verify connection
	if err := conn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	engine := session.NewEngine(store.New(conn))

	// Retention sweep runs before the first request is served, then on a
	// recurring cadence. Best-effort: a failed sweep never blocks startup.
	reap(engine)
	go func() {
		ticker := time.NewTicker(cfg.ReapInterval)
		defer ticker.Stop()
		for range ticker.C {
			reap(engine)
		}
	}()

	// Create router
	mux := router.NewRouter(engine)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// reap purges sessions past the retention window. Failures are logged for
// diagnosis but otherwise swallowed; cleanup must not take the server down.
func reap(engine *session.Engine) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reaped, err := engine.ReapExpired(ctx)
	if err != nil {
		slog.Warn("session reap failed", "error", err)
		return
	}
	if reaped > 0 {
		slog.Info("reaped expired sessions",
			"count", reaped,
			"created_before", humanize.Time(time.Now().Add(-session.RetentionWindow)),
		)
	}
}
