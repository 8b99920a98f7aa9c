// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rallypoint/server/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own named shared-cache database so parallel
// tests never see each other's rows. The same _time_format option as
// production keeps timestamp comparisons consistent.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_time_format=sqlite&_pragma=busy_timeout(5000)", uuid.NewString())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// One connection serializes writers, so concurrent tests never trip
	// over shared-cache table locks.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// RandomID returns a unique id for test sessions and participants.
func RandomID() string {
	return uuid.NewString()
}

// CreateTestSession inserts a session row with an explicit creation time,
// bypassing the store so tests can age sessions arbitrarily.
func CreateTestSession(t *testing.T, conn *sql.DB, id string, createdAt time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO sessions (id, created_at) VALUES ($1, $2)
	`, id, createdAt.UTC().Truncate(time.Second))
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
}

// InsertTestMessage inserts a message row with an explicit timestamp and
// returns its assigned id.
func InsertTestMessage(t *testing.T, conn *sql.DB, sessionID, senderID, senderName, content string, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO messages (session_id, sender_id, sender_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, sessionID, senderID, senderName, content, createdAt.UTC().Truncate(time.Second)).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to insert test message: %v", err)
	}

	return id
}

// InsertTestLocation inserts or replaces a location mark with an explicit
// update time, letting tests place marks on either side of the freshness
// window.
func InsertTestLocation(t *testing.T, conn *sql.DB, sessionID, participantID, participantName string, lat, lon float64, updatedAt time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO locations (session_id, participant_id, participant_name, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, participant_id) DO UPDATE SET
			participant_name = excluded.participant_name,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			updated_at = excluded.updated_at
	`, sessionID, participantID, participantName, lat, lon, updatedAt.UTC().Truncate(time.Second))
	if err != nil {
		t.Fatalf("Failed to insert test location: %v", err)
	}
}

// CountRows returns the number of rows in a table, for verifying that
// failed writes left nothing behind.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
