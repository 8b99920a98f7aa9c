// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rallypoint/server/models"
)

// ErrNotFound reports that a requested session does not exist. It is the
// only store failure that is not an Error; callers decide whether absence
// is exceptional.
var ErrNotFound = errors.New("session not found")

// Error wraps any I/O, timeout, or constraint failure from the database.
// It is propagated to callers, never swallowed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "store: " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// opTimeout bounds every database call so no operation blocks indefinitely.
// Expiry surfaces as an Error like any other driver failure.
const opTimeout = 5 * time.Second

// Store is the persistence layer for sessions, messages, and locations.
// All timestamps are assigned here at write time, never by the caller.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// now returns the write clock. Whole seconds in UTC keep the timestamp
// text comparable across the sqlite and postgres engines.
func (s *Store) now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// EnsureSession inserts a session row if none exists with that id. A
// duplicate insert collapses to a no-op, so concurrent callers racing on
// the same new id both succeed and storage ends with exactly one row.
func (s *Store) EnsureSession(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, id, s.now())
	return wrap("ensure session", err)
}

// InsertMessage appends a chat message and returns the stored row with its
// assigned id and timestamp.
func (s *Store) InsertMessage(ctx context.Context, sessionID, senderID, senderName, content string) (models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	msg := models.Message{
		SessionID:  sessionID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		CreatedAt:  s.now(),
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (session_id, sender_id, sender_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, msg.SessionID, msg.SenderID, msg.SenderName, msg.Content, msg.CreatedAt).Scan(&msg.ID)
	if err != nil {
		return models.Message{}, wrap("insert message", err)
	}

	return msg, nil
}

// UpsertLocation replaces the location slot keyed by (session_id,
// participant_id). Two callers racing on the same pair both succeed; the
// store-assigned timestamp of the surviving row decides which write won.
func (s *Store) UpsertLocation(ctx context.Context, sessionID, participantID, participantName string, lat, lon float64) (models.LocationMark, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	mark := models.LocationMark{
		SessionID:       sessionID,
		ParticipantID:   participantID,
		ParticipantName: participantName,
		Latitude:        lat,
		Longitude:       lon,
		UpdatedAt:       s.now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (session_id, participant_id, participant_name, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, participant_id) DO UPDATE SET
			participant_name = excluded.participant_name,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			updated_at = excluded.updated_at
	`, mark.SessionID, mark.ParticipantID, mark.ParticipantName, mark.Latitude, mark.Longitude, mark.UpdatedAt)
	if err != nil {
		return models.LocationMark{}, wrap("upsert location", err)
	}

	return mark, nil
}

// ListRecentMessages returns up to limit messages for a session, most
// recent first. An unknown session yields an empty slice, not an error.
func (s *Store) ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, sender_id, sender_name, content, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, wrap("list messages", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.SenderID, &m.SenderName, &m.Content, &m.CreatedAt); err != nil {
			return nil, wrap("scan message", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list messages", err)
	}

	return messages, nil
}

// ListFreshLocations returns the marks whose updated_at falls within maxAge
// of now. Stale marks are filtered, not deleted; only the session reap
// removes rows.
func (s *Store) ListFreshLocations(ctx context.Context, sessionID string, maxAge time.Duration) ([]models.LocationMark, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cutoff := s.now().Add(-maxAge)

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, participant_id, participant_name, latitude, longitude, updated_at
		FROM locations
		WHERE session_id = $1 AND updated_at > $2
	`, sessionID, cutoff)
	if err != nil {
		return nil, wrap("list locations", err)
	}
	defer rows.Close()

	marks := []models.LocationMark{}
	for rows.Next() {
		var l models.LocationMark
		if err := rows.Scan(&l.SessionID, &l.ParticipantID, &l.ParticipantName, &l.Latitude, &l.Longitude, &l.UpdatedAt); err != nil {
			return nil, wrap("scan location", err)
		}
		marks = append(marks, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list locations", err)
	}

	return marks, nil
}

// GetSession returns session metadata, or ErrNotFound if absent.
func (s *Store) GetSession(ctx context.Context, id string) (models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var sess models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(name, ''), created_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(&sess.ID, &sess.Name, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, wrap("get session", err)
	}

	return sess, nil
}

// RenameSession updates the display name. A missing session updates zero
// rows and is not an error; callers must not use rename to probe existence.
func (s *Store) RenameSession(ctx context.Context, id, name string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET name = $1 WHERE id = $2
	`, name, id)
	return wrap("rename session", err)
}

// ReapExpired deletes every session whose created_at is older than maxAge,
// together with its messages and locations. The deletes run in one
// transaction: a session and its children disappear together or not at all.
func (s *Store) ReapExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cutoff := s.now().Add(-maxAge)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrap("reap expired", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM messages
		WHERE session_id IN (SELECT id FROM sessions WHERE created_at < $1)
	`, cutoff); err != nil {
		return 0, wrap("reap messages", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM locations
		WHERE session_id IN (SELECT id FROM sessions WHERE created_at < $1)
	`, cutoff); err != nil {
		return 0, wrap("reap locations", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM sessions WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, wrap("reap sessions", err)
	}

	reaped, err := res.RowsAffected()
	if err != nil {
		return 0, wrap("reap sessions", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, wrap("reap expired", err)
	}

	return reaped, nil
}
