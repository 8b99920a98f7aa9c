// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rallypoint/server/models"
	"github.com/rallypoint/server/store"
)

// Policy constants. Presence in a session is inferred purely from recency:
// a participant who stops pinging drops out of the view after
// FreshnessWindow without any explicit leave.
const (
	FreshnessWindow = 5 * time.Minute
	RetentionWindow = 24 * time.Hour
	MessageLimit    = 100
)

// ErrSessionNotFound reports a lookup of a session that does not exist.
// Only GetSession treats absence as an error; sessions are meant to be
// created by the first message, not by a bare lookup.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError reports a missing required field. The caller's fault;
// retrying the same request will not help.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string { return e.Field + " is required" }

// Engine wraps the store with the domain rules. It is the only component
// callers use; nothing above it touches the store directly.
type Engine struct {
	store *store.Store
}

func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st}
}

var whitespace = regexp.MustCompile(`\s+`)

// SlugID derives a session id from a human-chosen name: lowercase with
// runs of whitespace collapsed to a single dash. Deterministic, so two
// people typing the same meetup name land in the same session.
func SlugID(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// PostMessage validates, lazily materializes the session, appends the
// message, and, when a location is attached, opportunistically refreshes
// the sender's position mark. Validation runs before any write so a bad
// request leaves no partial rows.
func (e *Engine) PostMessage(ctx context.Context, sessionID string, sender models.Sender, content string, location *models.Coordinates) error {
	if sessionID == "" {
		return &ValidationError{Field: "sessionId"}
	}
	if sender.ID == "" {
		return &ValidationError{Field: "sender.id"}
	}
	if content == "" {
		return &ValidationError{Field: "message"}
	}

	if err := e.store.EnsureSession(ctx, sessionID); err != nil {
		return err
	}

	if _, err := e.store.InsertMessage(ctx, sessionID, sender.ID, sender.Name, content); err != nil {
		return err
	}

	if location != nil {
		if _, err := e.store.UpsertLocation(ctx, sessionID, sender.ID, sender.Name, location.Latitude, location.Longitude); err != nil {
			return err
		}
	}

	return nil
}

// GetView returns the composite snapshot a polling client renders: the
// most recent messages and the still-fresh locations. The two fetches are
// independent reads with no mutual invariant, so they run concurrently.
// An unknown session yields empty lists, not an error - a brand-new client
// may poll before anyone has posted.
func (e *Engine) GetView(ctx context.Context, sessionID string) (models.SessionViewResponse, error) {
	if sessionID == "" {
		return models.SessionViewResponse{}, &ValidationError{Field: "sessionId"}
	}

	var (
		wg        sync.WaitGroup
		messages  []models.Message
		locations []models.LocationMark
		msgErr    error
		locErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		messages, msgErr = e.store.ListRecentMessages(ctx, sessionID, MessageLimit)
	}()
	go func() {
		defer wg.Done()
		locations, locErr = e.store.ListFreshLocations(ctx, sessionID, FreshnessWindow)
	}()
	wg.Wait()

	if msgErr != nil {
		return models.SessionViewResponse{}, msgErr
	}
	if locErr != nil {
		return models.SessionViewResponse{}, locErr
	}

	return models.SessionViewResponse{Messages: messages, Locations: locations}, nil
}

// GetSession returns session metadata, or ErrSessionNotFound if absent.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	if sessionID == "" {
		return models.Session{}, &ValidationError{Field: "sessionId"}
	}

	sess, err := e.store.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}

	return sess, nil
}

// RenameSession updates a session's display name. Renaming a session that
// does not exist silently updates zero rows; callers must not rely on
// rename to validate existence.
func (e *Engine) RenameSession(ctx context.Context, sessionID, name string) error {
	if sessionID == "" {
		return &ValidationError{Field: "sessionId"}
	}

	return e.store.RenameSession(ctx, sessionID, name)
}

// ReapExpired deletes every session past the retention window along with
// its messages and locations, and reports how many sessions were removed.
func (e *Engine) ReapExpired(ctx context.Context) (int64, error) {
	return e.store.ReapExpired(ctx, RetentionWindow)
}
