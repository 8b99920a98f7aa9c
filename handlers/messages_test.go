// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rallypoint/server/models"
	"github.com/rallypoint/server/session"
	"github.com/rallypoint/server/store"
	"github.com/rallypoint/server/testutil"
)

func newTestEngine(t *testing.T) (*session.Engine, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return session.NewEngine(store.New(conn)), conn
}

func TestCreateMessage(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid message",
			requestBody: models.PostMessageRequest{
				SessionID: "coffee-run",
				Message:   "on my way",
				Sender:    models.Sender{ID: "u1", Name: "Ana"},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "valid message with location",
			requestBody: models.PostMessageRequest{
				SessionID: "coffee-run",
				Message:   "here",
				Location:  &models.Coordinates{Latitude: 40.7, Longitude: -74.0},
				Sender:    models.Sender{ID: "u1", Name: "Ana"},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing sender id",
			requestBody: models.PostMessageRequest{
				SessionID: "coffee-run",
				Message:   "anonymous",
				Sender:    models.Sender{Name: "Ana"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing session id",
			requestBody: models.PostMessageRequest{
				Message: "lost",
				Sender:  models.Sender{ID: "u1", Name: "Ana"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing message",
			requestBody: models.PostMessageRequest{
				SessionID: "coffee-run",
				Sender:    models.Sender{ID: "u1", Name: "Ana"},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, conn := newTestEngine(t)
			handler := NewMessageHandler(engine)

			req := testutil.MakeRequest("POST", "/api/messages", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateMessage(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.SuccessResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.Success {
					t.Error("Expected success:true")
				}
				if n := testutil.CountRows(t, conn, "messages"); n != 1 {
					t.Errorf("Expected 1 message row, got %d", n)
				}
			} else {
				// A rejected request must leave no partial rows
				if n := testutil.CountRows(t, conn, "messages"); n != 0 {
					t.Errorf("Rejected request wrote %d message rows", n)
				}
				if n := testutil.CountRows(t, conn, "locations"); n != 0 {
					t.Errorf("Rejected request wrote %d location rows", n)
				}
			}
		})
	}
}

func TestCreateMessage_InvalidJSON(t *testing.T) {
	engine, _ := newTestEngine(t)
	handler := NewMessageHandler(engine)

	req := testutil.MakeRequest("POST", "/api/messages", nil, nil)
	w := httptest.NewRecorder()

	handler.CreateMessage(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestCreateMessage_StoreFailure(t *testing.T) {
	engine, conn := newTestEngine(t)
	handler := NewMessageHandler(engine)
	conn.Close()

	req := testutil.MakeRequest("POST", "/api/messages", models.PostMessageRequest{
		SessionID: "coffee-run",
		Message:   "hello?",
		Sender:    models.Sender{ID: "u1", Name: "Ana"},
	}, nil)
	w := httptest.NewRecorder()

	handler.CreateMessage(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Failed to process message" {
		t.Errorf("Internal failures must not leak diagnostics, got %q", resp.Message)
	}
}

func TestGetView(t *testing.T) {
	engine, conn := newTestEngine(t)
	handler := NewMessageHandler(engine)

	now := time.Now().UTC()
	testutil.CreateTestSession(t, conn, "picnic", now)
	testutil.InsertTestMessage(t, conn, "picnic", "u1", "Ana", "bringing snacks", now.Add(-2*time.Minute))
	testutil.InsertTestMessage(t, conn, "picnic", "u2", "Ben", "omw", now.Add(-time.Minute))
	testutil.InsertTestLocation(t, conn, "picnic", "u2", "Ben", 40.78, -73.96, now.Add(-time.Minute))
	testutil.InsertTestLocation(t, conn, "picnic", "u3", "Cam", 40.79, -73.97, now.Add(-20*time.Minute))

	req := testutil.MakeRequest("GET", "/api/messages?sessionId=picnic", nil, nil)
	w := httptest.NewRecorder()

	handler.GetView(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.SessionViewResponse
	testutil.AssertJSON(t, w, &view)

	if len(view.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(view.Messages))
	}
	if view.Messages[0].Content != "omw" {
		t.Errorf("Expected newest message first, got %q", view.Messages[0].Content)
	}
	if len(view.Locations) != 1 {
		t.Fatalf("Expected only the fresh location, got %d", len(view.Locations))
	}
	if view.Locations[0].ParticipantID != "u2" {
		t.Errorf("Expected u2's mark, got %s", view.Locations[0].ParticipantID)
	}
}

func TestGetView_MissingSessionID(t *testing.T) {
	engine, _ := newTestEngine(t)
	handler := NewMessageHandler(engine)

	req := testutil.MakeRequest("GET", "/api/messages", nil, nil)
	w := httptest.NewRecorder()

	handler.GetView(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetView_UnknownSessionIsEmpty(t *testing.T) {
	engine, _ := newTestEngine(t)
	handler := NewMessageHandler(engine)

	req := testutil.MakeRequest("GET", "/api/messages?sessionId=nonexistent", nil, nil)
	w := httptest.NewRecorder()

	handler.GetView(w, req)

	// A brand-new client may poll before anyone has posted
	testutil.AssertStatus(t, w, http.StatusOK)

	// Slices must serialize as [] rather than null for the polling clients
	body := strings.TrimSpace(w.Body.String())
	if body != `{"messages":[],"locations":[]}` {
		t.Errorf("Expected empty view, got %s", body)
	}
}
