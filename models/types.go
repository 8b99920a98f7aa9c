package models

import "time"

// Domain types

type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// LocationMark is a single slot per (session, participant) pair, not an
// append log. A new ping overwrites the previous mark.
type LocationMark struct {
	SessionID       string    `json:"session_id"`
	ParticipantID   string    `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Sender is the ephemeral identity a caller supplies with every write.
// The server performs no identity verification.
type Sender struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Request types

type PostMessageRequest struct {
	SessionID string       `json:"sessionId"`
	Message   string       `json:"message"`
	Location  *Coordinates `json:"location,omitempty"`
	Sender    Sender       `json:"sender"`
}

type RenameSessionRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type SessionViewResponse struct {
	Messages  []Message      `json:"messages"`
	Locations []LocationMark `json:"locations"`
}

type SessionResponse struct {
	Session Session `json:"session"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
