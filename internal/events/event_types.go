package events

import (
	"time"

	"github.com/spec-kit/items-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventLoginFailed    EventType = "login_failed"
	EventItemCreated    EventType = "item_created"
	EventItemDeleted    EventType = "item_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// LoginFailedPayload payload. It deliberately carries no failure reason.
type LoginFailedPayload struct {
	Email string `json:"email"`
}

// ItemPayload payload for item lifecycle events.
type ItemPayload struct {
	ItemID string `json:"item_id"`
	Title  string `json:"title,omitempty"`
}
