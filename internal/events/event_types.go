package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/kirinho/cloud-file/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventUserDisabled   EventType = "user_disabled"
)

// Event represents an audit event emitted by the HTTP layer.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, subjectID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload carries the failure kind of a rejected login. The
// submitted secret is never part of any event.
type LoginFailedPayload struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

// UserRegisteredPayload carries registration metadata.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
