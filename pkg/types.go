package pkg

import (
	"time"

	"github.com/google/uuid"
)

// MessageType classifies what kind of consultation produced a turn.
type MessageType string

const (
	TypeMedicalQuery    MessageType = "medical_query"
	TypeSymptomAnalysis MessageType = "symptom_analysis"
	TypeRecommendations MessageType = "health_recommendations"
	TypeMedicationInfo  MessageType = "medication_info"
	TypeFirstAid        MessageType = "first_aid"
)

// Turn is one persisted (message, response) pair belonging to a session.
// Turns are immutable once written and are only ever deleted in bulk when
// a session's history is cleared.  A turn always carries a non-empty
// message and some response; when generation failed the response holds the
// fixed fallback text, so partial turns never exist.
type Turn struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Message   string      `json:"message"`
	Response  string      `json:"response"`
	Type      MessageType `json:"message_type"`
	Timestamp time.Time   `json:"timestamp"`
}

// Session is the explicit per-client conversation context.  The identifier
// is client-generated and unauthenticated; it exists only as a foreign key
// on stored turns.  The presentation layer owns the lifecycle: it creates
// a session on first contact and resets it when the user asks for a fresh
// one.
type Session struct {
	ID      string         `json:"id"`
	Profile map[string]any `json:"health_profile,omitempty"`
}

// NewSession returns a session with a fresh identifier and an empty
// health profile.
func NewSession() *Session {
	return &Session{ID: uuid.NewString(), Profile: map[string]any{}}
}

// Reset gives the session a new identifier.  Previously stored turns stay
// in the database under the old identifier but are no longer replayed.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
}

// ChatRequest is the body of a message post from the patient UI.
type ChatRequest struct {
	Content string `json:"content"`
}

// ChatResponse carries the assistant reply back to the UI.  Emergency is a
// passive flag: it reports that the message matched an emergency keyword
// but no routing or escalation happens on it.
type ChatResponse struct {
	Reply     string    `json:"reply"`
	Emergency bool      `json:"emergency"`
	Timestamp time.Time `json:"timestamp"`
}
