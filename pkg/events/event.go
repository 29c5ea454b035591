package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the contract every published system event satisfies.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// ChatTurnCompletedType is emitted after every successfully processed turn.
const ChatTurnCompletedType = "CHAT_TURN_COMPLETED"

// ChatTurnCompleted carries the per-turn analytics payload.
type ChatTurnCompleted struct {
	UserID         uuid.UUID
	SessionID      uuid.UUID
	IntentCategory string
	Stage          string
	OccurredAt     time.Time
}

func (e ChatTurnCompleted) EventType() string {
	return ChatTurnCompletedType
}

func (e ChatTurnCompleted) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":         e.UserID.String(),
		"session_id":      e.SessionID.String(),
		"intent_category": e.IntentCategory,
		"stage":           e.Stage,
	}
}

func (e ChatTurnCompleted) Timestamp() time.Time {
	return e.OccurredAt
}
