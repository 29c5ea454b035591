package dto

import (
	"github.com/google/uuid"
)

// TurnCompletedMessage is the internal pubsub payload emitted after every
// processed chat turn.
type TurnCompletedMessage struct {
	ChatSessionId  uuid.UUID `json:"chat_session_id"`
	UserId         uuid.UUID `json:"user_id"`
	UserText       string    `json:"user_text"`
	IntentCategory string    `json:"intent_category"`
	Stage          string    `json:"stage"`
}
