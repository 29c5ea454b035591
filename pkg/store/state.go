package store

import (
	"context"

	"github.com/google/uuid"
)

// MemoryLimit is the maximum number of exchanges kept per session.
const MemoryLimit = 6

// Conversation stages. Transitions only move forward within a session.
const (
	StageGreeting         = "greeting"
	StageExploring        = "exploring"
	StageDeepConversation = "deep_conversation"
)

// Depth preferences
const (
	DepthBrief    = "brief"
	DepthMedium   = "medium"
	DepthDetailed = "detailed"
)

// Exchange is one user/assistant turn kept in session memory.
type Exchange struct {
	UserText      string `json:"user_text"`
	AssistantText string `json:"assistant_text"`
	TimestampMs   int64  `json:"timestamp_ms"`
}

// Context holds the rolling conversational context for a session.
type Context struct {
	Topic             string   `json:"topic"`
	LastIntent        string   `json:"last_intent"`
	DepthPreference   string   `json:"depth_preference"`
	MentionedEntities []string `json:"mentioned_entities"`
	Stage             string   `json:"stage"`
	TurnCount         int      `json:"turn_count"`
}

// ConversationState is the per-(user, session) state persisted across turns.
type ConversationState struct {
	UserID    uuid.UUID  `json:"user_id"`
	SessionID uuid.UUID  `json:"session_id"`
	Context   Context    `json:"context"`
	Memory    []Exchange `json:"memory"`
}

// NewConversationState returns the default state for a fresh session.
func NewConversationState(userID, sessionID uuid.UUID) *ConversationState {
	return &ConversationState{
		UserID:    userID,
		SessionID: sessionID,
		Context: Context{
			DepthPreference:   DepthMedium,
			Stage:             StageGreeting,
			MentionedEntities: []string{},
		},
		Memory: []Exchange{},
	}
}

// AppendExchange pushes a completed exchange into memory, evicting the
// oldest entry once MemoryLimit is reached.
func (s *ConversationState) AppendExchange(ex Exchange) {
	s.Memory = append(s.Memory, ex)
	if len(s.Memory) > MemoryLimit {
		s.Memory = s.Memory[len(s.Memory)-MemoryLimit:]
	}
}

// AddMentionedEntities merges entities preserving insertion order and
// uniqueness (case-sensitive, first spelling wins).
func (s *ConversationState) AddMentionedEntities(entities []string) {
	for _, e := range entities {
		if e == "" {
			continue
		}
		exists := false
		for _, known := range s.Context.MentionedEntities {
			if known == e {
				exists = true
				break
			}
		}
		if !exists {
			s.Context.MentionedEntities = append(s.Context.MentionedEntities, e)
		}
	}
}

// AdvanceStage moves the stage forward. Backward transitions are ignored.
func (s *ConversationState) AdvanceStage(stage string) {
	if stageRank(stage) > stageRank(s.Context.Stage) {
		s.Context.Stage = stage
	}
}

func stageRank(stage string) int {
	switch stage {
	case StageGreeting:
		return 0
	case StageExploring:
		return 1
	case StageDeepConversation:
		return 2
	default:
		return -1
	}
}

// LastUserTexts returns up to n most recent user utterances, newest last.
func (s *ConversationState) LastUserTexts(n int) []string {
	start := len(s.Memory) - n
	if start < 0 {
		start = 0
	}
	texts := make([]string, 0, n)
	for _, ex := range s.Memory[start:] {
		texts = append(texts, ex.UserText)
	}
	return texts
}

// StateStore is the external key-value collaborator holding conversation
// state. Load never fails the caller: implementations return a fresh
// default state when nothing is stored or the backend is unreachable.
// Save is best-effort; a returned error is logged by the caller, never
// propagated to the user.
type StateStore interface {
	Load(ctx context.Context, userID, sessionID uuid.UUID) *ConversationState
	Save(ctx context.Context, state *ConversationState) error
}
