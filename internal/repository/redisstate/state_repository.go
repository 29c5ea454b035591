package redisstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-advisor-be/internal/pkg/logger"
	"ai-advisor-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StateRepository persists conversation state as JSON in Redis so multiple
// orchestrator instances can share it. No locking is performed: concurrent
// writers for the same session are last-write-wins.
type StateRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.ILogger
}

func NewStateRepository(client *redis.Client, ttl time.Duration, log logger.ILogger) *StateRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &StateRepository{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func stateKey(userID, sessionID uuid.UUID) string {
	return fmt.Sprintf("conv_state:%s:%s", userID, sessionID)
}

// Load returns the stored state, or a fresh default when the key is absent
// or Redis is unreachable. It never fails the caller.
func (r *StateRepository) Load(ctx context.Context, userID, sessionID uuid.UUID) *store.ConversationState {
	raw, err := r.client.Get(ctx, stateKey(userID, sessionID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("state", "state load failed, serving default", map[string]interface{}{
				"error": err.Error(), "session_id": sessionID.String(),
			})
		}
		return store.NewConversationState(userID, sessionID)
	}

	var state store.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		r.log.Warn("state", "corrupt state payload, serving default", map[string]interface{}{
			"error": err.Error(), "session_id": sessionID.String(),
		})
		return store.NewConversationState(userID, sessionID)
	}
	return &state
}

func (r *StateRepository) Save(ctx context.Context, state *store.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal conversation state: %w", err)
	}
	if err := r.client.Set(ctx, stateKey(state.UserID, state.SessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save conversation state: %w", err)
	}
	return nil
}

var _ store.StateStore = (*StateRepository)(nil)
