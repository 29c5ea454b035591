package memory

import (
	"context"
	"time"

	"ai-advisor-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StateRepository keeps conversation state in process memory with a TTL.
// Suitable for a single instance; use the redisstate repository when
// running multiple orchestrator instances.
type StateRepository struct {
	cache *cache.Cache
}

func NewStateRepository(ttl time.Duration) *StateRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &StateRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func stateKey(userID, sessionID uuid.UUID) string {
	return userID.String() + ":" + sessionID.String()
}

// Load returns the stored state, or a fresh default when nothing exists.
// It never fails the caller.
func (r *StateRepository) Load(ctx context.Context, userID, sessionID uuid.UUID) *store.ConversationState {
	if x, found := r.cache.Get(stateKey(userID, sessionID)); found {
		return x.(*store.ConversationState)
	}
	return store.NewConversationState(userID, sessionID)
}

func (r *StateRepository) Save(ctx context.Context, state *store.ConversationState) error {
	r.cache.Set(stateKey(state.UserID, state.SessionID), state, cache.DefaultExpiration)
	return nil
}

func (r *StateRepository) Delete(userID, sessionID uuid.UUID) {
	r.cache.Delete(stateKey(userID, sessionID))
}

var _ store.StateStore = (*StateRepository)(nil)
