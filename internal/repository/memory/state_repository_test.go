package memory

import (
	"context"
	"testing"
	"time"

	"ai-advisor-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoadReturnsFreshStateWhenEmpty(t *testing.T) {
	repo := NewStateRepository(time.Minute)
	userID, sessionID := uuid.New(), uuid.New()

	state := repo.Load(context.Background(), userID, sessionID)

	assert.NotNil(t, state)
	assert.Equal(t, userID, state.UserID)
	assert.Equal(t, sessionID, state.SessionID)
	assert.Equal(t, store.StageGreeting, state.Context.Stage)
	assert.Empty(t, state.Memory)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	repo := NewStateRepository(time.Minute)
	userID, sessionID := uuid.New(), uuid.New()

	state := store.NewConversationState(userID, sessionID)
	state.Context.Topic = "Acme Corp"
	state.Context.TurnCount = 3
	state.AppendExchange(store.Exchange{UserText: "tell me about acme", AssistantText: "here is what I know"})

	assert.NoError(t, repo.Save(context.Background(), state))

	loaded := repo.Load(context.Background(), userID, sessionID)
	assert.Equal(t, "Acme Corp", loaded.Context.Topic)
	assert.Equal(t, 3, loaded.Context.TurnCount)
	assert.Len(t, loaded.Memory, 1)
}

func TestStatesAreIsolatedPerSession(t *testing.T) {
	repo := NewStateRepository(time.Minute)
	userID := uuid.New()
	sessionA, sessionB := uuid.New(), uuid.New()

	stateA := store.NewConversationState(userID, sessionA)
	stateA.Context.Topic = "logistics"
	assert.NoError(t, repo.Save(context.Background(), stateA))

	stateB := repo.Load(context.Background(), userID, sessionB)
	assert.Empty(t, stateB.Context.Topic, "a different session must start fresh")
}

func TestConcurrentWritersLastWriteWins(t *testing.T) {
	repo := NewStateRepository(time.Minute)
	userID, sessionID := uuid.New(), uuid.New()

	first := store.NewConversationState(userID, sessionID)
	first.Context.Topic = "first"
	second := store.NewConversationState(userID, sessionID)
	second.Context.Topic = "second"

	assert.NoError(t, repo.Save(context.Background(), first))
	assert.NoError(t, repo.Save(context.Background(), second))

	loaded := repo.Load(context.Background(), userID, sessionID)
	assert.Equal(t, "second", loaded.Context.Topic)
}

func TestDeleteRemovesState(t *testing.T) {
	repo := NewStateRepository(time.Minute)
	userID, sessionID := uuid.New(), uuid.New()

	state := store.NewConversationState(userID, sessionID)
	state.Context.TurnCount = 9
	assert.NoError(t, repo.Save(context.Background(), state))

	repo.Delete(userID, sessionID)

	loaded := repo.Load(context.Background(), userID, sessionID)
	assert.Zero(t, loaded.Context.TurnCount)
}
