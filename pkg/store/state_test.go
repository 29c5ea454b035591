package store

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppendExchangeEvictsOldestFirst(t *testing.T) {
	state := NewConversationState(uuid.New(), uuid.New())

	for i := 0; i < 7; i++ {
		state.AppendExchange(Exchange{UserText: fmt.Sprintf("msg-%d", i)})
	}

	assert.Len(t, state.Memory, MemoryLimit)
	assert.Equal(t, "msg-1", state.Memory[0].UserText, "first exchange must be evicted")
	assert.Equal(t, "msg-6", state.Memory[MemoryLimit-1].UserText)
}

func TestAdvanceStageIsMonotonic(t *testing.T) {
	state := NewConversationState(uuid.New(), uuid.New())
	assert.Equal(t, StageGreeting, state.Context.Stage)

	state.AdvanceStage(StageDeepConversation)
	assert.Equal(t, StageDeepConversation, state.Context.Stage)

	state.AdvanceStage(StageExploring)
	assert.Equal(t, StageDeepConversation, state.Context.Stage, "stage must never move backward")

	state.AdvanceStage(StageGreeting)
	assert.Equal(t, StageDeepConversation, state.Context.Stage)
}

func TestAddMentionedEntitiesKeepsOrderAndUniqueness(t *testing.T) {
	state := NewConversationState(uuid.New(), uuid.New())

	state.AddMentionedEntities([]string{"Acme Corp", "Globex Inc"})
	state.AddMentionedEntities([]string{"Globex Inc", "Initech Group", ""})

	assert.Equal(t, []string{"Acme Corp", "Globex Inc", "Initech Group"}, state.Context.MentionedEntities)
}

func TestLastUserTexts(t *testing.T) {
	state := NewConversationState(uuid.New(), uuid.New())
	for i := 0; i < 5; i++ {
		state.AppendExchange(Exchange{UserText: fmt.Sprintf("u%d", i)})
	}

	assert.Equal(t, []string{"u2", "u3", "u4"}, state.LastUserTexts(3))
	assert.Len(t, state.LastUserTexts(10), 5)
}
