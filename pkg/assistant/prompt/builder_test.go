package prompt

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/knowledge"
	"ai-advisor-be/pkg/assistant/strategy"
	"ai-advisor-be/pkg/store"
)

func testBundle(n int) *knowledge.Bundle {
	b := &knowledge.Bundle{Records: []knowledge.ScoredRecord{}}
	for i := 0; i < n; i++ {
		b.Records = append(b.Records, knowledge.ScoredRecord{
			Record: &entity.Company{
				Name:          "Company " + string(rune('A'+i)),
				Category:      "Logistics",
				PriorityScore: 50,
				Signal:        "steady",
			},
		})
	}
	return b
}

func emptyState() *store.ConversationState {
	return store.NewConversationState(uuid.New(), uuid.New())
}

func TestBuildSectionOrder(t *testing.T) {
	state := emptyState()
	state.AppendExchange(store.Exchange{UserText: "earlier question", AssistantText: "earlier answer"})

	in := intent.Intent{PrimaryIntent: intent.IntentCompanyInquiry}
	strat := strategy.Strategy{ResponseLength: strategy.LengthMedium, PromptStyle: strategy.StyleStructured}
	bundle := testBundle(2)
	bundle.Summary = &entity.KnowledgeSummary{TotalRecords: 10, HighPriorityCount: 3}

	out := NewBuilder("Tell me about Company A", in, strat, bundle, state).Build()

	positions := []int{
		strings.Index(out, "<persona>"),
		strings.Index(out, "<recent_conversation>"),
		strings.Index(out, "<intelligence_records>"),
		strings.Index(out, "<knowledge_summary>"),
		strings.Index(out, "<instructions>"),
		strings.Index(out, "<user_message>"),
	}
	for i, pos := range positions {
		require.GreaterOrEqual(t, pos, 0, "section %d missing", i)
		if i > 0 {
			assert.Greater(t, pos, positions[i-1], "section %d out of order", i)
		}
	}
	assert.Contains(t, out, "Tell me about Company A", "user message included verbatim")
}

func TestBuildGreetingSkipsKnowledgeSections(t *testing.T) {
	in := intent.Intent{PrimaryIntent: intent.IntentGreeting}
	strat := strategy.Strategy{ResponseLength: strategy.LengthShort, PromptStyle: strategy.StyleFriendly}
	bundle := testBundle(3)
	bundle.Summary = &entity.KnowledgeSummary{TotalRecords: 10}

	out := NewBuilder("hi", in, strat, bundle, emptyState()).Build()

	assert.NotContains(t, out, "<intelligence_records>")
	assert.NotContains(t, out, "<knowledge_summary>")
	assert.Contains(t, out, "<persona>")
	assert.Contains(t, out, "hi")
}

func TestBuildRecordCapByLength(t *testing.T) {
	in := intent.Intent{PrimaryIntent: intent.IntentCompanyInquiry}
	bundle := testBundle(10)

	short := NewBuilder("question", in, strategy.Strategy{ResponseLength: strategy.LengthShort}, bundle, emptyState()).Build()
	assert.Equal(t, shortRecordCap, strings.Count(short, "- Company"))

	long := NewBuilder("question", in, strategy.Strategy{ResponseLength: strategy.LengthLong}, bundle, emptyState()).Build()
	assert.Equal(t, defaultRecordCap, strings.Count(long, "- Company"))
}

func TestBuildMemoryLimitedToLastTwoAndTruncated(t *testing.T) {
	state := emptyState()
	state.AppendExchange(store.Exchange{UserText: "oldest", AssistantText: "a"})
	state.AppendExchange(store.Exchange{UserText: "middle", AssistantText: "b"})
	state.AppendExchange(store.Exchange{UserText: strings.Repeat("z", 400), AssistantText: "c"})

	in := intent.Intent{PrimaryIntent: intent.IntentAdviceRequest}
	out := NewBuilder("now what", in, strategy.Strategy{}, testBundle(1), state).Build()

	assert.NotContains(t, out, "User: oldest")
	assert.Contains(t, out, "User: middle")
	assert.Contains(t, out, strings.Repeat("z", memoryPreviewChars)+"...")
	assert.NotContains(t, out, strings.Repeat("z", memoryPreviewChars+1))
}

func TestBuildWebContentIncludedEvenWhenFailed(t *testing.T) {
	in := intent.Intent{PrimaryIntent: intent.IntentDataFetch}
	bundle := testBundle(0)
	bundle.Web = []knowledge.WebItem{{URL: "https://example.com", Content: knowledge.FetchFailedSentinel}}

	out := NewBuilder("scrape it", in, strategy.Strategy{}, bundle, emptyState()).Build()
	assert.Contains(t, out, knowledge.FetchFailedSentinel)
	assert.Contains(t, out, `url="https://example.com"`)
}

func TestBuildResumeSectionForReturningGreeting(t *testing.T) {
	in := intent.Intent{PrimaryIntent: intent.IntentGreeting}
	bundle := &knowledge.Bundle{
		PreviousUtterances: []string{"tell me about Acme Corp"},
		KnownEntities:      []string{"Acme Corp"},
	}

	out := NewBuilder("hello again", in, strategy.Strategy{}, bundle, emptyState()).Build()
	assert.Contains(t, out, "<previously_discussed>")
	assert.Contains(t, out, "Acme Corp")
}
