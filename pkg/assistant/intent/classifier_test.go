package intent

import (
	"testing"

	"ai-advisor-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func freshState() *store.ConversationState {
	return store.NewConversationState(uuid.New(), uuid.New())
}

func TestClassifyCascadePriority(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"greeting", "hi", IntentGreeting},
		{"greeting with phrase", "Hello there, how are you?", IntentGreeting},
		{"data fetch wins over market", "scrape the latest market data", IntentDataFetch},
		{"entity inquiry", "Tell me about Acme Corp", IntentCompanyInquiry},
		{"advice", "What should I do about my supplier?", IntentAdviceRequest},
		{"market research", "What are the industry trends this year?", IntentMarketResearch},
		{"crisis", "which companies are failing", IntentCrisisSupport},
		{"contact", "Who should I talk to over there?", IntentContactRequest},
		{"unmatched", "blue bananas please", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, freshState())
			assert.Equal(t, tt.want, got.PrimaryIntent)
		})
	}
}

func TestClassifyAlwaysAssignsExactlyOneIntent(t *testing.T) {
	c := NewClassifier()
	// Inputs chosen to trip several pattern families at once; the cascade
	// must still yield exactly one primary intent, the earliest match.
	got := c.Classify("scrape contacts of failing companies in the retail market", freshState())
	assert.Equal(t, IntentDataFetch, got.PrimaryIntent)
	assert.NotEmpty(t, got.PrimaryIntent)
}

func TestClassifyUnknownDefaultsToMediumNeed(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("xyzzy", freshState())
	assert.Equal(t, IntentUnknown, got.PrimaryIntent)
	assert.Equal(t, NeedMedium, got.InformationNeed)
}

func TestClassifyUrgencyIsOrthogonal(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("urgent: which companies are failing", freshState())
	assert.Equal(t, IntentCrisisSupport, got.PrimaryIntent)
	assert.Equal(t, UrgencyUrgent, got.Urgency)

	// "know" must not trip the "now" keyword
	got = c.Classify("tell me what you know about the market", freshState())
	assert.Equal(t, UrgencyNormal, got.Urgency)
}

func TestClassifyFollowUpInheritsPriorIntent(t *testing.T) {
	c := NewClassifier()
	state := freshState()
	state.Context.LastIntent = IntentMarketResearch
	state.AppendExchange(store.Exchange{UserText: "what are the trends?", AssistantText: "..."})

	got := c.Classify("and what about logistics?", state)
	assert.True(t, got.IsFollowUp)
	assert.Equal(t, IntentMarketResearch, got.PrimaryIntent)
}

func TestClassifyFollowUpRequiresMemory(t *testing.T) {
	c := NewClassifier()
	state := freshState()
	state.Context.LastIntent = IntentMarketResearch

	// connective prefix but empty memory: not a follow-up
	got := c.Classify("and what about logistics?", state)
	assert.False(t, got.IsFollowUp)
}

func TestClassifyBriefDepthDowngradesNeed(t *testing.T) {
	c := NewClassifier()
	state := freshState()
	state.Context.DepthPreference = store.DepthBrief

	got := c.Classify("Tell me about Acme Corp", state)
	assert.Equal(t, NeedLow, got.InformationNeed)
}

func TestExtractEntities(t *testing.T) {
	e := NewEntityExtractor()

	entities := e.Extract("Tell me about Acme Corp and Northwind Logistics Group")
	assert.Equal(t, []string{"Acme Corp", "Northwind Logistics Group"}, entities)

	// known-list match is case-insensitive
	entities = e.Extract("any news on acme corp?")
	assert.Equal(t, []string{"Acme Corp"}, entities)

	// suffix allowlist catches unknown companies
	entities = e.Extract("I met someone from Borealis Mining Ltd yesterday")
	assert.Equal(t, []string{"Borealis Mining Ltd"}, entities)

	// lowercase words are not entities
	assert.Empty(t, e.Extract("which companies are failing"))
}

func TestDetectDepthPreference(t *testing.T) {
	assert.Equal(t, store.DepthBrief, DetectDepthPreference("keep it short please"))
	assert.Equal(t, store.DepthDetailed, DetectDepthPreference("give me a deep dive"))
	assert.Equal(t, "", DetectDepthPreference("tell me about the market"))
}
