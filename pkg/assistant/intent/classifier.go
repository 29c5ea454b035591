package intent

import (
	"regexp"
	"strings"

	"ai-advisor-be/pkg/store"
)

// rule is one entry in the ordered classification cascade. The first rule
// whose predicate matches assigns the primary intent; later rules are
// never consulted.
type rule struct {
	name  string
	match func(lower string, entities []string) bool
	tag   string
	scope string
	need  string
}

var greetingPattern = regexp.MustCompile(`^\s*(hi|hello|hey|howdy|good (morning|afternoon|evening)|greetings)\b`)

var urgencyPattern = regexp.MustCompile(`\b(urgent|urgently|asap|immediate|immediately|now|today|right away)\b`)

var followUpPrefixes = []string{
	"and ", "also ", "what about", "how about", "then ",
	"ok but", "but what", "additionally", "same for",
}

var dataFetchKeywords = []string{
	"scrape", "crawl", "search the internet", "search the web",
	"live data", "fetch the data", "pull the data", "get me the data",
	"fetch data", "look up online",
}

var adviceKeywords = []string{
	"what should", "should we", "advice", "advise", "recommend",
	"how do i approach", "help me decide", "is it wise",
}

var marketKeywords = []string{
	"market", "industry", "trend", "sector", "competitor", "landscape",
	"overall picture",
}

var crisisKeywords = []string{
	"crisis", "failing", "bankrupt", "bankruptcy", "distress", "in trouble",
	"going under", "collapse", "collapsing", "struggling", "insolvent",
}

var contactKeywords = []string{
	"contact", "decision maker", "decision-maker", "who should i talk",
	"who do i talk", "reach out", "email of", "phone number", "get in touch",
}

var briefKeywords = []string{"briefly", "keep it short", "in short", "short answer", "tl;dr"}

var detailedKeywords = []string{"in detail", "detailed", "deep dive", "elaborate", "comprehensive"}

// Classifier derives an Intent from raw user text and conversation state.
// It is rule-based and never fails: unmatched input yields IntentUnknown.
type Classifier struct {
	rules     []rule
	extractor *EntityExtractor
}

func NewClassifier() *Classifier {
	c := &Classifier{extractor: NewEntityExtractor()}
	c.rules = []rule{
		{
			name:  "data_fetch",
			match: func(lower string, _ []string) bool { return containsAny(lower, dataFetchKeywords) },
			tag:   IntentDataFetch, scope: ScopeSpecific, need: NeedHigh,
		},
		{
			name:  "greeting",
			match: func(lower string, _ []string) bool { return greetingPattern.MatchString(lower) },
			tag:   IntentGreeting, scope: ScopeGeneral, need: NeedLow,
		},
		{
			name:  "company_inquiry",
			match: func(_ string, entities []string) bool { return len(entities) > 0 },
			tag:   IntentCompanyInquiry, scope: ScopeSpecific, need: NeedHigh,
		},
		{
			name:  "advice_request",
			match: func(lower string, _ []string) bool { return containsAny(lower, adviceKeywords) },
			tag:   IntentAdviceRequest, scope: ScopeGeneral, need: NeedMedium,
		},
		{
			name:  "market_research",
			match: func(lower string, _ []string) bool { return containsAny(lower, marketKeywords) },
			tag:   IntentMarketResearch, scope: ScopeBroad, need: NeedHigh,
		},
		{
			name:  "crisis_support",
			match: func(lower string, _ []string) bool { return containsAny(lower, crisisKeywords) },
			tag:   IntentCrisisSupport, scope: ScopeBroad, need: NeedHigh,
		},
		{
			name:  "contact_request",
			match: func(lower string, _ []string) bool { return containsAny(lower, contactKeywords) },
			tag:   IntentContactRequest, scope: ScopeSpecific, need: NeedMedium,
		},
	}
	return c
}

// Classify runs the cascade. Exactly one primary intent is assigned;
// urgency is an independent signal applied afterwards.
func (c *Classifier) Classify(text string, state *store.ConversationState) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	entities := c.extractor.Extract(text)

	result := Intent{
		PrimaryIntent:     IntentUnknown,
		Urgency:           UrgencyNormal,
		Scope:             ScopeGeneral,
		InformationNeed:   NeedMedium,
		MentionedEntities: entities,
	}

	if c.isFollowUp(lower, state) && state.Context.LastIntent != "" {
		// Continuations inherit the prior turn's intent category.
		result.IsFollowUp = true
		result.PrimaryIntent = state.Context.LastIntent
		result.Scope = ScopeSpecific
		result.InformationNeed = defaultNeed(result.PrimaryIntent)
	} else {
		for _, r := range c.rules {
			if r.match(lower, entities) {
				result.PrimaryIntent = r.tag
				result.Scope = r.scope
				result.InformationNeed = r.need
				break
			}
		}
	}

	if urgencyPattern.MatchString(lower) {
		result.Urgency = UrgencyUrgent
	}

	// Sessions tuned to brief answers never escalate information need.
	if state.Context.DepthPreference == store.DepthBrief {
		result.InformationNeed = NeedLow
	}

	return result
}

func (c *Classifier) isFollowUp(lower string, state *store.ConversationState) bool {
	if len(state.Memory) == 0 {
		return false
	}
	for _, prefix := range followUpPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// DetectDepthPreference inspects the message for explicit verbosity asks.
// Returns an empty string when the message expresses no preference.
func DetectDepthPreference(text string) string {
	lower := strings.ToLower(text)
	if containsAny(lower, briefKeywords) {
		return store.DepthBrief
	}
	if containsAny(lower, detailedKeywords) {
		return store.DepthDetailed
	}
	return ""
}

func defaultNeed(primaryIntent string) string {
	switch primaryIntent {
	case IntentGreeting:
		return NeedLow
	case IntentDataFetch, IntentCompanyInquiry, IntentMarketResearch, IntentCrisisSupport:
		return NeedHigh
	default:
		return NeedMedium
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
