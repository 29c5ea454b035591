package strategy

import (
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/store"
)

// Data requirements consumed by the knowledge retriever.
const (
	DataSummaryStats    = "summary_stats"
	DataCompanySpecific = "company_specific"
	DataCrisisCompanies = "crisis_companies"
	DataMarketTrends    = "market_trends"
	DataDecisionMakers  = "decision_makers"
	DataPreviousContext = "previous_context"
	DataContextual      = "contextual"
)

// Response lengths
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// Approaches
const (
	ApproachWelcoming   = "welcoming"
	ApproachInformative = "informative"
	ApproachAnalytical  = "analytical"
	ApproachAdvisory    = "advisory"
	ApproachEmpathetic  = "empathetic"
	ApproachDirect      = "direct"
	ApproachExploratory = "exploratory"
)

// Prompt styles
const (
	StyleFriendly       = "friendly"
	StyleConcise        = "concise"
	StyleStructured     = "structured"
	StyleFactual        = "factual"
	StyleSupportive     = "supportive"
	StyleReassuring     = "reassuring"
	StyleConversational = "conversational"
)

// Next actions
const (
	ActionInviteQuestion    = "invite_question"
	ActionPresentData       = "present_data"
	ActionOfferAnalysis     = "offer_deeper_analysis"
	ActionSuggestNextSteps  = "suggest_next_steps"
	ActionOfferReport       = "offer_report"
	ActionImmediateGuidance = "provide_immediate_guidance"
	ActionShareContacts     = "share_contacts"
	ActionClarify           = "clarify"
)

// Strategy bundles the response-shaping parameters for one turn. Derived,
// never persisted.
type Strategy struct {
	Approach         string
	DataNeeded       string
	ResponseLength   string
	PromptStyle      string
	NextAction       string
	IncludeSources   bool
	IncludeFollowups bool
}

var baseStrategies = map[string]Strategy{
	intent.IntentDataFetch: {
		Approach: ApproachInformative, DataNeeded: DataContextual,
		ResponseLength: LengthMedium, PromptStyle: StyleFactual,
		NextAction: ActionPresentData, IncludeSources: true, IncludeFollowups: true,
	},
	intent.IntentGreeting: {
		Approach: ApproachWelcoming, DataNeeded: DataSummaryStats,
		ResponseLength: LengthShort, PromptStyle: StyleFriendly,
		NextAction: ActionInviteQuestion, IncludeFollowups: true,
	},
	intent.IntentCompanyInquiry: {
		Approach: ApproachAnalytical, DataNeeded: DataCompanySpecific,
		ResponseLength: LengthMedium, PromptStyle: StyleStructured,
		NextAction: ActionOfferAnalysis, IncludeSources: true, IncludeFollowups: true,
	},
	intent.IntentAdviceRequest: {
		Approach: ApproachAdvisory, DataNeeded: DataContextual,
		ResponseLength: LengthMedium, PromptStyle: StyleSupportive,
		NextAction: ActionSuggestNextSteps, IncludeFollowups: true,
	},
	intent.IntentMarketResearch: {
		Approach: ApproachAnalytical, DataNeeded: DataMarketTrends,
		ResponseLength: LengthLong, PromptStyle: StyleStructured,
		NextAction: ActionOfferReport, IncludeSources: true, IncludeFollowups: true,
	},
	intent.IntentCrisisSupport: {
		Approach: ApproachEmpathetic, DataNeeded: DataCrisisCompanies,
		ResponseLength: LengthMedium, PromptStyle: StyleReassuring,
		NextAction: ActionImmediateGuidance, IncludeSources: true, IncludeFollowups: true,
	},
	intent.IntentContactRequest: {
		Approach: ApproachDirect, DataNeeded: DataDecisionMakers,
		ResponseLength: LengthShort, PromptStyle: StyleConcise,
		NextAction: ActionShareContacts, IncludeFollowups: true,
	},
	intent.IntentUnknown: {
		Approach: ApproachExploratory, DataNeeded: DataContextual,
		ResponseLength: LengthMedium, PromptStyle: StyleConversational,
		NextAction: ActionClarify, IncludeFollowups: true,
	},
}

// Select maps an intent plus conversation state to a strategy. Pure
// function: a base lookup followed by two ordered adjustments, depth
// preference first, urgency override second.
func Select(in intent.Intent, state *store.ConversationState) Strategy {
	s, ok := baseStrategies[in.PrimaryIntent]
	if !ok {
		s = baseStrategies[intent.IntentUnknown]
	}

	if in.IsFollowUp {
		s.DataNeeded = DataContextual
	}

	// Greetings branch on whether the session has history: new sessions
	// get the aggregate welcome, returning ones resume from prior context.
	if in.PrimaryIntent == intent.IntentGreeting {
		if len(state.Memory) == 0 {
			s.DataNeeded = DataSummaryStats
			s.PromptStyle = StyleFriendly
		} else {
			s.DataNeeded = DataPreviousContext
			s.PromptStyle = StyleConversational
		}
	}

	// Adjustment 1: session depth preference.
	switch state.Context.DepthPreference {
	case store.DepthBrief:
		s.ResponseLength = LengthShort
		s.PromptStyle = StyleConcise
	case store.DepthDetailed:
		s.ResponseLength = LengthLong
		s.IncludeSources = true
	}

	// Adjustment 2: urgency overrides, including step 1's length.
	if in.Urgency == intent.UrgencyUrgent {
		s.Approach = ApproachDirect
		s.ResponseLength = LengthMedium
		s.NextAction = ActionImmediateGuidance
	}

	return s
}
