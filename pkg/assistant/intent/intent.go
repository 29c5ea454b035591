package intent

// Primary intent categories, listed in cascade priority order.
const (
	IntentDataFetch      = "data_fetch"
	IntentGreeting       = "greeting"
	IntentCompanyInquiry = "company_inquiry"
	IntentAdviceRequest  = "advice_request"
	IntentMarketResearch = "market_research"
	IntentCrisisSupport  = "crisis_support"
	IntentContactRequest = "contact_request"
	IntentUnknown        = "unknown"
)

// Urgency is orthogonal to the primary intent.
const (
	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"
)

// Scope constants
const (
	ScopeGeneral  = "general"
	ScopeSpecific = "specific"
	ScopeBroad    = "broad"
)

// Information need levels
const (
	NeedLow    = "low"
	NeedMedium = "medium"
	NeedHigh   = "high"
)

// Intent is the classified purpose of one user message. It is derived per
// message and never persisted.
type Intent struct {
	PrimaryIntent     string
	Urgency           string
	Scope             string
	InformationNeed   string
	IsFollowUp        bool
	MentionedEntities []string
}
