package response

import (
	"fmt"

	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/knowledge"
)

// FollowupCount is the number of suggestions returned with every response.
const FollowupCount = 3

var intentFollowups = map[string][]string{
	intent.IntentGreeting: {
		"Which companies need attention right now?",
		"Can you give me a market overview?",
	},
	intent.IntentCompanyInquiry: {
		"Who are the key contacts there?",
		"How does it compare to others in its category?",
	},
	intent.IntentAdviceRequest: {
		"What are the risks of that approach?",
		"What would the first step look like?",
	},
	intent.IntentMarketResearch: {
		"Which of these trends is moving fastest?",
		"Which companies are best positioned here?",
	},
	intent.IntentCrisisSupport: {
		"Which of these is most urgent?",
		"Who should I contact at the highest-risk company?",
	},
	intent.IntentContactRequest: {
		"Do you want background on any of these people?",
		"Should I pull up the company record as well?",
	},
	intent.IntentDataFetch: {
		"Want that broken down by category?",
	},
}

var genericFollowups = []string{
	"Is there a specific company you'd like to focus on?",
	"Would a summary of the whole knowledge base help?",
	"Anything else I can look into for you?",
}

// Followups derives exactly FollowupCount suggestions: intent-specific
// first, then data-derived ones from the bundle, padded from a generic
// pool.
func Followups(in intent.Intent, bundle *knowledge.Bundle) []string {
	suggestions := append([]string{}, intentFollowups[in.PrimaryIntent]...)

	if bundle != nil {
		if len(bundle.Records) > 0 && bundle.Records[0].Record != nil {
			suggestions = append(suggestions,
				fmt.Sprintf("Should I dig deeper into %s?", bundle.Records[0].Record.Name))
		}
		if bundle.Summary != nil && len(bundle.Summary.Categories) > 1 {
			suggestions = append(suggestions,
				fmt.Sprintf("Want a comparison across the %d categories I track?", len(bundle.Summary.Categories)))
		}
	}

	suggestions = append(suggestions, genericFollowups...)

	out := make([]string, 0, FollowupCount)
	seen := make(map[string]bool)
	for _, s := range suggestions {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == FollowupCount {
			break
		}
	}
	return out
}
