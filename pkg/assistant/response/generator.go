package response

import (
	"context"
	"log"
	"strings"

	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/llm"
)

// fallbacks are the canned replies used when generation fails. The user
// never sees a raw provider error.
var fallbacks = map[string]string{
	intent.IntentDataFetch:      "I couldn't pull that data just now. The records are still available, so please try asking again in a moment.",
	intent.IntentGreeting:       "Hello! I'm your business intelligence advisor. Ask me about any company, market, or contact in the knowledge base.",
	intent.IntentCompanyInquiry: "I have records on that company but couldn't compose the analysis just now. Please ask again in a moment.",
	intent.IntentAdviceRequest:  "I couldn't put together a recommendation just now. Rephrasing the question or trying again shortly usually helps.",
	intent.IntentMarketResearch: "The market overview isn't available right now. Please try again shortly.",
	intent.IntentCrisisSupport:  "I couldn't compile the at-risk company list just now, but the underlying records are intact. Please retry in a moment.",
	intent.IntentContactRequest: "I couldn't retrieve the contact details just now. Please try again shortly.",
	intent.IntentUnknown:        "I didn't manage to produce an answer for that. Could you rephrase the question?",
}

// Generator invokes the text-generation collaborator and shields the turn
// from its failures.
type Generator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{provider: provider, logger: logger}
}

// Generate calls the model with the assembled prompt. Any failure, timeout
// or blank completion yields the intent's canned fallback; the turn
// continues either way.
func (g *Generator) Generate(ctx context.Context, promptText string, in intent.Intent) string {
	if g.provider == nil {
		return FallbackFor(in.PrimaryIntent)
	}

	out, err := g.provider.Generate(ctx, promptText)
	if err != nil {
		g.logger.Printf("[WARN] Generation failed for intent %s: %v", in.PrimaryIntent, err)
		return FallbackFor(in.PrimaryIntent)
	}
	if strings.TrimSpace(out) == "" {
		g.logger.Printf("[WARN] Generation returned empty output for intent %s", in.PrimaryIntent)
		return FallbackFor(in.PrimaryIntent)
	}
	return out
}

// FallbackFor returns the canned reply for an intent.
func FallbackFor(primaryIntent string) string {
	if msg, ok := fallbacks[primaryIntent]; ok {
		return msg
	}
	return fallbacks[intent.IntentUnknown]
}
