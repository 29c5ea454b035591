package orchestrator

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"ai-advisor-be/pkg/assistant/budget"
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/knowledge"
	"ai-advisor-be/pkg/assistant/prompt"
	"ai-advisor-be/pkg/assistant/response"
	"ai-advisor-be/pkg/assistant/strategy"
	"ai-advisor-be/pkg/store"
)

// deepConversationTurns is the turn count at which a session is considered
// a deep conversation.
const deepConversationTurns = 5

const apology = "I'm sorry, something went wrong on my side while handling that. Please send the message again."

// Result is what one processed turn returns to the caller.
type Result struct {
	ResponseText   string   `json:"response_text"`
	Followups      []string `json:"followups"`
	Stage          string   `json:"stage"`
	IntentCategory string   `json:"intent_category"`
}

// Orchestrator runs the full turn pipeline: load state, classify, select
// a strategy, retrieve knowledge, fit it to budget, assemble the prompt,
// generate, then persist the updated state. Every component below it is
// built not to fail the turn; a panic from a defect is the only fatal
// path and yields a generic apology without persisting state.
type Orchestrator struct {
	classifier  *intent.Classifier
	retriever   *knowledge.Retriever
	generator   *response.Generator
	states      store.StateStore
	logger      *log.Logger
	budgetChars int
}

func New(
	classifier *intent.Classifier,
	retriever *knowledge.Retriever,
	generator *response.Generator,
	states store.StateStore,
	logger *log.Logger,
	budgetChars int,
) *Orchestrator {
	if budgetChars <= 0 {
		budgetChars = budget.DefaultBudgetChars
	}
	return &Orchestrator{
		classifier:  classifier,
		retriever:   retriever,
		generator:   generator,
		states:      states,
		logger:      logger,
		budgetChars: budgetChars,
	}
}

// ProcessMessage handles one user message end to end. It never returns an
// error: failures inside the pipeline degrade to fallback text, and a
// panic is converted to an apology with the pre-turn state left untouched.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userText string, userID, sessionID uuid.UUID) (result *Result) {
	var state *store.ConversationState

	defer func() {
		if r := recover(); r != nil {
			o.logger.Printf("[ERROR] Pipeline panic: %v\n%s", r, debug.Stack())
			stage := store.StageGreeting
			if state != nil {
				stage = state.Context.Stage
			}
			result = &Result{
				ResponseText:   apology,
				Followups:      response.Followups(intent.Intent{PrimaryIntent: intent.IntentUnknown}, nil),
				Stage:          stage,
				IntentCategory: intent.IntentUnknown,
			}
		}
	}()

	state = o.states.Load(ctx, userID, sessionID)

	in := o.classifier.Classify(userText, state)
	o.logger.Printf("[TURN] Intent: %s (urgency=%s, followUp=%t)", in.PrimaryIntent, in.Urgency, in.IsFollowUp)

	strat := strategy.Select(in, state)
	o.logger.Printf("[TURN] Strategy: approach=%s dataNeeded=%s length=%s", strat.Approach, strat.DataNeeded, strat.ResponseLength)

	bundle := o.retriever.Fetch(ctx, userText, in, strat, state)
	bundle = budget.Optimize(bundle, o.budgetChars)

	promptText := prompt.NewBuilder(userText, in, strat, bundle, state).Build()
	reply := o.generator.Generate(ctx, promptText, in)
	followups := response.Followups(in, bundle)

	o.updateState(state, userText, reply, in)

	// Last-write-wins; a failed save only costs continuity for the next
	// turn, never this one.
	if err := o.states.Save(ctx, state); err != nil {
		o.logger.Printf("[WARN] State save failed for %s/%s: %v", userID, sessionID, err)
	}

	return &Result{
		ResponseText:   reply,
		Followups:      followups,
		Stage:          state.Context.Stage,
		IntentCategory: in.PrimaryIntent,
	}
}

func (o *Orchestrator) updateState(state *store.ConversationState, userText, reply string, in intent.Intent) {
	state.Context.TurnCount++
	state.Context.LastIntent = in.PrimaryIntent
	state.AddMentionedEntities(in.MentionedEntities)

	if len(in.MentionedEntities) > 0 {
		state.Context.Topic = in.MentionedEntities[0]
	} else if in.PrimaryIntent != intent.IntentGreeting && in.PrimaryIntent != intent.IntentUnknown {
		state.Context.Topic = in.PrimaryIntent
	}

	if pref := intent.DetectDepthPreference(userText); pref != "" {
		state.Context.DepthPreference = pref
	}

	if in.PrimaryIntent != intent.IntentGreeting {
		state.AdvanceStage(store.StageExploring)
	}
	if state.Context.TurnCount >= deepConversationTurns {
		state.AdvanceStage(store.StageDeepConversation)
	}

	state.AppendExchange(store.Exchange{
		UserText:      userText,
		AssistantText: reply,
		TimestampMs:   time.Now().UnixMilli(),
	})
}
