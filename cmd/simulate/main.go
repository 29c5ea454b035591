package main

import (
	"context"
	"log"
	"os"
	"time"

	"ai-advisor-be/internal/config"
	"ai-advisor-be/internal/repository/implementation"
	"ai-advisor-be/internal/repository/memory"
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/knowledge"
	"ai-advisor-be/pkg/assistant/orchestrator"
	"ai-advisor-be/pkg/assistant/response"
	"ai-advisor-be/pkg/database"
	"ai-advisor-be/pkg/llm/factory"
	"ai-advisor-be/pkg/webfetch"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Scripted conversation exercising the full turn pipeline against the
// seeded knowledge base: greeting, company inquiry, crisis, market view,
// contacts, then a follow-up.
var script = []string{
	"Hello there!",
	"What do you know about Northwind Logistics Group?",
	"Which companies are in crisis right now? This is urgent.",
	"Give me a market overview of the technology category.",
	"Who should I talk to at Cobalt Data Systems?",
	"Tell me more about that.",
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Printf("[WARN] LLM provider unavailable: %v (fallback responses only)", err)
	}

	pipeline := orchestrator.New(
		intent.NewClassifier(),
		knowledge.NewRetriever(
			implementation.NewCompanyRepository(db),
			webfetch.NewFetcher(time.Duration(cfg.Assistant.WebFetchTimeoutSeconds)*time.Second),
			pipelineLogger,
		),
		response.NewGenerator(llmProvider, pipelineLogger),
		memory.NewStateRepository(time.Duration(cfg.Assistant.StateTTLMinutes)*time.Minute),
		pipelineLogger,
		cfg.Assistant.ContextBudgetChars,
	)

	userID := uuid.New()
	sessionID := uuid.New()

	userColor := color.New(color.FgCyan, color.Bold)
	advisorColor := color.New(color.FgGreen)
	metaColor := color.New(color.FgYellow)

	color.White("=== Advisor pipeline simulation (session %s) ===\n", sessionID)

	ctx := context.Background()
	for turn, message := range script {
		userColor.Printf("\n[%d] USER: %s\n", turn+1, message)

		result := pipeline.ProcessMessage(ctx, message, userID, sessionID)

		advisorColor.Printf("ADVISOR: %s\n", result.ResponseText)
		metaColor.Printf("  intent=%s stage=%s\n", result.IntentCategory, result.Stage)
		for _, followup := range result.Followups {
			metaColor.Printf("  ↳ %s\n", followup)
		}
	}

	color.White("\n=== Simulation complete ===")
}
