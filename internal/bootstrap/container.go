package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"ai-advisor-be/internal/config"
	"ai-advisor-be/internal/controller"
	"ai-advisor-be/internal/pkg/logger"
	"ai-advisor-be/internal/repository/implementation"
	"ai-advisor-be/internal/repository/memory"
	"ai-advisor-be/internal/repository/redisstate"
	"ai-advisor-be/internal/repository/unitofwork"
	"ai-advisor-be/internal/service"
	"ai-advisor-be/pkg/assistant/intent"
	"ai-advisor-be/pkg/assistant/knowledge"
	"ai-advisor-be/pkg/assistant/orchestrator"
	"ai-advisor-be/pkg/assistant/response"
	"ai-advisor-be/pkg/events"
	"ai-advisor-be/pkg/llm/factory"
	"ai-advisor-be/pkg/store"
	"ai-advisor-be/pkg/webfetch"

	pktNats "ai-advisor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	CompanyController controller.ICompanyController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config. A failed provider is not
	// fatal: the response generator degrades to canned fallbacks.
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Printf("[WARN] Failed to initialize LLM Provider: %v (fallback responses only)", err)
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Audit trail for completed turns published by peer instances.
	if natsSub != nil {
		subject := "events." + events.ChatTurnCompletedType
		if err := natsSub.Subscribe(subject, "advisor-turn-audit", func(ctx context.Context, ev pktNats.RemoteEvent) error {
			sysLogger.Info("TurnAudit", "Chat turn completed", map[string]interface{}{"subject": ev.Subject})
			return nil
		}); err != nil {
			log.Printf("[WARN] Failed to subscribe to %s: %v", subject, err)
		}
	}

	// Conversation state store: Redis when reachable, in-process otherwise.
	stateTTL := time.Duration(cfg.Assistant.StateTTLMinutes) * time.Minute
	var stateStore store.StateStore
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory state store", err)
		stateStore = memory.NewStateRepository(stateTTL)
	} else {
		stateStore = redisstate.NewStateRepository(rdb, stateTTL, sysLogger)
	}

	// 3. Turn Pipeline
	fetcher := webfetch.NewFetcher(time.Duration(cfg.Assistant.WebFetchTimeoutSeconds) * time.Second)
	retriever := knowledge.NewRetriever(
		implementation.NewCompanyRepository(db),
		fetcher,
		pipelineLogger,
	)
	pipeline := orchestrator.New(
		intent.NewClassifier(),
		retriever,
		response.NewGenerator(llmProvider, pipelineLogger),
		stateStore,
		pipelineLogger,
		cfg.Assistant.ContextBudgetChars,
	)

	// 3.5 Services
	publisherService := service.NewPublisherService(cfg.Assistant.TurnEventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Assistant.TurnEventTopic,
		uowFactory,
	)

	chatService := service.NewChatService(uowFactory, pipeline, publisherService, natsPub, sysLogger)
	companyService := service.NewCompanyService(uowFactory)

	// 4. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		CompanyController: controller.NewCompanyController(companyService),

		ConsumerService: consumerService,
	}
}
