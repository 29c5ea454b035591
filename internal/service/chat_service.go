package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-advisor-be/internal/constant"
	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/pkg/logger"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"
	"ai-advisor-be/pkg/assistant/orchestrator"
	"ai-advisor-be/pkg/events"
	"ai-advisor-be/pkg/nats"
)

// IChatService defines the chat surface: session CRUD plus the advisory
// turn pipeline.
type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	pipeline         *orchestrator.Orchestrator
	publisherService IPublisherService
	eventPublisher   *nats.Publisher
	log              logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *orchestrator.Orchestrator,
	publisherService IPublisherService,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		pipeline:         pipeline,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

const welcomeMessage = "Hi, I'm your business intelligence advisor. Ask me about any company, market, or contact I track."

func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	chatSession := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.NewSessionTitle,
		CreatedAt: now,
	}
	greeting := newChatMessage(chatSession.Id, constant.ChatMessageRoleModel, welcomeMessage, now)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, chatSession); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, greeting); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return response, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, m := range chatMessages {
		response = append(response, &dto.GetChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Chat:      m.Chat,
			CreatedAt: m.CreatedAt,
		})
	}
	return response, nil
}

// SendChat runs one advisory turn: ownership check, pipeline, transcript
// persistence, then best-effort analytics publication.
func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.ownedSession(ctx, uow, userId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	result := cs.pipeline.ProcessMessage(ctx, request.Chat, userId, session.Id)

	now := time.Now()
	sent := newChatMessage(session.Id, constant.ChatMessageRoleUser, request.Chat, now)
	reply := newChatMessage(session.Id, constant.ChatMessageRoleModel, result.ResponseText, now.Add(time.Millisecond))

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, sent); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, reply); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.publishTurn(ctx, userId, session.Id, request.Chat, result)

	return &dto.SendChatResponse{
		ChatSessionId:    session.Id,
		ChatSessionTitle: session.Title,
		Sent: &dto.SendChatResponseChat{
			Id:        sent.Id,
			Chat:      sent.Chat,
			Role:      sent.Role,
			CreatedAt: sent.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:        reply.Id,
			Chat:      reply.Chat,
			Role:      reply.Role,
			CreatedAt: reply.CreatedAt,
		},
		Followups:      result.Followups,
		Stage:          result.Stage,
		IntentCategory: result.IntentCategory,
	}, nil
}

func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.ownedSession(ctx, uow, userId, request.ChatSessionId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}
	return uow.Commit()
}

// publishTurn emits the analytics events. Failures are logged and never
// surfaced: analytics must not fail a turn the user already received.
func (cs *chatService) publishTurn(ctx context.Context, userId, sessionId uuid.UUID, userText string, result *orchestrator.Result) {
	if cs.publisherService != nil {
		err := cs.publisherService.PublishTurnCompleted(dto.TurnCompletedMessage{
			ChatSessionId:  sessionId,
			UserId:         userId,
			UserText:       userText,
			IntentCategory: result.IntentCategory,
			Stage:          result.Stage,
		})
		if err != nil {
			cs.log.Warn("ChatService", "Failed to publish turn to pubsub", map[string]interface{}{"error": err.Error()})
		}
	}

	if cs.eventPublisher != nil {
		err := cs.eventPublisher.Publish(ctx, events.ChatTurnCompleted{
			UserID:         userId,
			SessionID:      sessionId,
			IntentCategory: result.IntentCategory,
			Stage:          result.Stage,
			OccurredAt:     time.Now(),
		})
		if err != nil {
			cs.log.Warn("ChatService", "Failed to publish turn to NATS", map[string]interface{}{"error": err.Error()})
		}
	}
}

func newChatMessage(sessionId uuid.UUID, role, chat string, at time.Time) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          role,
		Chat:          chat,
		CreatedAt:     at,
	}
}

func (cs *chatService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}
	return session, nil
}
