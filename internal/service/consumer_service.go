package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-advisor-be/internal/constant"
	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService processes completed-turn messages off the internal
// pubsub: it titles new sessions after their first real question and logs
// turn analytics.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal turn message: %v", err)
		msg.Ack() // invalid payloads would retry forever
		return
	}

	log.Printf("[INFO] Turn completed: session=%s intent=%s stage=%s",
		payload.ChatSessionId, payload.IntentCategory, payload.Stage)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.ChatSessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to load session %s: %v", payload.ChatSessionId, err)
		msg.Nack()
		return
	}
	if session == nil {
		// Deleted between turn and consumption.
		msg.Ack()
		return
	}

	if session.Title != constant.NewSessionTitle || strings.TrimSpace(payload.UserText) == "" {
		msg.Ack()
		return
	}

	title := strings.TrimSpace(payload.UserText)
	if len(title) > constant.SessionTitleLimit {
		title = strings.TrimSpace(title[:constant.SessionTitleLimit]) + "..."
	}
	session.Title = title
	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		log.Printf("[ERROR] Failed to retitle session %s: %v", session.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
