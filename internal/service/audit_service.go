package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/logger"
	"notes-api-be/internal/repository/unitofwork"
	"notes-api-be/pkg/events"
)

// AuditTopic is the in-process channel carrying audit events from the
// request path to the consumer.
const AuditTopic = "audit.events"

// IAuditPublisher records a security-relevant event. Publishing is
// fire-and-forget: audit failures never fail the request that caused
// the event.
type IAuditPublisher interface {
	Publish(ctx context.Context, eventType string, details map[string]interface{})
}

type auditPublisher struct {
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

func NewAuditPublisher(pubSub *gochannel.GoChannel, log logger.ILogger) IAuditPublisher {
	return &auditPublisher{
		pubSub: pubSub,
		log:    log,
	}
}

func (p *auditPublisher) Publish(ctx context.Context, eventType string, details map[string]interface{}) {
	evt := events.Event{
		Type:       eventType,
		Details:    details,
		OccurredAt: time.Now(),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		p.log.Warn("audit", "failed to marshal audit event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(AuditTopic, msg); err != nil {
		p.log.Warn("audit", "failed to publish audit event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

type IAuditConsumer interface {
	Consume(ctx context.Context) error
}

type auditConsumer struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewAuditConsumer(pubSub *gochannel.GoChannel, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAuditConsumer {
	return &auditConsumer{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		log:        log,
	}
}

// Consume subscribes to the audit topic and persists events until ctx is
// cancelled. Started once from main.
func (c *auditConsumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, AuditTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (c *auditConsumer) processMessage(ctx context.Context, msg *message.Message) {
	// Ack unconditionally: a poison message must not be redelivered
	// forever, and the trail is best-effort by design.
	defer msg.Ack()

	var evt events.Event
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		c.log.Warn("audit", "dropping malformed audit event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	record := &entity.AuditLog{
		EventType: evt.Type,
		Details:   evt.Details,
		CreatedAt: evt.OccurredAt,
	}
	if err := uow.AuditLogRepository().Create(ctx, record); err != nil {
		c.log.Error("audit", "failed to persist audit event", map[string]interface{}{
			"type":  evt.Type,
			"error": err.Error(),
		})
		return
	}

	c.log.Info("audit", "audit event recorded", map[string]interface{}{
		"type": evt.Type,
	})
}
