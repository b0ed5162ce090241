package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/hoai-tn/pre-loved--services/internal/inventory/service"
	generalDomain "github.com/hoai-tn/pre-loved--services/pkg/domain"
	"github.com/hoai-tn/pre-loved--services/pkg/kafka"
	"github.com/hoai-tn/pre-loved--services/pkg/mylogger"
	"go.uber.org/zap"
)

type Consumer struct {
	service service.InventoryService
	logger  *zap.Logger
}

func NewConsumer(service service.InventoryService, logger *zap.Logger) *Consumer {
	return &Consumer{
		service: service,
		logger:  logger,
	}
}

func (c *Consumer) Start(ctx context.Context, brokers []string) {
	consumerGroup := kafka.NewConsumerGroup(
		brokers,
		"inventory-service-group",
		[]string{generalDomain.TopicOrderEvents},
		c.processMessage,
		c.logger,
	)

	consumerGroup.Run(ctx)
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	mylogger.Info(
		ctx,
		c.logger,
		"Processing message",
		zap.String("topic", msg.Topic),
	)

	var wrapper generalDomain.EventEnvelope
	if err := json.Unmarshal(msg.Value, &wrapper); err != nil {
		mylogger.Error(ctx, c.logger, "Error unmarshalling wrapper", zap.Error(err))
		return err
	}

	switch wrapper.Event {
	case generalDomain.EventOrderCreated:
		var event generalDomain.OrderCreatedEvent
		if err := json.Unmarshal(wrapper.Payload, &event); err != nil {
			mylogger.Error(ctx, c.logger, "Failed to unmarshal event", zap.Error(err))
			return err
		}

		if err := c.service.HandleOrderCreated(ctx, &event); err != nil {
			mylogger.Error(ctx, c.logger, "Failed to handle order created", zap.Error(err))
			return err
		}
	default:
		mylogger.Warn(ctx, c.logger, "Ignored event type", zap.String("event_type", wrapper.Event))
	}

	return nil
}
