package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// HeaderTrigger carries the trigger name on every action message.
const HeaderTrigger = "trigger"

// ActionEvent is the message handed to downstream action executors.
type ActionEvent struct {
	ActionID       string         `json:"action_id"`
	ExecutionID    string         `json:"execution_id"`
	DefinitionID   string         `json:"definition_id"`
	DefinitionName string         `json:"definition_name"`
	Trigger        string         `json:"trigger"`
	Name           string         `json:"name"`
	Params         map[string]any `json:"params"`
	DispatchedAt   time.Time      `json:"dispatched_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits dispatched actions to Kafka.
type Publisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewPublisher creates a Kafka publisher for the actions topic. Messages are
// keyed by definition id so one workflow's actions stay on one partition.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		Async:        false,
	}
	return newPublisherWithWriter(writer, logger)
}

func newPublisherWithWriter(writer messageWriter, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{writer: writer, logger: logger}
}

// PublishActions writes one message per action in a single batch.
func (p *Publisher) PublishActions(ctx context.Context, trigger models.Trigger, actions []models.Action) error {
	if len(actions) == 0 {
		return nil
	}

	dispatchedAt := time.Now().UTC()
	msgs := make([]kafka.Message, 0, len(actions))
	for _, action := range actions {
		event := ActionEvent{
			ActionID:       uuid.New().String(),
			ExecutionID:    action.ExecutionID,
			DefinitionID:   action.DefinitionID,
			DefinitionName: action.DefinitionName,
			Trigger:        string(trigger),
			Name:           action.Name,
			Params:         action.Params,
			DispatchedAt:   dispatchedAt,
		}

		payload, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("failed to marshal action event",
				zap.String("definition_id", action.DefinitionID),
				zap.String("action", action.Name),
				zap.Error(err))
			return fmt.Errorf("failed to marshal action event: %w", err)
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(action.DefinitionID),
			Value: payload,
			Headers: []kafka.Header{
				{Key: HeaderTrigger, Value: []byte(trigger)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("failed to publish actions to Kafka",
			zap.String("trigger", string(trigger)),
			zap.Int("actions", len(actions)),
			zap.Error(err))
		return fmt.Errorf("failed to publish actions: %w", err)
	}

	p.logger.Info("actions published to Kafka",
		zap.String("trigger", string(trigger)),
		zap.Int("actions", len(actions)))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
