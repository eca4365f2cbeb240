package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// BusinessEvent is the inbound message that drives a dispatch.
type BusinessEvent struct {
	EventID    string              `json:"event_id"`
	Trigger    models.Trigger      `json:"trigger"`
	Context    models.EventContext `json:"context"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// Dispatcher runs the workflows bound to a trigger.
type Dispatcher interface {
	Dispatch(ctx context.Context, trigger models.Trigger, eventCtx models.EventContext) ([]models.Action, error)
}

// ActionPublisher hands dispatched actions to executors.
type ActionPublisher interface {
	PublishActions(ctx context.Context, trigger models.Trigger, actions []models.Action) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads business events and dispatches them one at a time. The
// offset is committed only after the dispatch and publish have finished.
type Consumer struct {
	reader     messageReader
	dispatcher Dispatcher
	publisher  ActionPublisher
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

// NewConsumer creates a consumer-group reader for the business events topic.
func NewConsumer(brokers []string, topic, groupID string, dispatcher Dispatcher, publisher ActionPublisher, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newConsumerWithReader(reader, dispatcher, publisher, logger)
}

func newConsumerWithReader(reader messageReader, dispatcher Dispatcher, publisher ActionPublisher, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader:     reader,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		newBackOff: retryBackOff,
	}
}

// retryBackOff never gives up; only cancellation stops a retried message.
func retryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Run consumes until ctx is cancelled or the reader is closed. Fetch errors
// and failed dispatches are retried with backoff. A failed message is retried
// in place, so its offset is never committed past.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, io.EOF) {
				c.logger.Info("event reader closed")
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		err = backoff.RetryNotify(
			func() error { return c.handleMessage(ctx, msg) },
			backoff.WithContext(c.newBackOff(), ctx),
			func(err error, wait time.Duration) {
				c.logger.Warn("dispatch failed, retrying message",
					zap.Int64("offset", msg.Offset),
					zap.Int("partition", msg.Partition),
					zap.Duration("retry_in", wait),
					zap.Error(err))
			},
		)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
		}
	}
}

// fetch waits for the next message, backing off while the broker is
// unavailable. io.EOF means the reader was closed and is not retried.
func (c *Consumer) fetch(ctx context.Context) (kafka.Message, error) {
	var msg kafka.Message
	err := backoff.RetryNotify(
		func() error {
			m, err := c.reader.FetchMessage(ctx)
			if errors.Is(err, io.EOF) {
				return backoff.Permanent(err)
			}
			if err != nil {
				return err
			}
			msg = m
			return nil
		},
		backoff.WithContext(c.newBackOff(), ctx),
		func(err error, wait time.Duration) {
			c.logger.Error("failed to fetch message",
				zap.Duration("retry_in", wait),
				zap.Error(err))
		},
	)
	return msg, err
}

// handleMessage returns an error only when the message should be retried.
// Malformed events and unknown triggers are logged and skipped.
func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var event BusinessEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("failed to unmarshal business event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err))
		return nil
	}

	if !event.Trigger.IsValid() {
		c.logger.Warn("skipping event with unknown trigger",
			zap.String("event_id", event.EventID),
			zap.String("trigger", string(event.Trigger)))
		return nil
	}

	if event.Context == nil {
		event.Context = models.EventContext{}
	}

	actions, err := c.dispatcher.Dispatch(ctx, event.Trigger, event.Context)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", event.EventID, err)
	}

	if err := c.publisher.PublishActions(ctx, event.Trigger, actions); err != nil {
		return fmt.Errorf("publish actions for %s: %w", event.EventID, err)
	}

	c.logger.Info("business event dispatched",
		zap.String("event_id", event.EventID),
		zap.String("trigger", string(event.Trigger)),
		zap.Int("actions", len(actions)))
	return nil
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
