package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/models"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed int
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed++
	return nil
}

func TestNewPublisher_WhenCreated_ThenHasProductionSettings(t *testing.T) {
	// Arrange
	logger, _ := zap.NewDevelopment()

	// Act
	publisher := NewPublisher([]string{"broker1:9092", "broker2:9092"}, "workflow-actions", logger)

	// Assert
	writer, ok := publisher.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "workflow-actions", writer.Topic)
	assert.Equal(t, "broker1:9092,broker2:9092", writer.Addr.String())
	assert.Equal(t, kafka.RequireAll, writer.RequiredAcks)
	assert.Equal(t, 3, writer.MaxAttempts)
	assert.Equal(t, 10*time.Second, writer.WriteTimeout)
	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
}

func TestPublishActions_WhenActionsGiven_ThenWritesOneMessagePerActionKeyedByDefinition(t *testing.T) {
	// Arrange
	writer := &recordingWriter{}
	publisher := newPublisherWithWriter(writer, zap.NewNop())
	actions := []models.Action{
		{Name: "notify-ops", Params: map[string]any{"orderId": "A1"}, DefinitionID: "def-1", DefinitionName: "ops", ExecutionID: "exe-1"},
		{Name: "send-email", Params: map[string]any{"to": "a@b.c"}, DefinitionID: "def-2", DefinitionName: "email", ExecutionID: "exe-2"},
	}

	// Act
	err := publisher.PublishActions(context.Background(), models.TriggerOrderCreated, actions)

	// Assert
	require.NoError(t, err)
	require.Len(t, writer.msgs, 2)
	assert.Equal(t, "def-1", string(writer.msgs[0].Key))
	assert.Equal(t, "def-2", string(writer.msgs[1].Key))
	assert.Equal(t, HeaderTrigger, writer.msgs[0].Headers[0].Key)
	assert.Equal(t, "order-created", string(writer.msgs[0].Headers[0].Value))

	var event ActionEvent
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &event))
	assert.NotEmpty(t, event.ActionID)
	assert.Equal(t, "exe-1", event.ExecutionID)
	assert.Equal(t, "def-1", event.DefinitionID)
	assert.Equal(t, "ops", event.DefinitionName)
	assert.Equal(t, "order-created", event.Trigger)
	assert.Equal(t, "notify-ops", event.Name)
	assert.Equal(t, "A1", event.Params["orderId"])
	assert.False(t, event.DispatchedAt.IsZero())
}

func TestPublishActions_WhenNoActions_ThenWritesNothing(t *testing.T) {
	// Arrange
	writer := &recordingWriter{}
	publisher := newPublisherWithWriter(writer, zap.NewNop())

	// Act
	err := publisher.PublishActions(context.Background(), models.TriggerOrderCreated, []models.Action{})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, writer.msgs)
}

func TestPublishActions_WhenWriterFails_ThenReturnsWrappedError(t *testing.T) {
	// Arrange
	writer := &recordingWriter{err: errors.New("broker down")}
	publisher := newPublisherWithWriter(writer, zap.NewNop())

	// Act
	err := publisher.PublishActions(context.Background(), models.TriggerOrderCreated, []models.Action{{Name: "notify-ops", DefinitionID: "def-1"}})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestPublishActions_WhenParamsNotSerializable_ThenReturnsError(t *testing.T) {
	// Arrange
	writer := &recordingWriter{}
	publisher := newPublisherWithWriter(writer, zap.NewNop())

	// Act
	err := publisher.PublishActions(context.Background(), models.TriggerOrderCreated, []models.Action{
		{Name: "bad", DefinitionID: "def-1", Params: map[string]any{"ch": make(chan int)}},
	})

	// Assert
	require.Error(t, err)
	assert.Empty(t, writer.msgs)
}

func TestClose_WhenCalledMultipleTimes_ThenDoesNotPanic(t *testing.T) {
	// Arrange
	publisher := NewPublisher([]string{"localhost:9092"}, "test-topic", zap.NewNop())

	// Act & Assert
	assert.NotPanics(t, func() {
		_ = publisher.Close()
		_ = publisher.Close()
	})
}
