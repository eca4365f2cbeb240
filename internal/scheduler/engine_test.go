package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/dispatch"
	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/internal/testutil/fakes"
	"github.com/dhima/backoffice-workflows/pkg/clock"
)

var created = time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)

type harness struct {
	store     *fakes.FakeDefinitionStore
	execs     *fakes.FakeExecutionStore
	publisher *fakes.FakePublisher
	clock     *clock.Mock
}

func newEngineAt(now time.Time) (*Engine, harness) {
	h := harness{
		store:     fakes.NewFakeDefinitionStore(),
		execs:     fakes.NewFakeExecutionStore(),
		publisher: &fakes.FakePublisher{},
		clock:     clock.NewMock(now),
	}
	clk := h.clock
	d := dispatch.NewDispatcherWithClock(h.store, h.execs, clk, zap.NewNop())
	return NewEngineWithClock(time.Second, h.store, d, h.publisher, zap.NewNop(), clk), h
}

func addScheduled(t *testing.T, store *fakes.FakeDefinitionStore, schedule string, logicJSON string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, store.CreateDefinition(context.Background(), &models.WorkflowDefinition{
		ID:        id,
		Name:      "scheduled " + schedule,
		Trigger:   models.TriggerScheduled,
		IsActive:  true,
		Version:   1,
		Logic:     json.RawMessage(logicJSON),
		Schedule:  schedule,
		Timezone:  "UTC",
		CreatedAt: created,
	}))
	return id
}

func TestProcessTick_DueDefinition_DispatchesAndPublishes(t *testing.T) {
	eng, h := newEngineAt(created.Add(5*time.Minute + time.Second))
	id := addScheduled(t, h.store, "*/5 * * * *",
		`{"then":[{"action":"send-digest","params":{"at":"{{scheduled_at}}","def":"{{definition_id}}"}}]}`)

	err := eng.processTick(context.Background())
	assert.NoError(t, err)

	published := h.publisher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "send-digest", published[0].Name)
	assert.Equal(t, "2025-01-02T03:05:00Z", published[0].Params["at"])
	assert.Equal(t, id, published[0].Params["def"])
	assert.Equal(t, models.TriggerScheduled, h.publisher.Batches[0].Trigger)

	def, err := h.store.GetDefinition(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), def.ExecutionCount)
}

func TestProcessTick_NotYetDue_DoesNothing(t *testing.T) {
	eng, h := newEngineAt(created.Add(4 * time.Minute))
	addScheduled(t, h.store, "*/5 * * * *", `{"then":[{"action":"send-digest"}]}`)

	err := eng.processTick(context.Background())
	assert.NoError(t, err)

	assert.Empty(t, h.publisher.Batches)
	assert.Empty(t, h.execs.Records)
}

func TestProcessTick_AfterSuccess_NextRunMovesForward(t *testing.T) {
	now := created.Add(5*time.Minute + time.Second)
	eng, h := newEngineAt(now)
	addScheduled(t, h.store, "*/5 * * * *", `{"then":[{"action":"send-digest"}]}`)

	require.NoError(t, eng.processTick(context.Background()))
	require.NoError(t, eng.processTick(context.Background()))

	// last_executed_at is now, so the second tick finds nothing due
	assert.Len(t, h.execs.Records, 1)
	assert.Len(t, h.publisher.Batches, 1)
}

func TestProcessTick_FailedRule_RetriedOnNextTick(t *testing.T) {
	eng, h := newEngineAt(created.Add(time.Hour))
	id := addScheduled(t, h.store, "@hourly", `{"when":{"field":"x","op":"in","value":1},"then":[{"action":"a"}]}`)

	require.NoError(t, eng.processTick(context.Background()))
	require.NoError(t, eng.processTick(context.Background()))

	records := h.execs.ByDefinition(id)
	require.Len(t, records, 2)
	assert.Equal(t, models.ExecutionStatusFailure, records[0].Status)
	assert.Empty(t, h.publisher.Batches)
}

func TestProcessTick_InvalidSchedule_SkippedOthersFire(t *testing.T) {
	eng, h := newEngineAt(created.Add(time.Hour))
	addScheduled(t, h.store, "not a cron", `{"then":[{"action":"never"}]}`)
	good := addScheduled(t, h.store, "@hourly", `{"then":[{"action":"hourly"}]}`)

	err := eng.processTick(context.Background())
	assert.NoError(t, err)

	require.Len(t, h.execs.Records, 1)
	assert.Equal(t, good, h.execs.Records[0].DefinitionID)
}

func TestProcessTick_PublishFailure_DoesNotRollBackRecord(t *testing.T) {
	eng, h := newEngineAt(created.Add(time.Hour))
	h.publisher.FailNext = true
	addScheduled(t, h.store, "@hourly", `{"then":[{"action":"hourly"}]}`)

	err := eng.processTick(context.Background())
	assert.NoError(t, err)

	assert.Len(t, h.execs.Records, 1)
	assert.Empty(t, h.publisher.Batches)
}

func TestProcessTick_StoreFailure_ReturnsError(t *testing.T) {
	eng, h := newEngineAt(created)
	h.store.FailList = true

	err := eng.processTick(context.Background())
	assert.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	eng, _ := newEngineAt(created)
	eng.tick = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := eng.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_FiresOnTickOnceDefinitionIsDue(t *testing.T) {
	// Arrange
	eng, h := newEngineAt(created.Add(4 * time.Minute))
	addScheduled(t, h.store, "*/5 * * * *", `{"then":[{"action":"send-digest"}]}`)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	// Act: each advance of the mock clock is one tick
	require.Eventually(t, func() bool {
		h.clock.Add(eng.tick)
		return len(h.publisher.Published()) > 0
	}, 2*time.Second, 5*time.Millisecond)
	cancel()

	// Assert
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, "send-digest", h.publisher.Published()[0].Name)
	assert.False(t, h.clock.Now().Before(created.Add(5*time.Minute)))
}
