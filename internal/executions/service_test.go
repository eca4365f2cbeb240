package executions

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/internal/storage"
	"github.com/dhima/backoffice-workflows/internal/testutil/fakes"
)

func newTestZap(t *testing.T) *zap.Logger { return zap.NewNop() }

func seedExecutions(t *testing.T, store *fakes.FakeExecutionStore) {
	t.Helper()
	base := time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)
	msg := "boom"
	records := []models.WorkflowExecution{
		{ID: "e1", DefinitionID: "d1", Trigger: models.TriggerOrderCreated, Status: models.ExecutionStatusSuccess, Matched: true, CreatedAt: base},
		{ID: "e2", DefinitionID: "d2", Trigger: models.TriggerOrderCreated, Status: models.ExecutionStatusFailure, ErrorMessage: &msg, CreatedAt: base.Add(time.Minute)},
		{ID: "e3", DefinitionID: "d1", Trigger: models.TriggerKYCApproved, Status: models.ExecutionStatusSuccess, IsTestRun: true, CreatedAt: base.Add(2 * time.Minute),
			Actions: json.RawMessage(`[{"name":"a","params":{}}]`)},
	}
	for i := range records {
		require.NoError(t, store.CreateExecution(context.Background(), &records[i]))
	}
}

func TestQueryExecutions_NewestFirst(t *testing.T) {
	store := fakes.NewFakeExecutionStore()
	seedExecutions(t, store)
	svc := NewService(store, newTestZap(t))

	resp, err := svc.QueryExecutions(context.Background(), models.ListExecutionsQuery{})
	require.NoError(t, err)

	require.Len(t, resp.Executions, 3)
	assert.Equal(t, "e3", resp.Executions[0].ID)
	assert.Equal(t, "e1", resp.Executions[2].ID)
	assert.Equal(t, int64(3), resp.Pagination.TotalRecords)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 20, resp.Pagination.PageSize)
}

func TestQueryExecutions_WithFilters(t *testing.T) {
	store := fakes.NewFakeExecutionStore()
	seedExecutions(t, store)
	svc := NewService(store, newTestZap(t))

	tests := []struct {
		name  string
		query models.ListExecutionsQuery
		want  []string
	}{
		{name: "definition", query: models.ListExecutionsQuery{DefinitionID: "d1"}, want: []string{"e3", "e1"}},
		{name: "trigger", query: models.ListExecutionsQuery{Trigger: "order-created"}, want: []string{"e2", "e1"}},
		{name: "status", query: models.ListExecutionsQuery{Status: "failure"}, want: []string{"e2"}},
		{name: "test runs", query: models.ListExecutionsQuery{IsTestRun: "true"}, want: []string{"e3"}},
		{name: "real runs", query: models.ListExecutionsQuery{IsTestRun: "false"}, want: []string{"e2", "e1"}},
		{name: "second page", query: models.ListExecutionsQuery{Page: 2, Limit: 2}, want: []string{"e1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.QueryExecutions(context.Background(), tt.query)
			require.NoError(t, err)

			ids := make([]string, 0, len(resp.Executions))
			for _, e := range resp.Executions {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetExecution_Found(t *testing.T) {
	store := fakes.NewFakeExecutionStore()
	seedExecutions(t, store)
	svc := NewService(store, newTestZap(t))

	resp, err := svc.GetExecution(context.Background(), "e2")
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionStatusFailure, resp.Status)
	require.NotNil(t, resp.ErrorMessage)
	assert.Equal(t, "boom", *resp.ErrorMessage)
}

func TestGetExecution_NotFound(t *testing.T) {
	svc := NewService(fakes.NewFakeExecutionStore(), newTestZap(t))

	_, err := svc.GetExecution(context.Background(), "missing")

	assert.ErrorIs(t, err, storage.ErrExecutionNotFound)
}

func TestStats_PassesThroughStoreCounts(t *testing.T) {
	store := fakes.NewFakeExecutionStore()
	store.Stats = models.ExecutionStats{DefinitionsTotal: 4, DefinitionsActive: 3, ExecutionsSuccess: 10, ExecutionsFailure: 2, AvgDurationMs: 1.5}
	svc := NewService(store, newTestZap(t))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, store.Stats, stats)
}
