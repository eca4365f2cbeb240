package dispatch

import (
	"context"
	"time"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// DefinitionStore defines the definition queries the dispatcher needs.
type DefinitionStore interface {
	ListActiveDefinitions(ctx context.Context, trigger models.Trigger) ([]models.WorkflowDefinition, error)
	IncrementExecutionCount(ctx context.Context, id string, executedAt time.Time) error
}

// ExecutionStore persists execution records.
type ExecutionStore interface {
	CreateExecution(ctx context.Context, exec *models.WorkflowExecution) error
}
