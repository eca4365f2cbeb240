package executions

import (
	"context"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// ExecutionStore defines the read side of execution persistence.
type ExecutionStore interface {
	ListExecutions(ctx context.Context, query models.ListExecutionsQuery) ([]models.WorkflowExecution, int64, error)
	GetExecution(ctx context.Context, id string) (*models.WorkflowExecution, error)
	ExecutionStats(ctx context.Context) (models.ExecutionStats, error)
}
