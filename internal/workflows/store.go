package workflows

import (
	"context"

	"github.com/dhima/backoffice-workflows/internal/dispatch"
	"github.com/dhima/backoffice-workflows/internal/models"
)

// DefinitionStore defines the storage methods required by the workflow service.
type DefinitionStore interface {
	CreateDefinition(ctx context.Context, def *models.WorkflowDefinition) error
	GetDefinition(ctx context.Context, id string) (*models.WorkflowDefinition, error)
	ListDefinitions(ctx context.Context, query models.ListWorkflowsQuery) ([]models.WorkflowDefinition, int64, error)
	UpdateDefinition(ctx context.Context, id string, updates map[string]any) error
	DeleteDefinition(ctx context.Context, id string) error
}

// Tester runs a single definition as a test run.
type Tester interface {
	TestDefinition(ctx context.Context, def *models.WorkflowDefinition, eventCtx models.EventContext) dispatch.Outcome
}
