package scheduler

import (
	"context"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// DefinitionStore defines DB operations required by the scheduler engine.
type DefinitionStore interface {
	ListActiveDefinitions(ctx context.Context, trigger models.Trigger) ([]models.WorkflowDefinition, error)
}

// Dispatcher evaluates an explicit set of definitions.
type Dispatcher interface {
	DispatchDefinitions(ctx context.Context, trigger models.Trigger, defs []models.WorkflowDefinition, eventCtx models.EventContext) []models.Action
}

// ActionPublisher hands dispatched actions to executors.
type ActionPublisher interface {
	PublishActions(ctx context.Context, trigger models.Trigger, actions []models.Action) error
}
