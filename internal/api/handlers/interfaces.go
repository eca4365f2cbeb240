package handlers

import (
	"context"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// WorkflowService manages workflow definitions.
type WorkflowService interface {
	CreateDefinition(ctx context.Context, req models.CreateWorkflowRequest) (*models.WorkflowResponse, error)
	ListDefinitions(ctx context.Context, query models.ListWorkflowsQuery) (models.WorkflowListResponse, error)
	GetDefinition(ctx context.Context, id string) (*models.WorkflowResponse, error)
	UpdateDefinition(ctx context.Context, id string, req models.UpdateWorkflowRequest) (*models.WorkflowResponse, error)
	DeleteDefinition(ctx context.Context, id string) error
	TestDefinition(ctx context.Context, id string, eventCtx models.EventContext) (*models.TestRunResponse, error)
}

// ExecutionService queries the execution audit log.
type ExecutionService interface {
	QueryExecutions(ctx context.Context, query models.ListExecutionsQuery) (models.ExecutionListResponse, error)
	GetExecution(ctx context.Context, id string) (*models.ExecutionResponse, error)
	Stats(ctx context.Context) (models.ExecutionStats, error)
}

// Dispatcher evaluates the active definitions of a trigger.
type Dispatcher interface {
	Dispatch(ctx context.Context, trigger models.Trigger, eventCtx models.EventContext) ([]models.Action, error)
}

// ActionPublisher hands dispatched actions to downstream workers.
type ActionPublisher interface {
	PublishActions(ctx context.Context, trigger models.Trigger, actions []models.Action) error
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
