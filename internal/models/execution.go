package models

import (
	"encoding/json"
	"time"
)

// EventContext is the caller-supplied data bag passed into a dispatch.
type EventContext map[string]any

// ExecutionStatus represents the outcome of a workflow evaluation.
type ExecutionStatus string

const (
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusFailure ExecutionStatus = "failure"
)

// Action is a side effect produced by a workflow for the caller to perform.
type Action struct {
	Name           string         `json:"name" example:"notify-ops"`
	Params         map[string]any `json:"params"`
	DefinitionID   string         `json:"definition_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	DefinitionName string         `json:"definition_name,omitempty" example:"Notify ops on large orders"`
	ExecutionID    string         `json:"execution_id,omitempty" example:"660e8400-e29b-41d4-a716-446655440000"`
} // @name Action

// WorkflowExecution is the immutable audit row written after each rule evaluation.
type WorkflowExecution struct {
	ID                string          `json:"id"`
	DefinitionID      string          `json:"definition_id"`
	DefinitionVersion int             `json:"definition_version"`
	Trigger           Trigger         `json:"trigger"`
	Context           json.RawMessage `json:"context,omitempty"`
	Status            ExecutionStatus `json:"status"`
	Matched           bool            `json:"matched"`
	Actions           json.RawMessage `json:"actions,omitempty"`
	ErrorMessage      *string         `json:"error_message,omitempty"`
	StartedAt         time.Time       `json:"started_at"`
	CompletedAt       time.Time       `json:"completed_at"`
	DurationMs        int64           `json:"duration_ms"`
	IsTestRun         bool            `json:"is_test_run"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ExecutionResponse represents the response for a single execution record.
type ExecutionResponse struct {
	ID                string          `json:"id" example:"660e8400-e29b-41d4-a716-446655440000"`
	DefinitionID      string          `json:"definition_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	DefinitionVersion int             `json:"definition_version" example:"3"`
	Trigger           Trigger         `json:"trigger" example:"order-created"`
	Context           json.RawMessage `json:"context,omitempty" swaggertype:"object"`
	Status            ExecutionStatus `json:"status" example:"success"`
	Matched           bool            `json:"matched" example:"true"`
	Actions           json.RawMessage `json:"actions,omitempty" swaggertype:"array,object"`
	ErrorMessage      *string         `json:"error_message,omitempty" example:"unknown operator \"gtx\""`
	StartedAt         time.Time       `json:"started_at" example:"2025-11-05T10:30:00Z"`
	CompletedAt       time.Time       `json:"completed_at" example:"2025-11-05T10:30:00Z"`
	DurationMs        int64           `json:"duration_ms" example:"2"`
	IsTestRun         bool            `json:"is_test_run" example:"false"`
	CreatedAt         time.Time       `json:"created_at" example:"2025-11-05T10:30:00Z"`
} // @name ExecutionResponse

// ListExecutionsQuery represents query parameters for listing execution records.
type ListExecutionsQuery struct {
	DefinitionID string `form:"definition_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Trigger      string `form:"trigger" example:"order-created"`
	Status       string `form:"status" binding:"omitempty,oneof=success failure" example:"success"`
	IsTestRun    string `form:"is_test_run" binding:"omitempty,oneof=true false" example:"false"`
	Page         int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
} // @name ListExecutionsQuery

// ExecutionListResponse represents the response for listing execution records.
type ExecutionListResponse struct {
	Executions []ExecutionResponse `json:"executions"`
	Pagination Pagination          `json:"pagination"`
} // @name ExecutionListResponse

// DispatchResponse is returned by the dispatch endpoint.
type DispatchResponse struct {
	Trigger Trigger  `json:"trigger" example:"order-created"`
	Actions []Action `json:"actions"`
} // @name DispatchResponse

// TestRunResponse is returned by a workflow test run.
type TestRunResponse struct {
	ExecutionID string          `json:"execution_id" example:"660e8400-e29b-41d4-a716-446655440000"`
	Status      ExecutionStatus `json:"status" example:"success"`
	Matched     bool            `json:"matched" example:"true"`
	Actions     []Action        `json:"actions"`
	Error       string          `json:"error,omitempty"`
} // @name TestRunResponse

// ExecutionStats aggregates counts for the metrics endpoint.
type ExecutionStats struct {
	DefinitionsTotal  int64
	DefinitionsActive int64
	ExecutionsSuccess int64
	ExecutionsFailure int64
	AvgDurationMs     float64
}
