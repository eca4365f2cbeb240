package models

import (
	"encoding/json"
	"time"
)

// WorkflowDefinition represents a workflow rule bound to a trigger.
type WorkflowDefinition struct {
	ID             string          `json:"id"`
	Seq            int64           `json:"-"` // insertion order, breaks priority ties
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Trigger        Trigger         `json:"trigger"`
	Priority       int             `json:"priority"`
	IsActive       bool            `json:"is_active"`
	Version        int             `json:"version"`
	Logic          json.RawMessage `json:"logic"`
	Schedule       string          `json:"schedule,omitempty"`
	Timezone       string          `json:"timezone,omitempty"`
	ExecutionCount int64           `json:"execution_count"`
	LastExecutedAt *time.Time      `json:"last_executed_at,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateWorkflowRequest represents the request to create a workflow definition.
type CreateWorkflowRequest struct {
	Name        string          `json:"name" binding:"required" example:"Notify ops on large orders"`
	Description string          `json:"description,omitempty" example:"Pings the ops channel when an order exceeds 50 EUR"`
	Trigger     Trigger         `json:"trigger" binding:"required" example:"order-created"`
	Priority    int             `json:"priority" example:"10"`
	IsActive    *bool           `json:"is_active,omitempty" example:"true"`
	Logic       json.RawMessage `json:"logic" binding:"required" swaggertype:"object"`
	Schedule    string          `json:"schedule,omitempty" example:"0 9 * * *"`
	Timezone    string          `json:"timezone,omitempty" example:"Europe/Vilnius"`
	CreatedBy   string          `json:"-"`
} // @name CreateWorkflowRequest

// UpdateWorkflowRequest represents a partial update of a workflow definition.
type UpdateWorkflowRequest struct {
	Name        *string         `json:"name,omitempty" example:"Notify ops on large orders"`
	Description *string         `json:"description,omitempty"`
	Trigger     *Trigger        `json:"trigger,omitempty" example:"order-created"`
	Priority    *int            `json:"priority,omitempty" example:"20"`
	IsActive    *bool           `json:"is_active,omitempty" example:"false"`
	Logic       json.RawMessage `json:"logic,omitempty" swaggertype:"object"`
	Schedule    *string         `json:"schedule,omitempty" example:"*/30 * * * *"`
	Timezone    *string         `json:"timezone,omitempty" example:"UTC"`
} // @name UpdateWorkflowRequest

// WorkflowResponse represents the response for a single workflow definition.
type WorkflowResponse struct {
	ID             string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name           string          `json:"name" example:"Notify ops on large orders"`
	Description    string          `json:"description,omitempty"`
	Trigger        Trigger         `json:"trigger" example:"order-created"`
	Priority       int             `json:"priority" example:"10"`
	IsActive       bool            `json:"is_active" example:"true"`
	Version        int             `json:"version" example:"3"`
	Logic          json.RawMessage `json:"logic" swaggertype:"object"`
	Schedule       string          `json:"schedule,omitempty" example:"0 9 * * *"`
	Timezone       string          `json:"timezone,omitempty" example:"UTC"`
	NextRunAt      *time.Time      `json:"next_run_at,omitempty" example:"2025-11-05T09:00:00Z"`
	ExecutionCount int64           `json:"execution_count" example:"42"`
	LastExecutedAt *time.Time      `json:"last_executed_at,omitempty" example:"2025-11-05T10:30:00Z"`
	CreatedBy      string          `json:"created_by,omitempty" example:"ops@exchange.example"`
	CreatedAt      time.Time       `json:"created_at" example:"2025-11-05T10:00:00Z"`
	UpdatedAt      time.Time       `json:"updated_at" example:"2025-11-05T10:00:00Z"`
} // @name WorkflowResponse

// ListWorkflowsQuery represents query parameters for listing workflow definitions.
type ListWorkflowsQuery struct {
	Trigger string `form:"trigger" example:"order-created"`
	Active  string `form:"active" binding:"omitempty,oneof=true false" example:"true"`
	Page    int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
} // @name ListWorkflowsQuery

// WorkflowListResponse represents the response for listing workflow definitions.
type WorkflowListResponse struct {
	Workflows  []WorkflowResponse `json:"workflows"`
	Pagination Pagination         `json:"pagination"`
} // @name WorkflowListResponse

// Pagination represents pagination metadata.
type Pagination struct {
	CurrentPage  int   `json:"current_page" example:"1"`
	PageSize     int   `json:"page_size" example:"20"`
	TotalPages   int   `json:"total_pages" example:"5"`
	TotalRecords int64 `json:"total_records" example:"100"`
} // @name Pagination

// NewPagination computes pagination metadata for a page of results.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage:  page,
		PageSize:     limit,
		TotalPages:   totalPages,
		TotalRecords: total,
	}
}

// NormalizePage applies the default and maximum page size.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
