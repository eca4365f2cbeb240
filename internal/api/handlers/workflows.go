package handlers

import (
	"errors"
	"io"

	"github.com/dhima/backoffice-workflows/internal/api/middleware"
	"github.com/dhima/backoffice-workflows/internal/api/response"
	"github.com/dhima/backoffice-workflows/internal/logging"
	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/internal/storage"
	"github.com/dhima/backoffice-workflows/internal/workflows"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkflowHandler handles workflow definition management requests.
type WorkflowHandler struct {
	logger  logging.Logger
	service WorkflowService
}

// NewWorkflowHandler creates a new workflow handler.
func NewWorkflowHandler(logger logging.Logger, service WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{
		logger:  logger.With(zap.String("handler", "workflow")),
		service: service,
	}
}

// CreateWorkflow godoc
// @Summary Create a workflow definition
// @Description Creates a rule bound to a trigger. The logic tree is validated before it is stored. The X-Admin-User header is recorded as the author.
// @Tags Workflows
// @Accept json
// @Produce json
// @Param X-Admin-User header string false "Back-office operator identity"
// @Param workflow body models.CreateWorkflowRequest true "Workflow definition"
// @Success 201 {object} models.WorkflowResponse
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/workflows [post]
func (h *WorkflowHandler) CreateWorkflow(c *gin.Context) {
	var req models.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create workflow request",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}
	req.CreatedBy = middleware.GetAdminUser(c)

	result, err := h.service.CreateDefinition(c.Request.Context(), req)
	if h.handleServiceError(c, err, "create workflow") {
		return
	}

	h.logger.Info("workflow created",
		zap.String("definition_id", result.ID),
		zap.String("trigger", string(result.Trigger)),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.Created(c, result, "workflow created successfully")
}

// ListWorkflows godoc
// @Summary List workflow definitions
// @Description Lists definitions grouped by trigger and ordered by priority
// @Tags Workflows
// @Produce json
// @Param trigger query string false "Filter by trigger"
// @Param active query string false "Filter by active flag" Enums(true, false)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Success 200 {object} models.WorkflowListResponse
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/workflows [get]
func (h *WorkflowHandler) ListWorkflows(c *gin.Context) {
	var query models.ListWorkflowsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err.Error())
		return
	}

	result, err := h.service.ListDefinitions(c.Request.Context(), query)
	if h.handleServiceError(c, err, "list workflows") {
		return
	}

	response.OK(c, result)
}

// GetWorkflow godoc
// @Summary Get a workflow definition
// @Tags Workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} models.WorkflowResponse
// @Failure 404 {object} response.ErrorResponse "Workflow not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/workflows/{id} [get]
func (h *WorkflowHandler) GetWorkflow(c *gin.Context) {
	result, err := h.service.GetDefinition(c.Request.Context(), c.Param("id"))
	if h.handleServiceError(c, err, "get workflow") {
		return
	}

	response.OK(c, result)
}

// UpdateWorkflow godoc
// @Summary Update a workflow definition
// @Description Applies a partial update. Changing the trigger, logic or schedule bumps the version.
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param workflow body models.UpdateWorkflowRequest true "Fields to update"
// @Success 200 {object} models.WorkflowResponse
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 404 {object} response.ErrorResponse "Workflow not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/workflows/{id} [put]
func (h *WorkflowHandler) UpdateWorkflow(c *gin.Context) {
	var req models.UpdateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	id := c.Param("id")
	result, err := h.service.UpdateDefinition(c.Request.Context(), id, req)
	if h.handleServiceError(c, err, "update workflow") {
		return
	}

	h.logger.Info("workflow updated",
		zap.String("definition_id", id),
		zap.Int("version", result.Version),
		zap.String("admin_user", middleware.GetAdminUser(c)),
	)
	response.OK(c, result)
}

// DeleteWorkflow godoc
// @Summary Delete a workflow definition
// @Description Removes the definition. Its execution history is kept.
// @Tags Workflows
// @Param id path string true "Workflow ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.ErrorResponse "Workflow not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/workflows/{id} [delete]
func (h *WorkflowHandler) DeleteWorkflow(c *gin.Context) {
	id := c.Param("id")
	if h.handleServiceError(c, h.service.DeleteDefinition(c.Request.Context(), id), "delete workflow") {
		return
	}

	h.logger.Info("workflow deleted",
		zap.String("definition_id", id),
		zap.String("admin_user", middleware.GetAdminUser(c)),
	)
	response.NoContent(c)
}

// TestWorkflow godoc
// @Summary Test-run a workflow definition
// @Description Evaluates the definition against the posted event context. The run is recorded as a test execution and does not count towards the execution statistics. Actions are returned but not published.
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param context body object false "Event context"
// @Success 200 {object} models.TestRunResponse
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 404 {object} response.ErrorResponse "Workflow not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/workflows/{id}/test [post]
func (h *WorkflowHandler) TestWorkflow(c *gin.Context) {
	eventCtx, ok := bindEventContext(c)
	if !ok {
		return
	}

	result, err := h.service.TestDefinition(c.Request.Context(), c.Param("id"), eventCtx)
	if h.handleServiceError(c, err, "test workflow") {
		return
	}

	response.OK(c, result)
}

// handleServiceError writes the error response and reports whether err was non-nil.
func (h *WorkflowHandler) handleServiceError(c *gin.Context, err error, operation string) bool {
	if err == nil {
		return false
	}

	var validationErr workflows.ValidationError
	switch {
	case errors.As(err, &validationErr):
		var details interface{}
		if len(validationErr.Details) > 0 {
			details = validationErr.Details
		}
		response.BadRequest(c, validationErr.Message(), details)
	case errors.Is(err, storage.ErrDefinitionNotFound):
		response.NotFound(c, "workflow not found")
	default:
		h.logger.Error(operation+" failed",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "internal server error")
	}
	return true
}

// bindEventContext reads an optional JSON object body. An empty body is an
// empty context.
func bindEventContext(c *gin.Context) (models.EventContext, bool) {
	eventCtx := models.EventContext{}
	if err := c.ShouldBindJSON(&eventCtx); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid event context", err.Error())
		return nil, false
	}
	if eventCtx == nil {
		eventCtx = models.EventContext{}
	}
	return eventCtx, true
}
