package handlers

import (
	"errors"

	"github.com/dhima/backoffice-workflows/internal/api/response"
	"github.com/dhima/backoffice-workflows/internal/logging"
	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExecutionHandler handles execution audit log queries.
type ExecutionHandler struct {
	service ExecutionService
	logger  logging.Logger
}

// NewExecutionHandler creates a new execution handler.
func NewExecutionHandler(service ExecutionService, logger logging.Logger) *ExecutionHandler {
	return &ExecutionHandler{
		service: service,
		logger:  logger.With(zap.String("handler", "execution")),
	}
}

// ListExecutions godoc
// @Summary List workflow executions
// @Description Retrieves execution records, newest first, with filtering and pagination
// @Tags Executions
// @Produce json
// @Param definition_id query string false "Filter by workflow ID"
// @Param trigger query string false "Filter by trigger"
// @Param status query string false "Filter by status" Enums(success, failure)
// @Param is_test_run query string false "Filter test runs" Enums(true, false)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Success 200 {object} models.ExecutionListResponse
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/executions [get]
func (h *ExecutionHandler) ListExecutions(c *gin.Context) {
	var query models.ListExecutionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("invalid list executions query",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid query parameters", err.Error())
		return
	}

	result, err := h.service.QueryExecutions(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list executions",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "internal server error")
		return
	}

	response.OK(c, result)
}

// GetExecution godoc
// @Summary Get a workflow execution
// @Description Retrieves one execution record including its context, actions and error message
// @Tags Executions
// @Produce json
// @Param id path string true "Execution ID"
// @Success 200 {object} models.ExecutionResponse
// @Failure 404 {object} response.ErrorResponse "Execution not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/executions/{id} [get]
func (h *ExecutionHandler) GetExecution(c *gin.Context) {
	id := c.Param("id")

	result, err := h.service.GetExecution(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrExecutionNotFound) {
			response.NotFound(c, "execution not found")
			return
		}
		h.logger.Error("failed to get execution",
			zap.String("execution_id", id),
			zap.Error(err),
		)
		response.InternalServerError(c, "internal server error")
		return
	}

	response.OK(c, result)
}
