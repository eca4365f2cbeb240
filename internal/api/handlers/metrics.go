package handlers

import (
	"github.com/dhima/backoffice-workflows/internal/api/response"
	"github.com/dhima/backoffice-workflows/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsHandler handles metrics requests.
type MetricsHandler struct {
	logger  logging.Logger
	service ExecutionService
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(logger logging.Logger, service ExecutionService) *MetricsHandler {
	return &MetricsHandler{logger: logger, service: service}
}

// MetricsResponse represents the metrics response. Test runs are excluded
// from the execution counts.
type MetricsResponse struct {
	DefinitionsTotal    int64   `json:"definitions_total" example:"32"`
	DefinitionsActive   int64   `json:"definitions_active" example:"27"`
	ExecutionsSuccess   int64   `json:"executions_success" example:"1250"`
	ExecutionsFailure   int64   `json:"executions_failure" example:"4"`
	AvgExecutionLatency float64 `json:"avg_execution_latency_ms" example:"2.5"`
} // @name MetricsResponse

// Metrics godoc
// @Summary Get dispatcher metrics
// @Description Returns definition counts and execution outcomes
// @Tags System
// @Produce json
// @Success 200 {object} MetricsResponse
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /metrics [get]
func (h *MetricsHandler) Metrics(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to collect metrics", zap.Error(err))
		response.InternalServerError(c, "internal server error")
		return
	}

	response.OK(c, MetricsResponse{
		DefinitionsTotal:    stats.DefinitionsTotal,
		DefinitionsActive:   stats.DefinitionsActive,
		ExecutionsSuccess:   stats.ExecutionsSuccess,
		ExecutionsFailure:   stats.ExecutionsFailure,
		AvgExecutionLatency: stats.AvgDurationMs,
	})
}
