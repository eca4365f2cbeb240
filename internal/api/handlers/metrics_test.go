package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhima/backoffice-workflows/internal/logging"
	"github.com/dhima/backoffice-workflows/internal/models"
)

func newMetricsRouter(svc *fakeExecutionSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", NewMetricsHandler(logging.NewNoOpLogger(), svc).Metrics)
	return r
}

func TestMetrics_WhenStatsAvailable_ThenMapsEveryCounter(t *testing.T) {
	r := newMetricsRouter(&fakeExecutionSvc{stats: models.ExecutionStats{
		DefinitionsTotal:  12,
		DefinitionsActive: 9,
		ExecutionsSuccess: 1250,
		ExecutionsFailure: 4,
		AvgDurationMs:     2.5,
	}})

	w := doJSON(r, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{
		"definitions_total":        float64(12),
		"definitions_active":       float64(9),
		"executions_success":       float64(1250),
		"executions_failure":       float64(4),
		"avg_execution_latency_ms": 2.5,
	}, body.Data)
}

func TestMetrics_WhenStatsFail_ThenReturns500(t *testing.T) {
	r := newMetricsRouter(&fakeExecutionSvc{statsErr: errors.New("db down")})

	w := doJSON(r, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decodeError(t, w).Error)
}
