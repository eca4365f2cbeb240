package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhima/backoffice-workflows/internal/logging"
)

type stubPinger struct {
	err      error
	deadline bool
}

func (p *stubPinger) Ping(ctx context.Context) error {
	_, p.deadline = ctx.Deadline()
	return p.err
}

func newHealthRouter(pinger Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(logging.NewNoOpLogger(), pinger).Health)
	return r
}

func TestHealth_WhenDatabaseReachable_ThenReportsUp(t *testing.T) {
	pinger := &stubPinger{}
	r := newHealthRouter(pinger)

	w := doJSON(r, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, HealthResponse{Status: "ok", Service: "backoffice-workflows", Version: "1.0.0", Database: "up"}, body.Data)
	assert.True(t, pinger.deadline, "ping should be bounded by a timeout")
}

func TestHealth_WhenDatabaseUnreachable_ThenReturns503(t *testing.T) {
	r := newHealthRouter(&stubPinger{err: errors.New("connection refused")})

	w := doJSON(r, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "database unreachable", decodeError(t, w).Error)
}
