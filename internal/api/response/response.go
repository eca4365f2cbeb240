// Package response renders the JSON envelope shared by every API route:
// {data, message} on success and {error, details, trace_id} on failure.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhima/backoffice-workflows/internal/api/middleware"
)

// SuccessResponse represents a successful API response.
type SuccessResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error API response.
type ErrorResponse struct {
	Error   string `json:"error" example:"workflow definition not found"`
	Details any    `json:"details,omitempty"`
	TraceID string `json:"trace_id,omitempty" example:"8b0e6a0c-3f57-4a43-9b57-0c1d5e3f8f21"`
}

// Success writes data with statusCode.
func Success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, SuccessResponse{Data: data, Message: message})
}

// Error writes an error envelope tagged with the request's trace id.
func Error(c *gin.Context, statusCode int, err string, details any) {
	c.JSON(statusCode, ErrorResponse{
		Error:   err,
		Details: details,
		TraceID: GetRequestID(c),
	})
}

func OK(c *gin.Context, data any) { Success(c, http.StatusOK, data, "") }

func Created(c *gin.Context, data any, message string) {
	Success(c, http.StatusCreated, data, message)
}

func NoContent(c *gin.Context) { c.Status(http.StatusNoContent) }

func BadRequest(c *gin.Context, err string, details any) {
	Error(c, http.StatusBadRequest, err, details)
}

func NotFound(c *gin.Context, err string) { Error(c, http.StatusNotFound, err, nil) }

func InternalServerError(c *gin.Context, err string) {
	Error(c, http.StatusInternalServerError, err, nil)
}

// BadGateway reports that a downstream dependency, such as the action
// broker, rejected a write the request depended on.
func BadGateway(c *gin.Context, err string, details any) {
	Error(c, http.StatusBadGateway, err, details)
}

func ServiceUnavailable(c *gin.Context, err string) {
	Error(c, http.StatusServiceUnavailable, err, nil)
}

// GetRequestID returns the request id set by the RequestID middleware. Routes
// mounted without it get a fresh id, stored so later calls agree.
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Set(middleware.RequestIDKey, id)
	return id
}
