package handlers

import (
	"errors"

	"github.com/dhima/backoffice-workflows/internal/api/response"
	"github.com/dhima/backoffice-workflows/internal/dispatch"
	"github.com/dhima/backoffice-workflows/internal/logging"
	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TriggerHandler exposes the trigger catalog and the synchronous dispatch path.
type TriggerHandler struct {
	logger     logging.Logger
	dispatcher Dispatcher
	publisher  ActionPublisher
}

// NewTriggerHandler creates a new trigger handler.
func NewTriggerHandler(logger logging.Logger, dispatcher Dispatcher, publisher ActionPublisher) *TriggerHandler {
	return &TriggerHandler{
		logger:     logger.With(zap.String("handler", "trigger")),
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// ListTriggers godoc
// @Summary List triggers
// @Description Returns every business event a workflow can be bound to
// @Tags Triggers
// @Produce json
// @Success 200 {array} models.TriggerInfo
// @Router /api/v1/triggers [get]
func (h *TriggerHandler) ListTriggers(c *gin.Context) {
	response.OK(c, models.TriggerCatalog())
}

// DispatchTrigger godoc
// @Summary Dispatch a business event
// @Description Evaluates every active workflow bound to the trigger against the posted context, records one execution per workflow and publishes the resulting actions.
// @Tags Triggers
// @Accept json
// @Produce json
// @Param trigger path string true "Trigger name" example(order-created)
// @Param context body object false "Event context"
// @Success 200 {object} models.DispatchResponse
// @Failure 400 {object} response.ErrorResponse "Unknown trigger or invalid context"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Failure 502 {object} response.ErrorResponse "Actions could not be published"
// @Router /api/v1/triggers/{trigger}/dispatch [post]
func (h *TriggerHandler) DispatchTrigger(c *gin.Context) {
	trigger := models.Trigger(c.Param("trigger"))
	requestID := response.GetRequestID(c)

	eventCtx, ok := bindEventContext(c)
	if !ok {
		return
	}

	actions, err := h.dispatcher.Dispatch(c.Request.Context(), trigger, eventCtx)
	if err != nil {
		if errors.Is(err, dispatch.ErrUnknownTrigger) {
			response.BadRequest(c, "unknown trigger", string(trigger))
			return
		}
		h.logger.Error("dispatch failed",
			zap.String("trigger", string(trigger)),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		response.InternalServerError(c, "internal server error")
		return
	}

	if err := h.publisher.PublishActions(c.Request.Context(), trigger, actions); err != nil {
		h.logger.Error("failed to publish dispatched actions",
			zap.String("trigger", string(trigger)),
			zap.Int("actions", len(actions)),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		response.BadGateway(c, "failed to publish actions", err.Error())
		return
	}

	h.logger.Info("trigger dispatched",
		zap.String("trigger", string(trigger)),
		zap.Int("actions", len(actions)),
		zap.String("request_id", requestID),
	)
	response.OK(c, models.DispatchResponse{Trigger: trigger, Actions: actions})
}
