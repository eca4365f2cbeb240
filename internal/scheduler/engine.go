package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/internal/workflows"
	"github.com/dhima/backoffice-workflows/pkg/clock"
)

// Engine periodically scans scheduled definitions and dispatches the due ones.
type Engine struct {
	tick       time.Duration
	store      DefinitionStore
	dispatcher Dispatcher
	publisher  ActionPublisher
	logger     *zap.Logger
	clock      clock.Clock
}

// NewEngine constructs a scheduler with the provided polling cadence.
func NewEngine(tick time.Duration, store DefinitionStore, dispatcher Dispatcher, publisher ActionPublisher, logger *zap.Logger) *Engine {
	return NewEngineWithClock(tick, store, dispatcher, publisher, logger, clock.New())
}

// NewEngineWithClock constructs a scheduler with an injected clock.
func NewEngineWithClock(tick time.Duration, store DefinitionStore, dispatcher Dispatcher, publisher ActionPublisher, logger *zap.Logger, clk clock.Clock) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		tick:       tick,
		store:      store,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		clock:      clk,
	}
}

// Run begins the polling loop and blocks until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := e.clock.Ticker(e.tick)
	defer ticker.Stop()

	e.logger.Info("scheduler started", zap.Duration("tick", e.tick))
	for {
		select {
		case <-ticker.C:
			if err := e.processTick(ctx); err != nil {
				e.logger.Error("scheduler tick failed", zap.Error(err))
			}
		case <-ctx.Done():
			e.logger.Info("scheduler stopping")
			return ctx.Err()
		}
	}
}

// processTick dispatches every scheduled definition whose next fire time has
// passed. It returns an error only when definitions cannot be loaded.
func (e *Engine) processTick(ctx context.Context) error {
	defs, err := e.store.ListActiveDefinitions(ctx, models.TriggerScheduled)
	if err != nil {
		return fmt.Errorf("load scheduled definitions: %w", err)
	}

	now := e.clock.Now().UTC()
	fired := 0
	for i := range defs {
		def := defs[i]

		fireAt, err := workflows.NextRun(&def)
		if err != nil {
			e.logger.Warn("skipping definition with invalid schedule",
				zap.String("definition_id", def.ID),
				zap.String("schedule", def.Schedule),
				zap.Error(err))
			continue
		}
		if fireAt.After(now) {
			continue
		}

		e.fire(ctx, def, fireAt)
		fired++
	}

	if fired > 0 {
		e.logger.Info("scheduler tick processed",
			zap.Int("definitions", len(defs)),
			zap.Int("fired", fired))
	}
	return nil
}

func (e *Engine) fire(ctx context.Context, def models.WorkflowDefinition, fireAt time.Time) {
	eventCtx := models.EventContext{
		"scheduled_at":  fireAt.Format(time.RFC3339),
		"definition_id": def.ID,
	}

	actions := e.dispatcher.DispatchDefinitions(ctx, models.TriggerScheduled, []models.WorkflowDefinition{def}, eventCtx)
	if len(actions) == 0 {
		return
	}

	if err := e.publisher.PublishActions(ctx, models.TriggerScheduled, actions); err != nil {
		e.logger.Error("failed to publish scheduled actions",
			zap.String("definition_id", def.ID),
			zap.Int("actions", len(actions)),
			zap.Error(err))
	}
}
