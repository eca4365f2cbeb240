// Package dispatch evaluates the workflow definitions bound to a trigger and
// records one execution per evaluated definition.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/logic"
	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/pkg/clock"
)

// ErrUnknownTrigger is returned when a dispatch names a trigger outside the catalog.
var ErrUnknownTrigger = errors.New("unknown trigger")

// Outcome is the result of evaluating a single definition.
type Outcome struct {
	ExecutionID string
	Status      models.ExecutionStatus
	Matched     bool
	Actions     []models.Action
	Err         error
}

// Dispatcher runs workflow definitions against business event contexts.
type Dispatcher struct {
	definitions DefinitionStore
	executions  ExecutionStore
	clock       clock.Clock
	logger      *zap.Logger
}

// NewDispatcher creates a dispatcher using the real clock.
func NewDispatcher(definitions DefinitionStore, executions ExecutionStore, logger *zap.Logger) *Dispatcher {
	return NewDispatcherWithClock(definitions, executions, clock.New(), logger)
}

// NewDispatcherWithClock creates a dispatcher with an injected clock.
func NewDispatcherWithClock(definitions DefinitionStore, executions ExecutionStore, clk clock.Clock, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		definitions: definitions,
		executions:  executions,
		clock:       clk,
		logger:      logger,
	}
}

// Dispatch evaluates every active definition bound to trigger, highest
// priority first, and returns the actions they produced in that order.
// A failing definition is recorded and skipped. Only an unknown trigger or a
// failure to load definitions is returned as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, trigger models.Trigger, eventCtx models.EventContext) ([]models.Action, error) {
	if !trigger.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrigger, trigger)
	}

	defs, err := d.definitions.ListActiveDefinitions(ctx, trigger)
	if err != nil {
		d.logger.Error("failed to load workflow definitions",
			zap.String("trigger", string(trigger)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to load workflow definitions: %w", err)
	}

	return d.DispatchDefinitions(ctx, trigger, defs, eventCtx), nil
}

// DispatchDefinitions evaluates an explicit set of definitions. Inactive
// definitions are skipped.
func (d *Dispatcher) DispatchDefinitions(ctx context.Context, trigger models.Trigger, defs []models.WorkflowDefinition, eventCtx models.EventContext) []models.Action {
	actions := make([]models.Action, 0)
	if len(defs) == 0 {
		return actions
	}

	ordered := make([]models.WorkflowDefinition, 0, len(defs))
	for _, def := range defs {
		if def.IsActive {
			ordered = append(ordered, def)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	failed := 0
	for i := range ordered {
		outcome := d.run(ctx, trigger, &ordered[i], eventCtx, false)
		if outcome.Err != nil {
			failed++
			continue
		}
		actions = append(actions, outcome.Actions...)
	}

	d.logger.Info("dispatch completed",
		zap.String("trigger", string(trigger)),
		zap.Int("definitions", len(ordered)),
		zap.Int("failed", failed),
		zap.Int("actions", len(actions)))

	return actions
}

// TestDefinition evaluates a single definition and records the run as a test
// run. The execution counter is left untouched.
func (d *Dispatcher) TestDefinition(ctx context.Context, def *models.WorkflowDefinition, eventCtx models.EventContext) Outcome {
	return d.run(ctx, def.Trigger, def, eventCtx, true)
}

func (d *Dispatcher) run(ctx context.Context, trigger models.Trigger, def *models.WorkflowDefinition, eventCtx models.EventContext, isTestRun bool) Outcome {
	startedAt := d.clock.Now().UTC()
	executionID := uuid.New().String()

	result, evalErr := evaluate(def, eventCtx)
	completedAt := d.clock.Now().UTC()

	outcome := Outcome{
		ExecutionID: executionID,
		Status:      models.ExecutionStatusSuccess,
		Matched:     result.Matched,
		Actions:     make([]models.Action, 0, len(result.Actions)),
		Err:         evalErr,
	}

	exec := &models.WorkflowExecution{
		ID:                executionID,
		DefinitionID:      def.ID,
		DefinitionVersion: def.Version,
		Trigger:           trigger,
		Context:           d.marshal(eventCtx, def.ID),
		Status:            models.ExecutionStatusSuccess,
		Matched:           result.Matched,
		StartedAt:         startedAt,
		CompletedAt:       completedAt,
		DurationMs:        completedAt.Sub(startedAt).Milliseconds(),
		IsTestRun:         isTestRun,
		CreatedAt:         completedAt,
	}

	if evalErr != nil {
		msg := evalErr.Error()
		outcome.Status = models.ExecutionStatusFailure
		outcome.Matched = false
		exec.Status = models.ExecutionStatusFailure
		exec.Matched = false
		exec.ErrorMessage = &msg
		exec.Actions = json.RawMessage("[]")

		d.logger.Warn("workflow evaluation failed",
			zap.String("definition_id", def.ID),
			zap.String("execution_id", executionID),
			zap.String("trigger", string(trigger)),
			zap.Error(evalErr))
	} else {
		for _, a := range result.Actions {
			outcome.Actions = append(outcome.Actions, models.Action{
				Name:           a.Name,
				Params:         a.Params,
				DefinitionID:   def.ID,
				DefinitionName: def.Name,
				ExecutionID:    executionID,
			})
		}
		exec.Actions = d.marshal(result.Actions, def.ID)
	}

	if err := d.executions.CreateExecution(ctx, exec); err != nil {
		d.logger.Error("failed to record workflow execution",
			zap.String("definition_id", def.ID),
			zap.String("execution_id", executionID),
			zap.Error(err))
	}

	if evalErr == nil && !isTestRun {
		if err := d.definitions.IncrementExecutionCount(ctx, def.ID, completedAt); err != nil {
			d.logger.Error("failed to increment execution count",
				zap.String("definition_id", def.ID),
				zap.Error(err))
		}
	}

	return outcome
}

// evaluate parses and runs the definition's logic, turning panics into errors.
func evaluate(def *models.WorkflowDefinition, eventCtx models.EventContext) (result logic.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = logic.Result{}
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()

	tree, err := logic.Parse(def.Logic)
	if err != nil {
		return logic.Result{}, fmt.Errorf("invalid logic: %w", err)
	}

	data := map[string]any(eventCtx)
	if data == nil {
		data = map[string]any{}
	}
	return tree.Evaluate(data)
}

func (d *Dispatcher) marshal(v any, definitionID string) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		d.logger.Warn("failed to encode execution payload",
			zap.String("definition_id", definitionID),
			zap.Error(err))
		return nil
	}
	return b
}
