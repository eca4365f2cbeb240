package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/logic"
	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/pkg/clock"
)

// Service encapsulates workflow definition business logic.
type Service struct {
	store  DefinitionStore
	tester Tester
	clock  clock.Clock
	logger *zap.Logger
}

// NewService creates a workflow service.
func NewService(store DefinitionStore, tester Tester, logger *zap.Logger) *Service {
	return NewServiceWithClock(store, tester, clock.New(), logger)
}

// NewServiceWithClock creates a workflow service with an injected clock.
func NewServiceWithClock(store DefinitionStore, tester Tester, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		tester: tester,
		clock:  clk,
		logger: logger,
	}
}

// CreateDefinition validates and persists a new workflow definition.
func (s *Service) CreateDefinition(ctx context.Context, req models.CreateWorkflowRequest) (*models.WorkflowResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, NewValidationError("name is required")
	}
	if !req.Trigger.IsValid() {
		return nil, NewValidationError("unknown trigger: %s", req.Trigger)
	}

	logicJSON, err := validateLogic(req.Logic)
	if err != nil {
		return nil, err
	}

	schedule := strings.TrimSpace(req.Schedule)
	timezone := strings.TrimSpace(req.Timezone)
	if err := validateSchedule(req.Trigger, schedule, timezone); err != nil {
		return nil, err
	}
	if req.Trigger == models.TriggerScheduled && timezone == "" {
		timezone = "UTC"
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := s.clock.Now().UTC()
	def := models.WorkflowDefinition{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Trigger:     req.Trigger,
		Priority:    req.Priority,
		IsActive:    active,
		Version:     1,
		Logic:       logicJSON,
		Schedule:    schedule,
		Timezone:    timezone,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateDefinition(ctx, &def); err != nil {
		return nil, fmt.Errorf("create workflow definition: %w", err)
	}

	s.logger.Info("workflow definition created",
		zap.String("definition_id", def.ID),
		zap.String("trigger", string(def.Trigger)),
		zap.Int("priority", def.Priority),
		zap.String("created_by", def.CreatedBy))

	stored, err := s.store.GetDefinition(ctx, def.ID)
	if err != nil {
		return nil, err
	}

	resp := s.buildResponse(stored)
	return &resp, nil
}

// ListDefinitions returns definitions along with pagination metadata.
func (s *Service) ListDefinitions(ctx context.Context, query models.ListWorkflowsQuery) (models.WorkflowListResponse, error) {
	query.Page, query.Limit = models.NormalizePage(query.Page, query.Limit)

	defs, total, err := s.store.ListDefinitions(ctx, query)
	if err != nil {
		return models.WorkflowListResponse{}, fmt.Errorf("list workflow definitions: %w", err)
	}

	responses := make([]models.WorkflowResponse, 0, len(defs))
	for i := range defs {
		responses = append(responses, s.buildResponse(&defs[i]))
	}

	return models.WorkflowListResponse{
		Workflows:  responses,
		Pagination: models.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// GetDefinition fetches a single definition.
func (s *Service) GetDefinition(ctx context.Context, id string) (*models.WorkflowResponse, error) {
	def, err := s.store.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.buildResponse(def)
	return &resp, nil
}

// UpdateDefinition applies a partial update. The version is bumped whenever
// the logic, trigger, schedule or timezone actually change.
func (s *Service) UpdateDefinition(ctx context.Context, id string, req models.UpdateWorkflowRequest) (*models.WorkflowResponse, error) {
	current, err := s.store.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	behaviorChanged := false

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewValidationError("name cannot be empty")
		}
		updates["name"] = name
	}

	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}

	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	trigger := current.Trigger
	if req.Trigger != nil && *req.Trigger != current.Trigger {
		if !req.Trigger.IsValid() {
			return nil, NewValidationError("unknown trigger: %s", *req.Trigger)
		}
		trigger = *req.Trigger
		updates["trigger_name"] = string(trigger)
		behaviorChanged = true
	}

	if len(req.Logic) > 0 {
		logicJSON, err := validateLogic(req.Logic)
		if err != nil {
			return nil, err
		}
		if !sameJSON(current.Logic, logicJSON) {
			updates["logic"] = string(logicJSON)
			behaviorChanged = true
		}
	}

	schedule := current.Schedule
	if req.Schedule != nil {
		schedule = strings.TrimSpace(*req.Schedule)
	}
	timezone := current.Timezone
	if req.Timezone != nil {
		timezone = strings.TrimSpace(*req.Timezone)
	}
	if trigger != models.TriggerScheduled && req.Schedule == nil {
		// moving away from the scheduled trigger drops the schedule
		schedule, timezone = "", ""
	}
	if trigger == models.TriggerScheduled && timezone == "" {
		timezone = "UTC"
	}
	if err := validateSchedule(trigger, schedule, timezone); err != nil {
		return nil, err
	}
	if schedule != current.Schedule {
		updates["schedule"] = schedule
		behaviorChanged = true
	}
	if timezone != current.Timezone {
		updates["timezone"] = timezone
		behaviorChanged = true
	}

	if behaviorChanged {
		updates["version"] = current.Version + 1
	}

	if len(updates) > 0 {
		if err := s.store.UpdateDefinition(ctx, id, updates); err != nil {
			return nil, err
		}
		s.logger.Info("workflow definition updated",
			zap.String("definition_id", id),
			zap.Int("fields", len(updates)),
			zap.Bool("version_bumped", behaviorChanged))
	}

	refreshed, err := s.store.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.buildResponse(refreshed)
	return &resp, nil
}

// DeleteDefinition removes the definition. Its execution history is kept.
func (s *Service) DeleteDefinition(ctx context.Context, id string) error {
	if err := s.store.DeleteDefinition(ctx, id); err != nil {
		return err
	}
	s.logger.Info("workflow definition deleted", zap.String("definition_id", id))
	return nil
}

// TestDefinition evaluates a stored definition against eventCtx without
// counting it as a real execution. Inactive definitions can be tested too.
func (s *Service) TestDefinition(ctx context.Context, id string, eventCtx models.EventContext) (*models.TestRunResponse, error) {
	def, err := s.store.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	if eventCtx == nil {
		eventCtx = models.EventContext{}
	}

	outcome := s.tester.TestDefinition(ctx, def, eventCtx)

	resp := &models.TestRunResponse{
		ExecutionID: outcome.ExecutionID,
		Status:      outcome.Status,
		Matched:     outcome.Matched,
		Actions:     outcome.Actions,
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}
	return resp, nil
}

func (s *Service) buildResponse(def *models.WorkflowDefinition) models.WorkflowResponse {
	resp := models.WorkflowResponse{
		ID:             def.ID,
		Name:           def.Name,
		Description:    def.Description,
		Trigger:        def.Trigger,
		Priority:       def.Priority,
		IsActive:       def.IsActive,
		Version:        def.Version,
		Logic:          def.Logic,
		Schedule:       def.Schedule,
		Timezone:       def.Timezone,
		ExecutionCount: def.ExecutionCount,
		LastExecutedAt: def.LastExecutedAt,
		CreatedBy:      def.CreatedBy,
		CreatedAt:      def.CreatedAt,
		UpdatedAt:      def.UpdatedAt,
	}

	if def.Trigger == models.TriggerScheduled && def.IsActive && def.Schedule != "" {
		next, err := NextRun(def)
		if err != nil {
			s.logger.Warn("failed to compute next run",
				zap.String("definition_id", def.ID),
				zap.Error(err))
		} else {
			resp.NextRunAt = &next
		}
	}
	return resp
}

// validateLogic checks a logic blob and returns it compacted for storage.
func validateLogic(raw json.RawMessage) (json.RawMessage, error) {
	if _, err := logic.Parse(raw); err != nil {
		var schemaErr *logic.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			return nil, newValidationErrorWithDetails("invalid logic", schemaErr.Violations)
		case errors.Is(err, logic.ErrEmptyLogic):
			return nil, NewValidationError("logic is required")
		default:
			return nil, NewValidationError("invalid logic: %v", err)
		}
	}
	return compactJSON(raw), nil
}

// sameJSON compares two documents semantically. MySQL reorders object keys
// on storage, so byte comparison is not enough.
func sameJSON(a, b json.RawMessage) bool {
	var left, right any
	if err := json.Unmarshal(a, &left); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &right); err != nil {
		return false
	}
	return reflect.DeepEqual(left, right)
}

func compactJSON(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
