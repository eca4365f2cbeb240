package executions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// Service provides read access to the execution audit log.
type Service struct {
	store  ExecutionStore
	logger *zap.Logger
}

// NewService creates a new execution service.
func NewService(store ExecutionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// QueryExecutions retrieves execution records with filtering and pagination.
func (s *Service) QueryExecutions(ctx context.Context, query models.ListExecutionsQuery) (models.ExecutionListResponse, error) {
	query.Page, query.Limit = models.NormalizePage(query.Page, query.Limit)

	records, totalCount, err := s.store.ListExecutions(ctx, query)
	if err != nil {
		s.logger.Error("failed to query workflow executions",
			zap.String("definition_id", query.DefinitionID),
			zap.String("trigger", query.Trigger),
			zap.Error(err))
		return models.ExecutionListResponse{}, fmt.Errorf("failed to query workflow executions: %w", err)
	}

	responses := make([]models.ExecutionResponse, 0, len(records))
	for i := range records {
		responses = append(responses, BuildResponse(&records[i]))
	}

	s.logger.Debug("queried workflow executions",
		zap.Int("count", len(records)),
		zap.Int64("total", totalCount),
		zap.Int("page", query.Page))

	return models.ExecutionListResponse{
		Executions: responses,
		Pagination: models.NewPagination(query.Page, query.Limit, totalCount),
	}, nil
}

// GetExecution retrieves a single execution record by ID.
func (s *Service) GetExecution(ctx context.Context, id string) (*models.ExecutionResponse, error) {
	record, err := s.store.GetExecution(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := BuildResponse(record)
	return &resp, nil
}

// Stats returns aggregate counts for the metrics endpoint.
func (s *Service) Stats(ctx context.Context) (models.ExecutionStats, error) {
	stats, err := s.store.ExecutionStats(ctx)
	if err != nil {
		return models.ExecutionStats{}, fmt.Errorf("failed to load execution stats: %w", err)
	}
	return stats, nil
}

// BuildResponse maps a stored execution record to its API shape.
func BuildResponse(record *models.WorkflowExecution) models.ExecutionResponse {
	return models.ExecutionResponse{
		ID:                record.ID,
		DefinitionID:      record.DefinitionID,
		DefinitionVersion: record.DefinitionVersion,
		Trigger:           record.Trigger,
		Context:           record.Context,
		Status:            record.Status,
		Matched:           record.Matched,
		Actions:           record.Actions,
		ErrorMessage:      record.ErrorMessage,
		StartedAt:         record.StartedAt,
		CompletedAt:       record.CompletedAt,
		DurationMs:        record.DurationMs,
		IsTestRun:         record.IsTestRun,
		CreatedAt:         record.CreatedAt,
	}
}
