package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// ErrExecutionNotFound is returned when an execution record is not found.
var ErrExecutionNotFound = errors.New("workflow execution not found")

const executionColumns = `id, definition_id, definition_version, trigger_name, context, status, matched,
	actions, error_message, started_at, completed_at, duration_ms, is_test_run, created_at`

// CreateExecution inserts an execution record. Records are never updated.
func (c *MySQLClient) CreateExecution(ctx context.Context, exec *models.WorkflowExecution) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO workflow_executions (`+executionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exec.ID,
		exec.DefinitionID,
		exec.DefinitionVersion,
		exec.Trigger,
		nullJSON(exec.Context),
		exec.Status,
		exec.Matched,
		nullJSON(exec.Actions),
		exec.ErrorMessage,
		exec.StartedAt,
		exec.CompletedAt,
		exec.DurationMs,
		exec.IsTestRun,
		exec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workflow execution: %w", err)
	}
	return nil
}

// GetExecution retrieves a single execution record by id.
func (c *MySQLClient) GetExecution(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+executionColumns+` FROM workflow_executions WHERE id = ?`, id)

	exec, err := scanExecution(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExecutionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow execution: %w", err)
	}
	return exec, nil
}

// ListExecutions retrieves execution records with filtering and pagination,
// newest first. Returns the page and the total count.
func (c *MySQLClient) ListExecutions(ctx context.Context, query models.ListExecutionsQuery) ([]models.WorkflowExecution, int64, error) {
	whereClauses := []string{}
	args := []any{}

	if query.DefinitionID != "" {
		whereClauses = append(whereClauses, "definition_id = ?")
		args = append(args, query.DefinitionID)
	}
	if query.Trigger != "" {
		whereClauses = append(whereClauses, "trigger_name = ?")
		args = append(args, query.Trigger)
	}
	if query.Status != "" {
		whereClauses = append(whereClauses, "status = ?")
		args = append(args, query.Status)
	}
	if query.IsTestRun != "" {
		whereClauses = append(whereClauses, "is_test_run = ?")
		args = append(args, query.IsTestRun == "true")
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var totalCount int64
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workflow_executions "+whereClause, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count workflow executions: %w", err)
	}

	page, limit := models.NormalizePage(query.Page, query.Limit)
	args = append(args, limit, (page-1)*limit)

	rows, err := c.db.QueryContext(
		ctx,
		`SELECT `+executionColumns+` FROM workflow_executions `+whereClause+`
		 ORDER BY created_at DESC, id ASC
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workflow executions: %w", err)
	}
	defer rows.Close()

	executions := []models.WorkflowExecution{}
	for rows.Next() {
		exec, err := scanExecution(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan workflow execution: %w", err)
		}
		executions = append(executions, *exec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating workflow executions: %w", err)
	}

	return executions, totalCount, nil
}

// ExecutionStats aggregates definition and execution counts.
func (c *MySQLClient) ExecutionStats(ctx context.Context) (models.ExecutionStats, error) {
	var stats models.ExecutionStats

	if err := c.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) FROM workflow_definitions`,
	).Scan(&stats.DefinitionsTotal, &stats.DefinitionsActive); err != nil {
		return stats, fmt.Errorf("count workflow definitions: %w", err)
	}

	if err := c.db.QueryRowContext(
		ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failure' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0)
		 FROM workflow_executions
		 WHERE is_test_run = FALSE`,
	).Scan(&stats.ExecutionsSuccess, &stats.ExecutionsFailure, &stats.AvgDurationMs); err != nil {
		return stats, fmt.Errorf("count workflow executions: %w", err)
	}

	return stats, nil
}

func scanExecution(row rowScanner) (*models.WorkflowExecution, error) {
	var (
		exec         models.WorkflowExecution
		contextJSON  sql.NullString
		actions      sql.NullString
		errorMessage sql.NullString
	)

	err := row.Scan(
		&exec.ID,
		&exec.DefinitionID,
		&exec.DefinitionVersion,
		&exec.Trigger,
		&contextJSON,
		&exec.Status,
		&exec.Matched,
		&actions,
		&errorMessage,
		&exec.StartedAt,
		&exec.CompletedAt,
		&exec.DurationMs,
		&exec.IsTestRun,
		&exec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if contextJSON.Valid {
		exec.Context = jsonRawMessage(contextJSON.String)
	}
	if actions.Valid {
		exec.Actions = jsonRawMessage(actions.String)
	}
	if errorMessage.Valid {
		exec.ErrorMessage = &errorMessage.String
	}
	return &exec, nil
}

func nullJSON(value []byte) any {
	if len(value) == 0 {
		return nil
	}
	return string(value)
}
