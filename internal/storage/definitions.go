package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// ErrDefinitionNotFound is returned when a workflow definition is not found.
var ErrDefinitionNotFound = errors.New("workflow definition not found")

const definitionColumns = `id, seq, name, description, trigger_name, priority, is_active, version, logic,
	schedule, timezone, execution_count, last_executed_at, created_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateDefinition inserts a workflow definition.
func (c *MySQLClient) CreateDefinition(ctx context.Context, def *models.WorkflowDefinition) error {
	res, err := c.db.ExecContext(
		ctx,
		`INSERT INTO workflow_definitions
			(id, name, description, trigger_name, priority, is_active, version, logic, schedule, timezone, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		def.ID,
		def.Name,
		nullString(def.Description),
		def.Trigger,
		def.Priority,
		def.IsActive,
		def.Version,
		string(def.Logic),
		nullString(def.Schedule),
		nullString(def.Timezone),
		nullString(def.CreatedBy),
		def.CreatedAt,
		def.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert workflow definition: %w", err)
	}

	if seq, err := res.LastInsertId(); err == nil {
		def.Seq = seq
	}
	return nil
}

// GetDefinition fetches a workflow definition by id.
func (c *MySQLClient) GetDefinition(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT `+definitionColumns+` FROM workflow_definitions WHERE id = ?`,
		id,
	)

	def, err := scanDefinition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDefinitionNotFound
		}
		return nil, fmt.Errorf("scan workflow definition: %w", err)
	}
	return def, nil
}

// ListDefinitions returns definitions matching the filters and the total count.
func (c *MySQLClient) ListDefinitions(ctx context.Context, query models.ListWorkflowsQuery) ([]models.WorkflowDefinition, int64, error) {
	criteria := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if query.Trigger != "" {
		criteria = append(criteria, "trigger_name = ?")
		args = append(args, query.Trigger)
	}
	if query.Active != "" {
		criteria = append(criteria, "is_active = ?")
		args = append(args, query.Active == "true")
	}

	where := ""
	if len(criteria) > 0 {
		where = "WHERE " + strings.Join(criteria, " AND ")
	}

	var total int64
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workflow_definitions "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count workflow definitions: %w", err)
	}

	page, limit := models.NormalizePage(query.Page, query.Limit)
	argsWithPagination := append(append([]any{}, args...), limit, (page-1)*limit)

	rows, err := c.db.QueryContext(
		ctx,
		`SELECT `+definitionColumns+` FROM workflow_definitions `+where+`
		 ORDER BY trigger_name ASC, priority DESC, seq ASC
		 LIMIT ? OFFSET ?`,
		argsWithPagination...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query workflow definitions: %w", err)
	}
	defer rows.Close()

	defs, err := scanDefinitions(rows)
	if err != nil {
		return nil, 0, err
	}
	return defs, total, nil
}

// ListActiveDefinitions returns the active definitions bound to trigger in
// dispatch order: priority descending, then insertion order.
func (c *MySQLClient) ListActiveDefinitions(ctx context.Context, trigger models.Trigger) ([]models.WorkflowDefinition, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT `+definitionColumns+` FROM workflow_definitions
		 WHERE trigger_name = ? AND is_active = TRUE
		 ORDER BY priority DESC, seq ASC`,
		trigger,
	)
	if err != nil {
		return nil, fmt.Errorf("query active workflow definitions: %w", err)
	}
	defer rows.Close()

	return scanDefinitions(rows)
}

// UpdateDefinition updates the given columns of a workflow definition.
func (c *MySQLClient) UpdateDefinition(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	setParts := make([]string, 0, len(updates)+1)
	args := make([]any, 0, len(updates)+1)

	for column, value := range updates {
		setParts = append(setParts, fmt.Sprintf("%s = ?", column))
		args = append(args, value)
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf("UPDATE workflow_definitions SET %s WHERE id = ?", strings.Join(setParts, ", "))
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update workflow definition: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	// Open enables clientFoundRows, so an update that changes nothing still
	// counts the row.
	if rowsAffected == 0 {
		return ErrDefinitionNotFound
	}

	return nil
}

// DeleteDefinition removes a workflow definition. Execution records are kept.
func (c *MySQLClient) DeleteDefinition(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, "DELETE FROM workflow_definitions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workflow definition: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrDefinitionNotFound
	}

	return nil
}

// IncrementExecutionCount bumps the usage counter and last run timestamp.
func (c *MySQLClient) IncrementExecutionCount(ctx context.Context, id string, executedAt time.Time) error {
	res, err := c.db.ExecContext(
		ctx,
		`UPDATE workflow_definitions
		 SET execution_count = execution_count + 1, last_executed_at = ?
		 WHERE id = ?`,
		executedAt,
		id,
	)
	if err != nil {
		return fmt.Errorf("increment execution count: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrDefinitionNotFound
	}
	return nil
}

func scanDefinitions(rows *sql.Rows) ([]models.WorkflowDefinition, error) {
	defs := make([]models.WorkflowDefinition, 0)
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workflow definition row: %w", err)
		}
		defs = append(defs, *def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workflow definitions: %w", err)
	}
	return defs, nil
}

func scanDefinition(row rowScanner) (*models.WorkflowDefinition, error) {
	var (
		def            models.WorkflowDefinition
		description    sql.NullString
		logic          string
		schedule       sql.NullString
		timezone       sql.NullString
		lastExecutedAt sql.NullTime
		createdBy      sql.NullString
	)

	if err := row.Scan(
		&def.ID,
		&def.Seq,
		&def.Name,
		&description,
		&def.Trigger,
		&def.Priority,
		&def.IsActive,
		&def.Version,
		&logic,
		&schedule,
		&timezone,
		&def.ExecutionCount,
		&lastExecutedAt,
		&createdBy,
		&def.CreatedAt,
		&def.UpdatedAt,
	); err != nil {
		return nil, err
	}

	def.Description = description.String
	def.Logic = jsonRawMessage(logic)
	def.Schedule = schedule.String
	def.Timezone = timezone.String
	def.CreatedBy = createdBy.String
	if lastExecutedAt.Valid {
		t := lastExecutedAt.Time
		def.LastExecutedAt = &t
	}
	return &def, nil
}

func jsonRawMessage(value string) json.RawMessage {
	if value == "" {
		return nil
	}
	return json.RawMessage(value)
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
