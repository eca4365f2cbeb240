package workflows

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dhima/backoffice-workflows/internal/models"
)

var cronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// CalculateNextFireTime calculates the next fire time for a CRON expression.
// Shared by the definition service (next_run_at) and the scheduler.
//
// Parameters:
//   - cronExpr: CRON expression (e.g., "0 9 * * *" for daily at 9am)
//   - timezone: Timezone name (e.g., "Europe/Vilnius"), empty string defaults to UTC
//   - from: Calculate next fire time from this timestamp
//
// Returns the next fire time in UTC.
func CalculateNextFireTime(cronExpr string, timezone string, from time.Time) (time.Time, error) {
	loc, err := resolveTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}

	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}

	return schedule.Next(from.In(loc)).UTC(), nil
}

// NextRun returns when a scheduled definition fires next, counting from its
// last execution or, if it never ran, from its creation.
func NextRun(def *models.WorkflowDefinition) (time.Time, error) {
	from := def.CreatedAt
	if def.LastExecutedAt != nil {
		from = *def.LastExecutedAt
	}
	return CalculateNextFireTime(def.Schedule, def.Timezone, from)
}

func validateSchedule(trigger models.Trigger, schedule, timezone string) error {
	if trigger != models.TriggerScheduled {
		if schedule != "" {
			return NewValidationError("schedule is only allowed for the %s trigger", models.TriggerScheduled)
		}
		return nil
	}

	if schedule == "" {
		return NewValidationError("schedule is required for the %s trigger", models.TriggerScheduled)
	}
	if _, err := resolveTimezone(timezone); err != nil {
		return NewValidationError("invalid timezone: %v", err)
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return NewValidationError("invalid cron expression: %v", err)
	}
	return nil
}

func resolveTimezone(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", tz, err)
	}
	return loc, nil
}
