package workflows

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dhima/backoffice-workflows/internal/models"
)

func TestCalculateNextFireTime_ValidUTC(t *testing.T) {
	from := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	next, err := CalculateNextFireTime("*/5 * * * *", "", from)
	assert.NoError(t, err)
	// Next multiple of 5 minutes: 03:05
	assert.Equal(t, time.Date(2025, 1, 2, 3, 5, 0, 0, time.UTC), next)
}

func TestCalculateNextFireTime_Timezone(t *testing.T) {
	from := time.Date(2025, 1, 2, 7, 0, 0, 0, time.UTC) // 09:00 in Vilnius (UTC+2)
	next, err := CalculateNextFireTime("0 10 * * *", "Europe/Vilnius", from)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC), next)
}

func TestCalculateNextFireTime_Descriptor(t *testing.T) {
	from := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	next, err := CalculateNextFireTime("@daily", "", from)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), next)
}

func TestCalculateNextFireTime_InvalidCron(t *testing.T) {
	_, err := CalculateNextFireTime("invalid", "", time.Now())
	assert.Error(t, err)
}

func TestCalculateNextFireTime_InvalidTimezone(t *testing.T) {
	_, err := CalculateNextFireTime("* * * * *", "Mars/Olympus", time.Now())
	assert.Error(t, err)
}

func TestNextRun_UsesLastExecutionThenCreation(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)
	def := &models.WorkflowDefinition{Schedule: "0 * * * *", CreatedAt: created}

	next, err := NextRun(def)
	assert.NoError(t, err)
	assert.Equal(t, created.Add(time.Hour), next)

	last := created.Add(5 * time.Hour)
	def.LastExecutedAt = &last
	next, err = NextRun(def)
	assert.NoError(t, err)
	assert.Equal(t, last.Add(time.Hour), next)
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name     string
		trigger  models.Trigger
		schedule string
		timezone string
		wantErr  bool
	}{
		{name: "event trigger without schedule", trigger: models.TriggerOrderCreated},
		{name: "event trigger with schedule", trigger: models.TriggerOrderCreated, schedule: "* * * * *", wantErr: true},
		{name: "scheduled without schedule", trigger: models.TriggerScheduled, wantErr: true},
		{name: "scheduled valid", trigger: models.TriggerScheduled, schedule: "0 9 * * 1-5", timezone: "Europe/Vilnius"},
		{name: "scheduled with seconds", trigger: models.TriggerScheduled, schedule: "*/30 * * * * *"},
		{name: "scheduled bad cron", trigger: models.TriggerScheduled, schedule: "every day", wantErr: true},
		{name: "scheduled bad timezone", trigger: models.TriggerScheduled, schedule: "* * * * *", timezone: "Nowhere/City", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSchedule(tt.trigger, tt.schedule, tt.timezone)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}
