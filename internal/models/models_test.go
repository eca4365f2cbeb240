package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 20},
		{name: "negative", page: -3, limit: -1, wantPage: 1, wantLimit: 20},
		{name: "within bounds", page: 4, limit: 50, wantPage: 4, wantLimit: 50},
		{name: "limit capped", page: 2, limit: 500, wantPage: 2, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPagination_RoundsTotalPagesUp(t *testing.T) {
	assert.Equal(t, 3, NewPagination(1, 20, 41).TotalPages)
	assert.Equal(t, 2, NewPagination(1, 20, 40).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 20, 0).TotalPages)
}

func TestTriggerCatalog_SortedAndValid(t *testing.T) {
	catalog := TriggerCatalog()

	assert.Len(t, catalog, len(triggerDescriptions))
	for i, info := range catalog {
		assert.True(t, info.Name.IsValid())
		assert.Equal(t, triggerDescriptions[info.Name], info.Description)
		assert.NotEmpty(t, info.Description)
		if i > 0 {
			assert.Less(t, string(catalog[i-1].Name), string(info.Name))
		}
	}
	assert.False(t, Trigger("order-exploded").IsValid())
	assert.Empty(t, Trigger("order-exploded").Description())
}
