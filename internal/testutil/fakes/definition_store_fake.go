package fakes

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/internal/storage"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// FakeDefinitionStore is an in-memory workflow definition store.
type FakeDefinitionStore struct {
	mu          sync.Mutex
	defs        map[string]models.WorkflowDefinition
	seq         int64
	Increments  []string
	FailList    bool
	FailCounter bool
}

func NewFakeDefinitionStore() *FakeDefinitionStore {
	return &FakeDefinitionStore{defs: make(map[string]models.WorkflowDefinition)}
}

func (f *FakeDefinitionStore) CreateDefinition(_ context.Context, def *models.WorkflowDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	def.Seq = f.seq
	d := *def
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
	f.defs[d.ID] = d
	return nil
}

func (f *FakeDefinitionStore) GetDefinition(_ context.Context, id string) (*models.WorkflowDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.defs[id]
	if !ok {
		return nil, storage.ErrDefinitionNotFound
	}
	return &d, nil
}

func (f *FakeDefinitionStore) ListDefinitions(_ context.Context, q models.ListWorkflowsQuery) ([]models.WorkflowDefinition, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailList {
		return nil, 0, ErrStoreUnavailable
	}
	out := make([]models.WorkflowDefinition, 0, len(f.defs))
	for _, d := range f.defs {
		if q.Trigger != "" && string(d.Trigger) != q.Trigger {
			continue
		}
		if q.Active != "" && d.IsActive != (q.Active == "true") {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })

	total := int64(len(out))
	page, limit := models.NormalizePage(q.Page, q.Limit)
	start := (page - 1) * limit
	if start > len(out) {
		return []models.WorkflowDefinition{}, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *FakeDefinitionStore) ListActiveDefinitions(_ context.Context, trigger models.Trigger) ([]models.WorkflowDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailList {
		return nil, ErrStoreUnavailable
	}
	out := make([]models.WorkflowDefinition, 0)
	for _, d := range f.defs {
		if d.Trigger == trigger && d.IsActive {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (f *FakeDefinitionStore) UpdateDefinition(_ context.Context, id string, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.defs[id]
	if !ok {
		return storage.ErrDefinitionNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			d.Name = value.(string)
		case "description":
			d.Description = value.(string)
		case "trigger_name":
			d.Trigger = models.Trigger(value.(string))
		case "priority":
			d.Priority = value.(int)
		case "is_active":
			d.IsActive = value.(bool)
		case "version":
			d.Version = value.(int)
		case "logic":
			d.Logic = json.RawMessage(value.(string))
		case "schedule":
			d.Schedule = value.(string)
		case "timezone":
			d.Timezone = value.(string)
		}
	}
	d.UpdatedAt = time.Now().UTC()
	f.defs[id] = d
	return nil
}

func (f *FakeDefinitionStore) DeleteDefinition(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.defs[id]; !ok {
		return storage.ErrDefinitionNotFound
	}
	delete(f.defs, id)
	return nil
}

func (f *FakeDefinitionStore) IncrementExecutionCount(_ context.Context, id string, executedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCounter {
		return ErrStoreUnavailable
	}
	d, ok := f.defs[id]
	if !ok {
		return storage.ErrDefinitionNotFound
	}
	d.ExecutionCount++
	at := executedAt
	d.LastExecutedAt = &at
	f.defs[id] = d
	f.Increments = append(f.Increments, id)
	return nil
}
