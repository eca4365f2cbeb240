package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/dhima/backoffice-workflows/internal/models"
	"github.com/dhima/backoffice-workflows/internal/storage"
)

// FakeExecutionStore is an in-memory execution record store. Records keeps
// insertion order.
type FakeExecutionStore struct {
	mu         sync.Mutex
	Records    []models.WorkflowExecution
	FailCreate bool
	Stats      models.ExecutionStats
}

func NewFakeExecutionStore() *FakeExecutionStore {
	return &FakeExecutionStore{}
}

func (f *FakeExecutionStore) CreateExecution(_ context.Context, exec *models.WorkflowExecution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCreate {
		return ErrStoreUnavailable
	}
	f.Records = append(f.Records, *exec)
	return nil
}

func (f *FakeExecutionStore) GetExecution(_ context.Context, id string) (*models.WorkflowExecution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.Records {
		if r.ID == id {
			cpy := r
			return &cpy, nil
		}
	}
	return nil, storage.ErrExecutionNotFound
}

func (f *FakeExecutionStore) ListExecutions(_ context.Context, q models.ListExecutionsQuery) ([]models.WorkflowExecution, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.WorkflowExecution, 0, len(f.Records))
	for _, r := range f.Records {
		if q.DefinitionID != "" && r.DefinitionID != q.DefinitionID {
			continue
		}
		if q.Trigger != "" && string(r.Trigger) != q.Trigger {
			continue
		}
		if q.Status != "" && string(r.Status) != q.Status {
			continue
		}
		if q.IsTestRun != "" && r.IsTestRun != (q.IsTestRun == "true") {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	total := int64(len(out))
	page, limit := models.NormalizePage(q.Page, q.Limit)
	start := (page - 1) * limit
	if start > len(out) {
		return []models.WorkflowExecution{}, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// ExecutionStats returns Stats plus the outcome counts of the stored
// non-test records.
func (f *FakeExecutionStore) ExecutionStats(_ context.Context) (models.ExecutionStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := f.Stats
	var total int64
	var count int64
	for _, r := range f.Records {
		if r.IsTestRun {
			continue
		}
		if r.Status == models.ExecutionStatusSuccess {
			stats.ExecutionsSuccess++
		} else {
			stats.ExecutionsFailure++
		}
		total += r.DurationMs
		count++
	}
	if count > 0 && stats.AvgDurationMs == 0 {
		stats.AvgDurationMs = float64(total) / float64(count)
	}
	return stats, nil
}

// ByDefinition returns the records written for one definition.
func (f *FakeExecutionStore) ByDefinition(id string) []models.WorkflowExecution {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.WorkflowExecution, 0)
	for _, r := range f.Records {
		if r.DefinitionID == id {
			out = append(out, r)
		}
	}
	return out
}
