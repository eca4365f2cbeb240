package fakes

import (
	"context"
	"errors"
	"sync"

	"github.com/dhima/backoffice-workflows/internal/models"
)

// PublishedBatch is one PublishActions call.
type PublishedBatch struct {
	Trigger models.Trigger
	Actions []models.Action
}

// FakePublisher captures published actions and can simulate failures.
type FakePublisher struct {
	mu        sync.Mutex
	Batches   []PublishedBatch
	FailNext  bool
	FailError error
}

func (p *FakePublisher) PublishActions(_ context.Context, trigger models.Trigger, actions []models.Action) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailNext {
		p.FailNext = false
		if p.FailError == nil {
			p.FailError = errors.New("publish failed")
		}
		return p.FailError
	}
	p.Batches = append(p.Batches, PublishedBatch{Trigger: trigger, Actions: actions})
	return nil
}

// Published returns every action published so far, in order.
func (p *FakePublisher) Published() []models.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Action, 0)
	for _, b := range p.Batches {
		out = append(out, b.Actions...)
	}
	return out
}
