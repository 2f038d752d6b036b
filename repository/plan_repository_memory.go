package repository

import (
	"context"
	"fmt"
	"sync"

	"mortgage-planner/domain"
)

// PlanRepositoryMemory is an in-memory implementation of PlanRepository.
type PlanRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.PlanResult
}

// NewPlanRepositoryMemory creates a new in-memory plan repository.
func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		data: make(map[string]domain.PlanResult),
	}
}

// Save stores the plan result in memory.
func (r *PlanRepositoryMemory) Save(_ context.Context, result domain.PlanResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[result.ID] = result
	return nil
}

func (r *PlanRepositoryMemory) FindByID(_ context.Context, id string) (domain.PlanResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.data[id]
	if !ok {
		return domain.PlanResult{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return result, nil
}
