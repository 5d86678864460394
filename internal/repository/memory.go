package repository

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/iliyamo/dining-sim/internal/model"
)

// MemoryRuns keeps the most recent runs in process. It is used when no
// database is configured. Once Capacity runs are held the oldest is dropped.
type MemoryRuns struct {
	mu       sync.Mutex
	capacity int
	order    []string
	runs     map[string]model.SimulationRun
}

// NewMemoryRuns returns a store holding at most capacity runs.
func NewMemoryRuns(capacity int) *MemoryRuns {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryRuns{capacity: capacity, runs: make(map[string]model.SimulationRun)}
}

func (m *MemoryRuns) Create(_ context.Context, run *model.SimulationRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[run.ID]; ok {
		return errors.Wrapf(ErrConflict, "run %s", run.ID)
	}
	if len(m.order) == m.capacity {
		delete(m.runs, m.order[0])
		m.order = m.order[1:]
	}
	stored := *run
	stored.Timeline = nil
	m.runs[run.ID] = stored
	m.order = append(m.order, run.ID)
	return nil
}

func (m *MemoryRuns) GetByID(_ context.Context, id string) (*model.SimulationRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return &run, nil
}

// List returns up to limit runs, newest first.
func (m *MemoryRuns) List(_ context.Context, limit int) ([]model.SimulationRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := []model.SimulationRun{}
	for i := len(m.order) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, m.runs[m.order[i]])
	}
	return runs, nil
}
