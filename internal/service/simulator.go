package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/iliyamo/dining-sim/internal/config"
	"github.com/iliyamo/dining-sim/internal/metrics"
	"github.com/iliyamo/dining-sim/internal/model"
	q "github.com/iliyamo/dining-sim/internal/queue"
)

// RunStore keeps the history of finished runs.
type RunStore interface {
	Create(ctx context.Context, run *model.SimulationRun) error
	GetByID(ctx context.Context, id string) (*model.SimulationRun, error)
	List(ctx context.Context, limit int) ([]model.SimulationRun, error)
}

// ResultStore caches finished runs by configuration fingerprint.
type ResultStore interface {
	Get(ctx context.Context, fingerprint string) (*model.SimulationRun, bool)
	Put(ctx context.Context, run *model.SimulationRun) error
}

// EventPublisher announces finished runs.
type EventPublisher interface {
	PublishSimulationCompleted(ctx context.Context, event q.SimulationCompletedEvent) error
}

// Simulator runs simulations for the HTTP API. Runs is required; Results
// and Events may be nil.
type Simulator struct {
	Runs    RunStore
	Results ResultStore
	Events  EventPublisher
	Log     *log.Logger
}

// Run executes cfg and returns the run. When an identical configuration
// was run before and is still cached, the cached run is returned and cached
// is true. Cache, broker and metric failures never fail the call; a store
// failure does.
func (s *Simulator) Run(ctx context.Context, cfg config.SimulationConfig) (run *model.SimulationRun, cached bool, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	fp := Fingerprint(cfg)
	if s.Results != nil {
		if hit, ok := s.Results.Get(ctx, fp); ok {
			metrics.ObserveCacheHit()
			s.Log.Debug("simulation: cache hit", "fingerprint", fp, "run_id", hit.ID)
			return hit, true, nil
		}
	}

	start := time.Now()
	run, waits, err := Execute(cfg, nil)
	if err != nil {
		metrics.ObserveFailure()
		return nil, false, err
	}
	metrics.ObserveRun(run, waits, time.Since(start).Seconds())

	if err := s.Runs.Create(ctx, run); err != nil {
		return nil, false, errors.Wrapf(err, "store run %s", run.ID)
	}
	if s.Results != nil {
		if err := s.Results.Put(ctx, run); err != nil {
			s.Log.Warn("simulation: cache put failed", "run_id", run.ID, "err", err)
		}
	}
	if s.Events != nil {
		if err := s.Events.PublishSimulationCompleted(ctx, CompletedEvent(run)); err != nil {
			s.Log.Warn("simulation: publish failed", "run_id", run.ID, "err", err)
		}
	}
	s.Log.Info("simulation: finished",
		"run_id", run.ID,
		"ticks", run.Ticks,
		"served", run.ServedPatrons,
		"waiting", run.WaitingPatrons,
		"mean_wait", run.MeanWait,
	)
	return run, false, nil
}

// Get returns a stored run by id.
func (s *Simulator) Get(ctx context.Context, id string) (*model.SimulationRun, error) {
	return s.Runs.GetByID(ctx, id)
}

// List returns up to limit stored runs, newest first.
func (s *Simulator) List(ctx context.Context, limit int) ([]model.SimulationRun, error) {
	return s.Runs.List(ctx, limit)
}

// CompletedEvent summarises run for the simulation.completed queue.
func CompletedEvent(run *model.SimulationRun) q.SimulationCompletedEvent {
	return q.SimulationCompletedEvent{
		RunID:          run.ID,
		Fingerprint:    run.Fingerprint,
		Seed:           run.Seed,
		Tables:         run.TableCount,
		Seats:          run.SeatCount,
		SimulatedTime:  run.EndTime,
		ArrivedPatrons: run.ArrivedPatrons,
		ServedPatrons:  run.ServedPatrons,
		WaitingPatrons: run.WaitingPatrons,
		MeanWait:       run.MeanWait,
		MaxWait:        run.MaxWait,
		CompletedAt:    run.CreatedAt.UTC().Format(time.RFC3339),
	}
}
