// Package service runs simulations on behalf of the HTTP API and the CLI.
// It turns a configuration into an engine, drives it to completion and
// hands the outcome to the optional cache, run store and event broker.
package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/iliyamo/dining-sim/internal/config"
	"github.com/iliyamo/dining-sim/internal/generator"
	"github.com/iliyamo/dining-sim/internal/model"
	"github.com/iliyamo/dining-sim/internal/report"
	"github.com/iliyamo/dining-sim/internal/sim"
)

// Build validates cfg and creates a fresh engine together with the party
// source feeding it. Nothing is shared between two calls.
func Build(cfg config.SimulationConfig) (*sim.Restaurant, sim.PartySource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	tables := make([]*sim.Table, 0, len(cfg.Tables))
	for _, tc := range cfg.Tables {
		t, err := sim.NewTable(tc.ID, tc.Capacity)
		if err != nil {
			return nil, nil, err
		}
		tables = append(tables, t)
	}
	r, err := sim.NewRestaurant(tables...)
	if err != nil {
		return nil, nil, err
	}

	people := generator.People{MinAge: cfg.Ages.Min, MaxAge: cfg.Ages.Max}
	for _, rc := range cfg.DiningTimes {
		dt, err := sim.NewDiningTime(rc.Lower, rc.Upper)
		if err != nil {
			return nil, nil, err
		}
		people.DiningTimes = append(people.DiningTimes, dt)
	}
	rnd := generator.NewRandom(cfg.Seed)

	if len(cfg.Schedule) > 0 {
		arrivals := make([]generator.Arrival, len(cfg.Schedule))
		for i, a := range cfg.Schedule {
			arrivals[i] = generator.Arrival{At: a.At, Size: a.Size}
		}
		src, err := generator.NewSchedule(arrivals, people, rnd)
		if err != nil {
			return nil, nil, err
		}
		return r, src, nil
	}
	src, err := generator.New(generator.Config{
		ArrivalProbability: cfg.Arrival.Probability,
		MinPartySize:       cfg.Arrival.MinPartySize,
		MaxPartySize:       cfg.Arrival.MaxPartySize,
		People:             people,
	}, rnd)
	if err != nil {
		return nil, nil, err
	}
	return r, src, nil
}

// Fingerprint hashes the configuration. Runs are deterministic, so equal
// fingerprints mean equal results.
func Fingerprint(cfg config.SimulationConfig) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		// plain data only, cannot fail
		panic(err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Execute runs cfg to completion. observe, when not nil, sees every tick
// after it has been recorded. The returned waits hold the queue time of
// each seated party.
func Execute(cfg config.SimulationConfig, observe func(sim.TickReport)) (*model.SimulationRun, []float64, error) {
	r, src, err := Build(cfg)
	if err != nil {
		return nil, nil, err
	}
	var (
		timeline []model.TickSnapshot
		waits    []float64
	)
	err = r.Run(cfg.Duration, cfg.TimeStep, src, func(rep sim.TickReport) {
		timeline = append(timeline, report.Snapshot(rep))
		for _, a := range rep.Admissions {
			waits = append(waits, a.Waited)
		}
		if observe != nil {
			observe(rep)
		}
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "simulation seed %d", cfg.Seed)
	}
	if err := r.Verify(); err != nil {
		return nil, nil, errors.Wrap(err, "seating relation after run")
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, nil, err
	}
	stats := r.Stats()
	run := &model.SimulationRun{
		ID:             uuid.NewString(),
		Fingerprint:    Fingerprint(cfg),
		Seed:           cfg.Seed,
		Duration:       cfg.Duration,
		TimeStep:       cfg.TimeStep,
		EndTime:        r.Now(),
		Ticks:          len(timeline),
		TableCount:     len(cfg.Tables),
		SeatCount:      cfg.Seats(),
		ArrivedParties: stats.ArrivedParties,
		ArrivedPatrons: stats.ArrivedPatrons,
		SeatedParties:  stats.SeatedParties,
		SeatedPatrons:  stats.SeatedPatrons,
		ServedPatrons:  stats.ServedPatrons,
		WaitingParties: r.WaitingParties(),
		WaitingPatrons: r.WaitingPatrons(),
		MeanWait:       stats.MeanWait(),
		MaxWait:        stats.MaxWait,
		Config:         raw,
		Timeline:       timeline,
		CreatedAt:      time.Now().UTC(),
	}
	return run, waits, nil
}
