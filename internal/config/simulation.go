package config

import (
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// MaxTicks bounds the number of steps a single run may take.
const MaxTicks = 1_000_000

// ErrInvalidSimulation is returned by Validate for layouts the engine could
// not run.
var ErrInvalidSimulation = errors.New("invalid simulation config")

// TableConfig describes one table of the floor plan. Table order in the
// layout is the first-fit seating order.
type TableConfig struct {
	ID       uint64 `yaml:"id" json:"id"`
	Capacity int    `yaml:"capacity" json:"capacity"`
}

// RangeConfig is a dining time range in simulated minutes.
type RangeConfig struct {
	Lower float64 `yaml:"lower" json:"lower"`
	Upper float64 `yaml:"upper" json:"upper"`
}

// ArrivalConfig drives the stochastic generator.
type ArrivalConfig struct {
	Probability  float64 `yaml:"probability" json:"probability"`
	MinPartySize int     `yaml:"min_party_size" json:"min_party_size"`
	MaxPartySize int     `yaml:"max_party_size" json:"max_party_size"`
}

type AgeConfig struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// ScheduledArrival is one entry of a fixed arrival schedule.
type ScheduledArrival struct {
	At   float64 `yaml:"at" json:"at"`
	Size int     `yaml:"size" json:"size"`
}

// SimulationConfig is everything needed to reproduce a run. Two runs with
// equal configs produce identical traces. When Schedule is non-empty it
// replaces the stochastic arrivals.
type SimulationConfig struct {
	Tables      []TableConfig      `yaml:"tables" json:"tables"`
	Duration    float64            `yaml:"duration" json:"duration"`
	TimeStep    float64            `yaml:"time_step" json:"time_step"`
	Seed        uint64             `yaml:"seed" json:"seed"`
	Arrival     ArrivalConfig      `yaml:"arrival" json:"arrival"`
	DiningTimes []RangeConfig      `yaml:"dining_times" json:"dining_times"`
	Ages        AgeConfig          `yaml:"ages" json:"ages"`
	Schedule    []ScheduledArrival `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

// DefaultSimulationConfig returns a ten table floor open for four hours,
// stepped every five minutes.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Tables: []TableConfig{
			{ID: 1, Capacity: 2}, {ID: 2, Capacity: 2}, {ID: 3, Capacity: 2}, {ID: 4, Capacity: 2},
			{ID: 5, Capacity: 4}, {ID: 6, Capacity: 4}, {ID: 7, Capacity: 4}, {ID: 8, Capacity: 4},
			{ID: 9, Capacity: 6}, {ID: 10, Capacity: 6},
		},
		Duration: 240,
		TimeStep: 5,
		Seed:     1,
		Arrival:  ArrivalConfig{Probability: 0.35, MinPartySize: 1, MaxPartySize: 6},
		DiningTimes: []RangeConfig{
			{Lower: 30, Upper: 60},
			{Lower: 45, Upper: 90},
			{Lower: 60, Upper: 120},
		},
		Ages: AgeConfig{Min: 18, Max: 80},
	}
}

// ParseSimulationConfig decodes a YAML layout over the defaults. Keys left
// out of the document keep their default value.
func ParseSimulationConfig(data []byte) (SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SimulationConfig{}, errors.Wrap(err, "parse layout")
	}
	return cfg, nil
}

// LoadSimulationConfig reads the layout at path, or the defaults when path
// is empty, then applies SIM_* environment overrides and validates the
// result.
func LoadSimulationConfig(path string) (SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return SimulationConfig{}, errors.Wrapf(err, "read layout %s", path)
		}
		if cfg, err = ParseSimulationConfig(data); err != nil {
			return SimulationConfig{}, errors.Wrapf(err, "layout %s", path)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides run parameters from SIM_DURATION, SIM_TIME_STEP,
// SIM_SEED and SIM_ARRIVAL_PROBABILITY.
func (c *SimulationConfig) ApplyEnv() {
	c.Duration = envFloat("SIM_DURATION", c.Duration)
	c.TimeStep = envFloat("SIM_TIME_STEP", c.TimeStep)
	c.Seed = envUint("SIM_SEED", c.Seed)
	c.Arrival.Probability = envFloat("SIM_ARRIVAL_PROBABILITY", c.Arrival.Probability)
}

// Seats returns the total number of seats on the floor.
func (c SimulationConfig) Seats() int {
	n := 0
	for _, t := range c.Tables {
		n += t.Capacity
	}
	return n
}

// Validate checks the layout before any engine object is built.
func (c SimulationConfig) Validate() error {
	if len(c.Tables) == 0 {
		return errors.Wrap(ErrInvalidSimulation, "no tables")
	}
	ids := make(map[uint64]struct{}, len(c.Tables))
	for _, t := range c.Tables {
		if t.Capacity <= 0 {
			return errors.Wrapf(ErrInvalidSimulation, "table %d capacity %d", t.ID, t.Capacity)
		}
		if _, ok := ids[t.ID]; ok {
			return errors.Wrapf(ErrInvalidSimulation, "table %d listed twice", t.ID)
		}
		ids[t.ID] = struct{}{}
	}
	if !finite(c.Duration) || c.Duration < 0 {
		return errors.Wrapf(ErrInvalidSimulation, "duration %g", c.Duration)
	}
	if !finite(c.TimeStep) || c.TimeStep <= 0 {
		return errors.Wrapf(ErrInvalidSimulation, "time step %g", c.TimeStep)
	}
	if c.Duration/c.TimeStep > MaxTicks {
		return errors.Wrapf(ErrInvalidSimulation, "%g ticks exceeds %d", c.Duration/c.TimeStep, MaxTicks)
	}
	if len(c.DiningTimes) == 0 {
		return errors.Wrap(ErrInvalidSimulation, "no dining times")
	}
	for _, r := range c.DiningTimes {
		if !finite(r.Lower) || !finite(r.Upper) || r.Lower < 0 || r.Lower > r.Upper {
			return errors.Wrapf(ErrInvalidSimulation, "dining time %g..%g", r.Lower, r.Upper)
		}
	}
	if c.Ages.Min < 0 || c.Ages.Min > c.Ages.Max {
		return errors.Wrapf(ErrInvalidSimulation, "ages %d..%d", c.Ages.Min, c.Ages.Max)
	}
	if len(c.Schedule) > 0 {
		for i, a := range c.Schedule {
			if a.Size < 1 || !finite(a.At) || a.At < 0 {
				return errors.Wrapf(ErrInvalidSimulation, "schedule entry %d", i)
			}
		}
		return nil
	}
	a := c.Arrival
	if !(a.Probability >= 0 && a.Probability <= 1) {
		return errors.Wrapf(ErrInvalidSimulation, "arrival probability %g", a.Probability)
	}
	if a.MinPartySize < 1 || a.MinPartySize > a.MaxPartySize {
		return errors.Wrapf(ErrInvalidSimulation, "party size %d..%d", a.MinPartySize, a.MaxPartySize)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
