package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layout = `
tables:
  - id: 1
    capacity: 2
  - id: 2
    capacity: 4
duration: 120
seed: 9
arrival:
  probability: 0.5
  min_party_size: 1
  max_party_size: 4
`

func TestDefaultSimulationConfigIsValid(t *testing.T) {
	cfg := DefaultSimulationConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 36, cfg.Seats())
}

func TestParseSimulationConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseSimulationConfig([]byte(layout))
	require.NoError(t, err)
	assert.Equal(t, []TableConfig{{ID: 1, Capacity: 2}, {ID: 2, Capacity: 4}}, cfg.Tables)
	assert.Equal(t, 120.0, cfg.Duration)
	assert.Equal(t, 5.0, cfg.TimeStep, "time step default expected")
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Len(t, cfg.DiningTimes, 3)
	assert.NoError(t, cfg.Validate())
}

func TestLoadSimulationConfigAppliesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(layout), 0o644))
	t.Setenv("SIM_SEED", "77")
	t.Setenv("SIM_TIME_STEP", "2.5")
	cfg, err := LoadSimulationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), cfg.Seed)
	assert.Equal(t, 2.5, cfg.TimeStep)
}

func TestLoadSimulationConfigReportsMissingFile(t *testing.T) {
	_, err := LoadSimulationConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBrokenLayouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
	}{
		{"no tables", func(c *SimulationConfig) { c.Tables = nil }},
		{"zero capacity", func(c *SimulationConfig) { c.Tables[0].Capacity = 0 }},
		{"duplicate id", func(c *SimulationConfig) { c.Tables[1].ID = c.Tables[0].ID }},
		{"zero step", func(c *SimulationConfig) { c.TimeStep = 0 }},
		{"negative duration", func(c *SimulationConfig) { c.Duration = -1 }},
		{"too many ticks", func(c *SimulationConfig) { c.Duration = 1e9; c.TimeStep = 1 }},
		{"inverted dining time", func(c *SimulationConfig) { c.DiningTimes[0] = RangeConfig{Lower: 9, Upper: 3} }},
		{"no dining times", func(c *SimulationConfig) { c.DiningTimes = nil }},
		{"bad probability", func(c *SimulationConfig) { c.Arrival.Probability = 2 }},
		{"bad party size", func(c *SimulationConfig) { c.Arrival.MinPartySize = 0 }},
		{"bad schedule", func(c *SimulationConfig) { c.Schedule = []ScheduledArrival{{At: 0, Size: 0}} }},
		{"bad ages", func(c *SimulationConfig) { c.Ages = AgeConfig{Min: 50, Max: 20} }},
	}
	for _, tt := range tests {
		cfg := DefaultSimulationConfig()
		tt.mutate(&cfg)
		assert.True(t, errors.Is(cfg.Validate(), ErrInvalidSimulation), tt.name)
	}
}

func TestScheduleSkipsArrivalChecks(t *testing.T) {
	cfg := DefaultSimulationConfig()
	cfg.Arrival = ArrivalConfig{}
	cfg.Schedule = []ScheduledArrival{{At: 0, Size: 2}}
	assert.NoError(t, cfg.Validate())
}
