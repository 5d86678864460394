package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/dining-sim/internal/model"
)

func TestObservedRunsAreExported(t *testing.T) {
	before := runsTotal.Get()
	ObserveRun(&model.SimulationRun{ArrivedPatrons: 10, ServedPatrons: 6, WaitingPatrons: 2}, []float64{0, 5, 12.5}, 0.01)
	ObserveCacheHit()
	assert.Equal(t, before+1, runsTotal.Get())

	var buf bytes.Buffer
	WritePrometheus(&buf)
	out := buf.String()
	assert.Contains(t, out, "dining_sim_runs_total")
	assert.Contains(t, out, "dining_sim_patrons_served_total")
	assert.Contains(t, out, "dining_sim_party_wait_bucket")
}
