// Package metrics exposes process-wide counters for simulation runs in the
// Prometheus text format.
package metrics

import (
	"io"

	"github.com/VictoriaMetrics/metrics"

	"github.com/iliyamo/dining-sim/internal/model"
)

var (
	runsTotal       = metrics.NewCounter(`dining_sim_runs_total`)
	runFailures     = metrics.NewCounter(`dining_sim_run_failures_total`)
	cacheHits       = metrics.NewCounter(`dining_sim_result_cache_hits_total`)
	patronsArrived  = metrics.NewCounter(`dining_sim_patrons_arrived_total`)
	patronsServed   = metrics.NewCounter(`dining_sim_patrons_served_total`)
	patronsStranded = metrics.NewCounter(`dining_sim_patrons_stranded_total`)
	partyWait       = metrics.NewHistogram(`dining_sim_party_wait`)
	runSeconds      = metrics.NewHistogram(`dining_sim_run_seconds`)
)

// ObserveRun records a finished run. waits holds the queue time of every
// party seated during the run.
func ObserveRun(run *model.SimulationRun, waits []float64, seconds float64) {
	runsTotal.Inc()
	patronsArrived.Add(run.ArrivedPatrons)
	patronsServed.Add(run.ServedPatrons)
	patronsStranded.Add(run.WaitingPatrons)
	for _, w := range waits {
		partyWait.Update(w)
	}
	runSeconds.Update(seconds)
}

func ObserveFailure()  { runFailures.Inc() }
func ObserveCacheHit() { cacheHits.Inc() }

// WritePrometheus writes every registered metric plus process metrics to w.
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, true)
}
