// Package queue defines message payloads exchanged over the message broker.
package queue

// SimulationCompletedQueue is the durable queue finished runs are announced on.
const SimulationCompletedQueue = "simulation.completed"

// SimulationCompletedEvent is published when a simulation finishes. It
// carries the headline numbers so consumers can log or alert without
// fetching the run.
type SimulationCompletedEvent struct {
	RunID          string  `json:"run_id"`
	Fingerprint    string  `json:"fingerprint"`
	Seed           uint64  `json:"seed"`
	Tables         int     `json:"tables"`
	Seats          int     `json:"seats"`
	SimulatedTime  float64 `json:"simulated_time"`
	ArrivedPatrons int     `json:"arrived_patrons"`
	ServedPatrons  int     `json:"served_patrons"`
	WaitingPatrons int     `json:"waiting_patrons"`
	MeanWait       float64 `json:"mean_wait"`
	MaxWait        float64 `json:"max_wait"`
	CompletedAt    string  `json:"completed_at"`
}
