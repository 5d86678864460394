package model

import (
	"encoding/json"
	"time"
)

// SimulationRun is the outcome of one simulation. It corresponds to a row
// in the `simulation_runs` table; Timeline is only kept in memory and in the
// result cache.
//
// Fields:
//
//	ID             – run identifier (UUID).
//	Fingerprint    – hash of the configuration; equal configs share it.
//	Seed           – seed of the random source.
//	Duration       – simulated time the run was asked to cover.
//	TimeStep       – length of one tick.
//	EndTime        – clock value after the last tick.
//	Ticks          – number of steps taken.
//	TableCount     – number of tables on the floor.
//	SeatCount      – sum of table capacities.
//	ArrivedParties – parties that joined the queue.
//	ArrivedPatrons – people in those parties.
//	SeatedParties  – parties that got a table.
//	SeatedPatrons  – people in those parties.
//	ServedPatrons  – people who finished and left.
//	WaitingParties – parties still queued at the end.
//	WaitingPatrons – people still queued at the end.
//	MeanWait       – average queue time of seated parties.
//	MaxWait        – longest queue time of a seated party.
//	Config         – JSON encoded configuration used for the run.
//	CreatedAt      – when the run finished.
type SimulationRun struct {
	ID             string          `json:"id"`
	Fingerprint    string          `json:"fingerprint"`
	Seed           uint64          `json:"seed"`
	Duration       float64         `json:"duration"`
	TimeStep       float64         `json:"time_step"`
	EndTime        float64         `json:"end_time"`
	Ticks          int             `json:"ticks"`
	TableCount     int             `json:"table_count"`
	SeatCount      int             `json:"seat_count"`
	ArrivedParties int             `json:"arrived_parties"`
	ArrivedPatrons int             `json:"arrived_patrons"`
	SeatedParties  int             `json:"seated_parties"`
	SeatedPatrons  int             `json:"seated_patrons"`
	ServedPatrons  int             `json:"served_patrons"`
	WaitingParties int             `json:"waiting_parties"`
	WaitingPatrons int             `json:"waiting_patrons"`
	MeanWait       float64         `json:"mean_wait"`
	MaxWait        float64         `json:"max_wait"`
	Config         json.RawMessage `json:"config,omitempty"`
	Timeline       []TickSnapshot  `json:"timeline,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TickSnapshot is the per-tick status line of a run.
type TickSnapshot struct {
	Time           float64 `json:"time"`
	Arrived        int     `json:"arrived"`
	Departed       int     `json:"departed"`
	Seated         int     `json:"seated"`
	OccupiedTables int     `json:"occupied_tables"`
	SeatedPatrons  int     `json:"seated_patrons"`
	WaitingParties int     `json:"waiting_parties"`
	WaitingPatrons int     `json:"waiting_patrons"`
}
