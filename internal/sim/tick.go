package sim

// Eviction records a table leaving as a unit.
type Eviction struct {
	TableID   uint64
	PersonIDs []uint64
}

// Admission records a waiting party taking a table.
type Admission struct {
	TableID   uint64
	PersonIDs []uint64
	Waited    float64
}

// TickReport describes what happened during one Step, together with the
// state of the restaurant once the step completed. Arrivals count the
// parties enqueued since the previous step.
type TickReport struct {
	Time           float64
	ArrivedParties int
	ArrivedPatrons int
	Evictions      []Eviction
	Admissions     []Admission
	OccupiedTables int
	SeatedPatrons  int
	WaitingParties int
	WaitingPatrons int
}

// Departed returns the number of people who left during the tick.
func (r TickReport) Departed() int {
	n := 0
	for _, e := range r.Evictions {
		n += len(e.PersonIDs)
	}
	return n
}

// Seated returns the number of people admitted during the tick.
func (r TickReport) Seated() int {
	n := 0
	for _, a := range r.Admissions {
		n += len(a.PersonIDs)
	}
	return n
}

// Stats accumulates counters over the life of a restaurant. Served patrons
// are counted as tables are evicted, so a table vacated and refilled in the
// same tick still counts its departures.
type Stats struct {
	ArrivedParties int
	ArrivedPatrons int
	SeatedParties  int
	SeatedPatrons  int
	ServedParties  int
	ServedPatrons  int
	// WaitSamples is the number of queued parties whose wait was recorded.
	WaitSamples int
	TotalWait   float64
	MaxWait     float64
}

// MeanWait returns the average time a seated party spent in the queue.
func (s Stats) MeanWait() float64 {
	if s.WaitSamples == 0 {
		return 0
	}
	return s.TotalWait / float64(s.WaitSamples)
}
