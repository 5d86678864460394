package generator

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/iliyamo/dining-sim/internal/sim"
)

// Arrival is one entry of a fixed schedule: a party of Size people showing
// up at time At.
type Arrival struct {
	At   float64
	Size int
}

// Schedule replays a fixed list of arrivals. It is polled once per tick and
// releases at most one due party per poll; arrivals that pile up on the same
// tick spill into the following ticks in schedule order.
type Schedule struct {
	arrivals []Arrival
	next     int
	factory  *factory
}

// NewSchedule sorts arrivals by time, keeping the given order for ties.
func NewSchedule(arrivals []Arrival, people People, rnd sim.Randomizer) (*Schedule, error) {
	if rnd == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil randomizer")
	}
	if err := people.validate(); err != nil {
		return nil, err
	}
	sorted := make([]Arrival, len(arrivals))
	copy(sorted, arrivals)
	for i, a := range sorted {
		if a.Size < 1 {
			return nil, errors.Wrapf(ErrInvalidConfig, "arrival %d has size %d", i, a.Size)
		}
		if math.IsNaN(a.At) || math.IsInf(a.At, 0) || a.At < 0 {
			return nil, errors.Wrapf(ErrInvalidConfig, "arrival %d at %g", i, a.At)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Schedule{arrivals: sorted, factory: newFactory(people, rnd)}, nil
}

// GenerateParty implements sim.PartySource.
func (s *Schedule) GenerateParty(now float64) *sim.Party {
	if s.next >= len(s.arrivals) || s.arrivals[s.next].At > now {
		return nil
	}
	a := s.arrivals[s.next]
	s.next++
	return s.factory.party(a.Size)
}

// Remaining returns the number of arrivals not yet released.
func (s *Schedule) Remaining() int { return len(s.arrivals) - s.next }
