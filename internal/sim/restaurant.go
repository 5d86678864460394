package sim

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Restaurant is the simulation engine. It owns a fixed, ordered set of
// tables, the FIFO waiting queue and the clock. All seating changes go
// through its ledger.
type Restaurant struct {
	tables []*Table
	byID   map[uint64]*Table
	queue  []*Party
	now    float64
	seats  ledger
	stats  Stats

	waitingPatrons int
	pendingParties int
	pendingPatrons int
}

// NewRestaurant creates an engine over tables. The table order given here is
// the order used for first-fit seating. Tables must be empty and must not be
// shared with another restaurant.
func NewRestaurant(tables ...*Table) (*Restaurant, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	r := &Restaurant{
		tables: make([]*Table, 0, len(tables)),
		byID:   make(map[uint64]*Table, len(tables)),
	}
	for i, t := range tables {
		if t == nil {
			return nil, errors.Newf("table at position %d is nil", i)
		}
		if _, ok := r.byID[t.id]; ok {
			return nil, errors.Wrapf(ErrDuplicateTable, "table %d", t.id)
		}
		if !t.IsEmpty() {
			return nil, errors.Newf("table %d is already occupied", t.id)
		}
		r.byID[t.id] = t
		r.tables = append(r.tables, t)
	}
	return r, nil
}

// Now returns the current simulated time.
func (r *Restaurant) Now() float64 { return r.now }

// Tables returns the tables in seating order.
func (r *Restaurant) Tables() []*Table {
	cp := make([]*Table, len(r.tables))
	copy(cp, r.tables)
	return cp
}

// Table returns the table with the given id.
func (r *Restaurant) Table(id uint64) (*Table, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Queue returns the waiting parties, head first.
func (r *Restaurant) Queue() []*Party {
	cp := make([]*Party, len(r.queue))
	copy(cp, r.queue)
	return cp
}

func (r *Restaurant) Stats() Stats { return r.stats }

// OccupiedTables returns the number of tables with at least one occupant.
func (r *Restaurant) OccupiedTables() int {
	n := 0
	for _, t := range r.tables {
		if !t.IsEmpty() {
			n++
		}
	}
	return n
}

func (r *Restaurant) SeatedPatrons() int  { return r.seats.seated }
func (r *Restaurant) WaitingParties() int { return len(r.queue) }
func (r *Restaurant) WaitingPatrons() int { return r.waitingPatrons }

// Verify checks that every occupant's seated-at reference names the table
// listing it, that no table exceeds its capacity and that nobody in the
// queue is seated.
func (r *Restaurant) Verify() error {
	return r.seats.verify(r.tables, r.queue)
}

// Enqueue appends party to the tail of the waiting queue and stamps its
// arrival time. The queue is unbounded.
func (r *Restaurant) Enqueue(party *Party) error {
	if party == nil {
		return errors.Wrap(ErrEmptyParty, "nil party")
	}
	party.arrivedAt = r.now
	r.queue = append(r.queue, party)
	r.waitingPatrons += party.Size()
	r.pendingParties++
	r.pendingPatrons += party.Size()
	r.stats.ArrivedParties++
	r.stats.ArrivedPatrons += party.Size()
	return nil
}

// FindAvailableTable returns the first table, in table order, that is
// completely empty and has at least size seats. Partially occupied tables
// are never offered, and the first fit wins over a tighter fit further down
// the list.
func (r *Restaurant) FindAvailableTable(size int) *Table {
	for _, t := range r.tables {
		if t.IsEmpty() && t.capacity >= size {
			return t
		}
	}
	return nil
}

// Seat places p at t as one atomic change of the seating relation. It fails
// with ErrAlreadySeated when p occupies a table and with ErrTableFull when t
// has no free seat. Seating someone at an empty table starts its dining
// clock.
func (r *Restaurant) Seat(p *Person, t *Table) error {
	if p == nil {
		return errors.Wrap(ErrInvalidParty, "nil person")
	}
	if t == nil || r.byID[t.id] != t {
		return errors.Wrapf(ErrUnknownTable, "table %v", tableID(t))
	}
	wasEmpty := t.IsEmpty()
	if err := r.seats.seat(p, t); err != nil {
		return err
	}
	if wasEmpty {
		t.occupiedSince = r.now
	}
	return nil
}

// Unseat removes p from its table. It fails with ErrNotSeated when p is not
// seated, with ErrUnknownTable when p sits in another restaurant and with
// ErrSeatingMismatch when p's table does not list it.
func (r *Restaurant) Unseat(p *Person) error {
	if p == nil {
		return errors.Wrap(ErrInvalidParty, "nil person")
	}
	if t := p.seatedAt; t != nil && r.byID[t.id] != t {
		return errors.Wrapf(ErrUnknownTable, "%s sits at table %d of another restaurant", p, t.id)
	}
	_, err := r.seats.unseat(p)
	return err
}

func tableID(t *Table) any {
	if t == nil {
		return nil
	}
	return t.id
}

// AdmitParty seats every member of party at the first available table. It
// returns false, without touching any state, when no table fits. The table
// found always has room for the whole party, so a failure while seating
// members is an invariant breach: the members already placed are removed
// and the error is returned. Queued parties are only admitted by
// AdmitWaitingParties; passing one here fails with ErrPartyQueued.
func (r *Restaurant) AdmitParty(party *Party) (bool, error) {
	for _, q := range r.queue {
		if q == party {
			return false, errors.Wrapf(ErrPartyQueued, "party of %d", party.Size())
		}
	}
	t, err := r.admit(party)
	return t != nil, err
}

func (r *Restaurant) admit(party *Party) (*Table, error) {
	if party == nil {
		return nil, errors.Wrap(ErrEmptyParty, "nil party")
	}
	for _, m := range party.members {
		if m.seatedAt != nil {
			return nil, errors.Wrapf(ErrAlreadySeated, "%s at table %d", m, m.seatedAt.id)
		}
	}
	t := r.FindAvailableTable(party.Size())
	if t == nil {
		return nil, nil
	}
	for _, m := range party.members {
		if err := r.Seat(m, t); err != nil {
			_, rerr := r.seats.evictAll(t)
			return nil, errors.CombineErrors(
				errors.Wrapf(err, "admitting party of %d at table %d", party.Size(), t.id),
				rerr)
		}
	}
	r.stats.SeatedParties++
	r.stats.SeatedPatrons += party.Size()
	return t, nil
}

// AdvanceClock moves the clock forward by step, which must be positive and
// finite.
func (r *Restaurant) AdvanceClock(step float64) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return errors.Wrapf(ErrInvalidTimeStep, "step %g", step)
	}
	r.now += step
	return nil
}

// EvictDuePatrons clears every table whose longest-dining occupant has
// finished. Occupants leave as a group: nobody departs before the last
// member of the table is done.
func (r *Restaurant) EvictDuePatrons() ([]Eviction, error) {
	var evictions []Eviction
	for _, t := range r.tables {
		due, ok := t.DueAt()
		if !ok || r.now < due {
			continue
		}
		people, err := r.seats.evictAll(t)
		if err != nil {
			return evictions, err
		}
		ids := make([]uint64, len(people))
		for i, p := range people {
			ids[i] = p.id
		}
		evictions = append(evictions, Eviction{TableID: t.id, PersonIDs: ids})
		r.stats.ServedParties++
		r.stats.ServedPatrons += len(people)
	}
	return evictions, nil
}

// AdmitWaitingParties seats queued parties strictly in arrival order and
// stops at the first party that cannot be seated. A smaller party behind it
// keeps waiting even when a table would fit it.
func (r *Restaurant) AdmitWaitingParties() ([]Admission, error) {
	var admissions []Admission
	for len(r.queue) > 0 {
		head := r.queue[0]
		t, err := r.admit(head)
		if err != nil {
			return admissions, err
		}
		if t == nil {
			break
		}
		r.queue[0] = nil
		r.queue = r.queue[1:]
		r.waitingPatrons -= head.Size()

		waited := r.now - head.arrivedAt
		r.stats.WaitSamples++
		r.stats.TotalWait += waited
		if waited > r.stats.MaxWait {
			r.stats.MaxWait = waited
		}
		admissions = append(admissions, Admission{
			TableID:   t.id,
			PersonIDs: head.memberIDs(),
			Waited:    waited,
		})
	}
	return admissions, nil
}

// Step runs one tick: advance the clock, evict finished tables, then admit
// waiting parties. Evicting first lets a table freed in this tick be reused
// in the same tick.
func (r *Restaurant) Step(step float64) (TickReport, error) {
	if err := r.AdvanceClock(step); err != nil {
		return TickReport{}, err
	}
	return r.tick()
}

// tick runs eviction and admission at the current clock value.
func (r *Restaurant) tick() (TickReport, error) {
	rep := TickReport{
		Time:           r.now,
		ArrivedParties: r.pendingParties,
		ArrivedPatrons: r.pendingPatrons,
	}
	r.pendingParties, r.pendingPatrons = 0, 0

	var err error
	if rep.Evictions, err = r.EvictDuePatrons(); err != nil {
		return rep, errors.Wrapf(err, "evicting at %g", r.now)
	}
	if rep.Admissions, err = r.AdmitWaitingParties(); err != nil {
		return rep, errors.Wrapf(err, "admitting at %g", r.now)
	}
	rep.OccupiedTables = r.OccupiedTables()
	rep.SeatedPatrons = r.SeatedPatrons()
	rep.WaitingParties = r.WaitingParties()
	rep.WaitingPatrons = r.WaitingPatrons()
	return rep, nil
}

// maxRunTicks bounds a single Run.
const maxRunTicks = math.MaxInt32

// Run steps the restaurant until the clock reaches duration. At least one
// step is always taken, so Run(0, step) still runs a single tick. Before
// each step the source, when not nil, is polled once and its party is
// enqueued. observe, when not nil, receives every tick report.
//
// The number of ticks is fixed up front from (duration-now)/step, and tick
// k is placed at start+k*step, so rounding in fractional steps neither adds
// a tick nor lets the clock drift.
func (r *Restaurant) Run(duration, step float64, source PartySource, observe func(TickReport)) error {
	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		return errors.Wrapf(ErrInvalidDuration, "duration %g", duration)
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return errors.Wrapf(ErrInvalidTimeStep, "step %g", step)
	}
	start := r.now
	ticks := runTicks(duration-start, step)
	if ticks > maxRunTicks {
		return errors.Wrapf(ErrInvalidDuration, "duration %g needs %g ticks of %g", duration, ticks, step)
	}
	n := int(ticks)
	for k := 1; k <= n; k++ {
		if source != nil {
			if party := source.GenerateParty(r.now); party != nil {
				if err := r.Enqueue(party); err != nil {
					return err
				}
			}
		}
		r.now = start + float64(k)*step
		rep, err := r.tick()
		if err != nil {
			return err
		}
		if observe != nil {
			observe(rep)
		}
	}
	return nil
}

// runTicks returns how many steps of size step cover span, at least one.
// Quotients within a relative 1e-9 of an integer count as that integer.
func runTicks(span, step float64) float64 {
	x := span / step
	n := math.Ceil(x - 1e-9*math.Max(1, math.Abs(x)))
	if n < 1 {
		return 1
	}
	return n
}
