package sim

import "github.com/cockroachdb/errors"

// Table is a fixed-capacity seat holder. Its occupant list is only mutated
// by the seating ledger, which keeps it in step with each occupant's
// seated-at reference.
type Table struct {
	id            uint64
	capacity      int
	occupants     []*Person
	occupiedSince float64
}

// NewTable returns an empty table. It fails with ErrInvalidCapacity when
// capacity is not positive.
func NewTable(id uint64, capacity int) (*Table, error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "table %d capacity %d", id, capacity)
	}
	return &Table{id: id, capacity: capacity}, nil
}

func (t *Table) ID() uint64    { return t.id }
func (t *Table) Capacity() int { return t.capacity }

// Occupants returns a copy of the people currently seated.
func (t *Table) Occupants() []*Person {
	cp := make([]*Person, len(t.occupants))
	copy(cp, t.occupants)
	return cp
}

func (t *Table) OccupantCount() int { return len(t.occupants) }
func (t *Table) IsEmpty() bool      { return len(t.occupants) == 0 }

// OccupiedSince returns the time the current occupants were seated. It is
// meaningless while the table is empty.
func (t *Table) OccupiedSince() float64 { return t.occupiedSince }

// DueAt returns the time the whole table is expected to leave: the moment
// the longest actual dining time among the occupants has elapsed. ok is
// false for an empty table.
func (t *Table) DueAt() (due float64, ok bool) {
	if len(t.occupants) == 0 {
		return 0, false
	}
	longest := t.occupants[0].actual
	for _, p := range t.occupants[1:] {
		if p.actual > longest {
			longest = p.actual
		}
	}
	return t.occupiedSince + longest, true
}

// tryAdmit adds p when a seat is free. A rejected admission leaves the
// table untouched.
func (t *Table) tryAdmit(p *Person) bool {
	if len(t.occupants) >= t.capacity {
		return false
	}
	t.occupants = append(t.occupants, p)
	return true
}

func (t *Table) holds(p *Person) bool {
	for _, o := range t.occupants {
		if o == p {
			return true
		}
	}
	return false
}

func (t *Table) remove(p *Person) bool {
	for i, o := range t.occupants {
		if o == p {
			t.occupants = append(t.occupants[:i], t.occupants[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Table) clear() []*Person {
	evicted := t.occupants
	t.occupants = nil
	t.occupiedSince = 0
	return evicted
}
