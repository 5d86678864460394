package sim

import "github.com/cockroachdb/errors"

// ledger owns the bidirectional seating relation between people and tables.
// Every mutation updates the person's seated-at reference and the table's
// occupant list together, so neither side can change on its own.
type ledger struct {
	seated int
}

func (l *ledger) seat(p *Person, t *Table) error {
	if p.seatedAt != nil {
		return errors.Wrapf(ErrAlreadySeated, "%s at table %d", p, p.seatedAt.id)
	}
	if !t.tryAdmit(p) {
		return errors.Wrapf(ErrTableFull, "table %d holds %d of %d",
			t.id, len(t.occupants), t.capacity)
	}
	p.seatedAt = t
	l.seated++
	return nil
}

func (l *ledger) unseat(p *Person) (*Table, error) {
	t := p.seatedAt
	if t == nil {
		return nil, errors.Wrapf(ErrNotSeated, "%s", p)
	}
	if !t.remove(p) {
		return nil, errors.Wrapf(ErrSeatingMismatch,
			"%s points at table %d which does not list it", p, t.id)
	}
	p.seatedAt = nil
	l.seated--
	if t.IsEmpty() {
		t.occupiedSince = 0
	}
	return t, nil
}

// evictAll removes every occupant of t. The relation is checked for all
// occupants before anything is mutated.
func (l *ledger) evictAll(t *Table) ([]*Person, error) {
	for _, p := range t.occupants {
		if p.seatedAt != t {
			return nil, errors.Wrapf(ErrSeatingMismatch,
				"table %d lists %s which is not seated there", t.id, p)
		}
	}
	evicted := t.clear()
	for _, p := range evicted {
		p.seatedAt = nil
	}
	l.seated -= len(evicted)
	return evicted, nil
}

// verify checks the relation across tables and the people still waiting in
// the queue.
func (l *ledger) verify(tables []*Table, waiting []*Party) error {
	seen := make(map[*Person]uint64)
	total := 0
	for _, t := range tables {
		if len(t.occupants) > t.capacity {
			return errors.Wrapf(ErrTableFull, "table %d holds %d of %d",
				t.id, len(t.occupants), t.capacity)
		}
		for _, p := range t.occupants {
			if other, ok := seen[p]; ok {
				return errors.Wrapf(ErrSeatingMismatch,
					"%s listed at tables %d and %d", p, other, t.id)
			}
			seen[p] = t.id
			if p.seatedAt != t {
				return errors.Wrapf(ErrSeatingMismatch,
					"table %d lists %s which is not seated there", t.id, p)
			}
		}
		total += len(t.occupants)
	}
	for _, party := range waiting {
		for _, p := range party.members {
			if p.seatedAt != nil {
				return errors.Wrapf(ErrSeatingMismatch,
					"waiting %s points at table %d", p, p.seatedAt.id)
			}
		}
	}
	if total != l.seated {
		return errors.Wrapf(ErrSeatingMismatch,
			"ledger counts %d seated, tables hold %d", l.seated, total)
	}
	return nil
}
