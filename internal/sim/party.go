package sim

import "github.com/cockroachdb/errors"

// Party is an ordered, non-empty group of people who arrived together and
// are seated together at a single table.
type Party struct {
	members   []*Person
	arrivedAt float64
}

// NewParty groups members into a party. It fails with ErrEmptyParty when no
// member is given and with ErrInvalidParty when a member is nil or listed
// twice.
func NewParty(members ...*Person) (*Party, error) {
	if len(members) == 0 {
		return nil, ErrEmptyParty
	}
	seen := make(map[*Person]struct{}, len(members))
	for i, m := range members {
		if m == nil {
			return nil, errors.Wrapf(ErrInvalidParty, "member %d is nil", i)
		}
		if _, ok := seen[m]; ok {
			return nil, errors.Wrapf(ErrInvalidParty, "%s listed twice", m)
		}
		seen[m] = struct{}{}
	}
	cp := make([]*Person, len(members))
	copy(cp, members)
	return &Party{members: cp}, nil
}

// Size returns the number of people in the party. This head count is the key
// used to match a party against table capacity.
func (p *Party) Size() int { return len(p.members) }

// Members returns a copy of the member list in arrival order.
func (p *Party) Members() []*Person {
	cp := make([]*Person, len(p.members))
	copy(cp, p.members)
	return cp
}

// ArrivedAt returns the time the party joined the waiting queue.
func (p *Party) ArrivedAt() float64 { return p.arrivedAt }

func (p *Party) memberIDs() []uint64 {
	ids := make([]uint64, len(p.members))
	for i, m := range p.members {
		ids[i] = m.id
	}
	return ids
}
