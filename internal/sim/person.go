package sim

import "fmt"

// Person is a single patron. The seated-at relation is owned by the
// restaurant's seating ledger; Person only exposes it for reading.
type Person struct {
	id         uint64
	name       string
	age        int
	diningTime DiningTime
	actual     float64
	seatedAt   *Table
}

// NewPerson creates a patron and samples its actual dining duration from
// diningTime using exactly one draw from rnd.
func NewPerson(id uint64, name string, age int, diningTime DiningTime, rnd Randomizer) *Person {
	return &Person{
		id:         id,
		name:       name,
		age:        age,
		diningTime: diningTime,
		actual:     diningTime.Interpolate(rnd.Float64()),
	}
}

func (p *Person) ID() uint64             { return p.id }
func (p *Person) Name() string           { return p.name }
func (p *Person) Age() int               { return p.age }
func (p *Person) DiningTime() DiningTime { return p.diningTime }

// ActualDiningTime returns the duration sampled at construction.
func (p *Person) ActualDiningTime() float64 { return p.actual }

// SeatedAt returns the table the person currently occupies, or nil.
func (p *Person) SeatedAt() *Table { return p.seatedAt }

// IsSeated reports whether the person currently occupies a table.
func (p *Person) IsSeated() bool { return p.seatedAt != nil }

func (p *Person) String() string {
	return fmt.Sprintf("person %d (%s)", p.id, p.name)
}
