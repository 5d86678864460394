package generator

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/iliyamo/dining-sim/internal/sim"
)

// ErrInvalidConfig is returned when a generator is built from settings that
// could never produce a valid party.
var ErrInvalidConfig = errors.New("invalid generator config")

var defaultNames = []string{
	"Ada", "Bea", "Cal", "Dev", "Eli", "Fay", "Gus", "Hal", "Ivy", "Jo",
	"Kai", "Lou", "Max", "Nia", "Oz", "Pia", "Quin", "Rae", "Sol", "Tess",
}

// People describes how individual patrons are built.
type People struct {
	// DiningTimes lists the ranges a patron may draw from, uniformly.
	DiningTimes []sim.DiningTime
	MinAge      int
	MaxAge      int
	// Names is optional; a built-in list is used when empty.
	Names []string
}

func (p People) validate() error {
	if len(p.DiningTimes) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no dining times")
	}
	if p.MinAge < 0 || p.MinAge > p.MaxAge {
		return errors.Wrapf(ErrInvalidConfig, "ages %d..%d", p.MinAge, p.MaxAge)
	}
	return nil
}

// factory builds people with increasing ids. Every random draw, including
// the one fixing the actual dining time, comes from rnd so a run is
// reproducible from its seed.
type factory struct {
	people People
	rnd    sim.Randomizer
	nextID uint64
}

func newFactory(people People, rnd sim.Randomizer) *factory {
	if len(people.Names) == 0 {
		people.Names = defaultNames
	}
	return &factory{people: people, rnd: rnd}
}

// pick returns an index in [0, n).
func (f *factory) pick(n int) int {
	i := int(f.rnd.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

func (f *factory) party(size int) *sim.Party {
	members := make([]*sim.Person, size)
	for i := range members {
		f.nextID++
		name := fmt.Sprintf("%s-%d", f.people.Names[f.pick(len(f.people.Names))], f.nextID)
		age := f.people.MinAge + f.pick(f.people.MaxAge-f.people.MinAge+1)
		dt := f.people.DiningTimes[f.pick(len(f.people.DiningTimes))]
		members[i] = sim.NewPerson(f.nextID, name, age, dt, f.rnd)
	}
	party, err := sim.NewParty(members...)
	if err != nil {
		// size is validated when the generator is built
		panic(err)
	}
	return party
}
