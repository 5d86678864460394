package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same sample.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// lcgRand is a tiny deterministic generator for property style tests.
type lcgRand struct{ state uint64 }

func (l *lcgRand) Float64() float64 {
	l.state = l.state*6364136223846793005 + 1442695040888963407
	return float64(l.state>>11) / (1 << 53)
}

func mustTable(t *testing.T, id uint64, capacity int) *Table {
	t.Helper()
	tbl, err := NewTable(id, capacity)
	require.NoError(t, err)
	return tbl
}

func mustRestaurant(t *testing.T, tables ...*Table) *Restaurant {
	t.Helper()
	r, err := NewRestaurant(tables...)
	require.NoError(t, err)
	return r
}

// personFor returns a person whose actual dining time is exactly d.
func personFor(t *testing.T, id uint64, d float64) *Person {
	t.Helper()
	dt, err := NewDiningTime(d, d)
	require.NoError(t, err)
	return NewPerson(id, "guest", 30, dt, fixedRand(0.5))
}

func mustParty(t *testing.T, members ...*Person) *Party {
	t.Helper()
	p, err := NewParty(members...)
	require.NoError(t, err)
	return p
}

// partyOf builds a party of size people who each dine for d.
func partyOf(t *testing.T, firstID uint64, size int, d float64) *Party {
	t.Helper()
	members := make([]*Person, size)
	for i := range members {
		members[i] = personFor(t, firstID+uint64(i), d)
	}
	return mustParty(t, members...)
}
