package sim

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestTableCapacityMustBePositive(t *testing.T) {
	for _, c := range []int{0, -2} {
		tbl, err := NewTable(1, c)
		assert.Nil(t, tbl)
		assert.True(t, errors.Is(err, ErrInvalidCapacity))
	}
}

func TestTableRejectsAdmissionWhenFull(t *testing.T) {
	tbl := mustTable(t, 1, 1)
	assert.True(t, tbl.tryAdmit(personFor(t, 1, 10)))
	assert.False(t, tbl.tryAdmit(personFor(t, 2, 10)))
	assert.Equal(t, 1, tbl.OccupantCount())
	assert.Equal(t, uint64(1), tbl.Occupants()[0].ID())
}

func TestTableDueAtUsesLongestDiner(t *testing.T) {
	tbl := mustTable(t, 1, 4)
	_, ok := tbl.DueAt()
	assert.False(t, ok)
	tbl.occupiedSince = 5
	tbl.tryAdmit(personFor(t, 1, 30))
	tbl.tryAdmit(personFor(t, 2, 50))
	tbl.tryAdmit(personFor(t, 3, 20))
	due, ok := tbl.DueAt()
	assert.True(t, ok)
	assert.Equal(t, 55.0, due)
}
