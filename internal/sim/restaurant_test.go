package sim

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantRequiresDistinctTables(t *testing.T) {
	_, err := NewRestaurant()
	assert.True(t, errors.Is(err, ErrNoTables))
	_, err = NewRestaurant(mustTable(t, 1, 2), mustTable(t, 1, 4))
	assert.True(t, errors.Is(err, ErrDuplicateTable))
	_, err = NewRestaurant(mustTable(t, 1, 2), nil)
	assert.Error(t, err)
}

func TestFindAvailableTableIsFirstFit(t *testing.T) {
	six, two, four := mustTable(t, 1, 6), mustTable(t, 2, 2), mustTable(t, 3, 4)
	r := mustRestaurant(t, six, two, four)
	assert.Same(t, six, r.FindAvailableTable(2), "first fit must win over tighter fit")
	assert.Same(t, six, r.FindAvailableTable(5))
	assert.Nil(t, r.FindAvailableTable(7))
}

func TestPartiallyOccupiedTableIsNeverToppedUp(t *testing.T) {
	four := mustTable(t, 1, 4)
	r := mustRestaurant(t, four)
	require.NoError(t, r.Seat(personFor(t, 1, 10), four))
	assert.Nil(t, r.FindAvailableTable(1))
	ok, err := r.AdmitParty(partyOf(t, 10, 1, 10))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, four.OccupantCount())
}

func TestAdmitPartyRejectsOversizedPartyWithoutSideEffects(t *testing.T) {
	r := mustRestaurant(t, mustTable(t, 1, 2), mustTable(t, 2, 4))
	waiting := partyOf(t, 1, 2, 10)
	require.NoError(t, r.Enqueue(waiting))
	big := partyOf(t, 10, 5, 10)
	ok, err := r.AdmitParty(big)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []*Party{waiting}, r.Queue())
	assert.Equal(t, 0, r.SeatedPatrons())
	for _, m := range big.Members() {
		assert.False(t, m.IsSeated())
	}
}

func TestAdmitPartySeatsWholePartyAtOneTable(t *testing.T) {
	four := mustTable(t, 1, 4)
	r := mustRestaurant(t, four)
	p := partyOf(t, 1, 3, 10)
	ok, err := r.AdmitParty(p)
	require.NoError(t, err)
	require.True(t, ok)
	for _, m := range p.Members() {
		assert.Same(t, four, m.SeatedAt())
	}
	assert.Equal(t, 3, four.OccupantCount())
	assert.NoError(t, r.Verify())
}

func TestAdmitPartyWithSeatedMemberFails(t *testing.T) {
	t1, t2 := mustTable(t, 1, 2), mustTable(t, 2, 2)
	r := mustRestaurant(t, t1, t2)
	p := partyOf(t, 1, 2, 10)
	require.NoError(t, r.Seat(p.Members()[1], t1))
	_, err := r.AdmitParty(p)
	assert.True(t, errors.Is(err, ErrAlreadySeated))
	assert.True(t, t2.IsEmpty())
	assert.NoError(t, r.Verify())
}

func TestLargePartyBlocksSmallerPartiesBehindIt(t *testing.T) {
	two, four := mustTable(t, 1, 2), mustTable(t, 2, 4)
	r := mustRestaurant(t, two, four)
	require.NoError(t, r.Seat(personFor(t, 100, 60), four))
	a := partyOf(t, 1, 4, 10)
	b := partyOf(t, 10, 2, 10)
	require.NoError(t, r.Enqueue(a))
	require.NoError(t, r.Enqueue(b))

	admissions, err := r.AdmitWaitingParties()
	require.NoError(t, err)
	assert.Empty(t, admissions)
	assert.Equal(t, []*Party{a, b}, r.Queue())
	assert.True(t, two.IsEmpty(), "small table must stay free behind the blocked head")
	assert.Equal(t, 6, r.WaitingPatrons())
}

func TestQueueIsServedInArrivalOrder(t *testing.T) {
	r := mustRestaurant(t, mustTable(t, 1, 2), mustTable(t, 2, 2), mustTable(t, 3, 2))
	parties := []*Party{partyOf(t, 1, 2, 10), partyOf(t, 10, 1, 10), partyOf(t, 20, 2, 10)}
	for _, p := range parties {
		require.NoError(t, r.Enqueue(p))
	}
	admissions, err := r.AdmitWaitingParties()
	require.NoError(t, err)
	require.Len(t, admissions, 3)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{
		admissions[0].TableID, admissions[1].TableID, admissions[2].TableID})
	assert.Equal(t, 0, r.WaitingParties())
	assert.Equal(t, 0, r.WaitingPatrons())
}

func TestTableLeavesTogetherWhenLastDinerFinishes(t *testing.T) {
	tbl := mustTable(t, 1, 2)
	r := mustRestaurant(t, tbl)
	short, long := personFor(t, 1, 30), personFor(t, 2, 50)
	require.NoError(t, r.Seat(short, tbl))
	require.NoError(t, r.Seat(long, tbl))

	for i := 0; i < 4; i++ {
		rep, err := r.Step(10)
		require.NoError(t, err)
		assert.Empty(t, rep.Evictions)
	}
	assert.Equal(t, 40.0, r.Now())
	assert.Same(t, tbl, short.SeatedAt(), "early finisher must wait for the table")
	assert.Equal(t, 2, tbl.OccupantCount())

	rep, err := r.Step(10)
	require.NoError(t, err)
	require.Len(t, rep.Evictions, 1)
	assert.ElementsMatch(t, []uint64{1, 2}, rep.Evictions[0].PersonIDs)
	assert.Equal(t, 2, rep.Departed())
	assert.True(t, tbl.IsEmpty())
	assert.Nil(t, short.SeatedAt())
	assert.Nil(t, long.SeatedAt())
}

func TestVacatedTableIsReusedInSameTick(t *testing.T) {
	tbl := mustTable(t, 1, 2)
	r := mustRestaurant(t, tbl)
	first := partyOf(t, 1, 2, 10)
	require.NoError(t, r.Enqueue(first))
	rep, err := r.Step(5)
	require.NoError(t, err)
	require.Len(t, rep.Admissions, 1)
	assert.Equal(t, 5.0, rep.Admissions[0].Waited)
	assert.Equal(t, 5.0, tbl.OccupiedSince())

	second := partyOf(t, 10, 2, 10)
	require.NoError(t, r.Enqueue(second))
	rep, err = r.Step(5)
	require.NoError(t, err)
	assert.Empty(t, rep.Admissions)
	assert.Equal(t, 1, rep.ArrivedParties)
	assert.Equal(t, 2, rep.ArrivedPatrons)

	rep, err = r.Step(5)
	require.NoError(t, err)
	require.Len(t, rep.Evictions, 1)
	require.Len(t, rep.Admissions, 1)
	assert.Equal(t, []uint64{10, 11}, rep.Admissions[0].PersonIDs)
	assert.Equal(t, 10.0, rep.Admissions[0].Waited)
	assert.Equal(t, 15.0, tbl.OccupiedSince())
	assert.Equal(t, 2, rep.SeatedPatrons)

	stats := r.Stats()
	assert.Equal(t, 2, stats.ServedPatrons, "turnover must count although the seat count is unchanged")
	assert.Equal(t, 4, stats.SeatedPatrons)
	assert.Equal(t, 10.0, stats.MaxWait)
	assert.Equal(t, 7.5, stats.MeanWait())
}

func TestAdvanceClockRejectsNonPositiveStep(t *testing.T) {
	r := mustRestaurant(t, mustTable(t, 1, 2))
	for _, step := range []float64{0, -1} {
		assert.True(t, errors.Is(r.AdvanceClock(step), ErrInvalidTimeStep))
		_, err := r.Step(step)
		assert.True(t, errors.Is(err, ErrInvalidTimeStep))
	}
	assert.Equal(t, 0.0, r.Now())
}

func TestRunWithZeroDurationStepsOnce(t *testing.T) {
	r := mustRestaurant(t, mustTable(t, 1, 2))
	ticks := 0
	require.NoError(t, r.Run(0, 5, nil, func(TickReport) { ticks++ }))
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 5.0, r.Now())
}

func TestRunStopsOnceDurationIsReached(t *testing.T) {
	r := mustRestaurant(t, mustTable(t, 1, 2))
	var times []float64
	require.NoError(t, r.Run(12, 5, nil, func(rep TickReport) { times = append(times, rep.Time) }))
	assert.Equal(t, []float64{5, 10, 15}, times)
	assert.True(t, errors.Is(r.Run(10, 0, nil, nil), ErrInvalidTimeStep))
}

func TestRunWithFractionalStepDoesNotAddATick(t *testing.T) {
	r := mustRestaurant(t, mustTable(t, 1, 2))
	var times []float64
	require.NoError(t, r.Run(1, 0.1, nil, func(rep TickReport) { times = append(times, rep.Time) }))
	require.Len(t, times, 10)
	assert.InDelta(t, 1.0, r.Now(), 1e-12)
	for i := 1; i < len(times); i++ {
		assert.Greater(t, times[i], times[i-1])
	}
}

func TestRunContinuesFromCurrentClock(t *testing.T) {
	r := mustRestaurant(t, mustTable(t, 1, 2))
	require.NoError(t, r.Run(10, 5, nil, nil))
	ticks := 0
	require.NoError(t, r.Run(20, 5, nil, func(TickReport) { ticks++ }))
	assert.Equal(t, 2, ticks)
	assert.Equal(t, 20.0, r.Now())

	// a duration already passed still gets one tick
	ticks = 0
	require.NoError(t, r.Run(5, 5, nil, func(TickReport) { ticks++ }))
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 25.0, r.Now())
}

func TestAdmitPartyRejectsQueuedParty(t *testing.T) {
	tbl := mustTable(t, 1, 4)
	r := mustRestaurant(t, tbl)
	party := partyOf(t, 1, 2, 10)
	require.NoError(t, r.Enqueue(party))

	ok, err := r.AdmitParty(party)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrPartyQueued))
	assert.True(t, tbl.IsEmpty())
	assert.Equal(t, 1, r.WaitingParties())

	rep, err := r.Step(5)
	require.NoError(t, err)
	require.Len(t, rep.Admissions, 1)
	assert.NoError(t, r.Verify())
}

// scriptedSource emits a party every tick from a seeded generator.
type scriptedSource struct {
	rnd    *lcgRand
	nextID uint64
	dining DiningTime
}

func (s *scriptedSource) GenerateParty(now float64) *Party {
	if s.rnd.Float64() < 0.4 {
		return nil
	}
	size := 1 + int(s.rnd.Float64()*6)
	members := make([]*Person, size)
	for i := range members {
		s.nextID++
		members[i] = NewPerson(s.nextID, "guest", 40, s.dining, s.rnd)
	}
	p, _ := NewParty(members...)
	return p
}

type traceEntry struct {
	Time       float64
	Evictions  []Eviction
	Admissions []Admission
}

func runTrace(t *testing.T, seed uint64) ([]traceEntry, Stats) {
	t.Helper()
	dining, err := NewDiningTime(20, 90)
	require.NoError(t, err)
	tables := []*Table{
		mustTable(t, 1, 2), mustTable(t, 2, 2), mustTable(t, 3, 4),
		mustTable(t, 4, 4), mustTable(t, 5, 6),
	}
	r := mustRestaurant(t, tables...)
	src := &scriptedSource{rnd: &lcgRand{state: seed}, dining: dining}
	var trace []traceEntry
	err = r.Run(600, 5, src, func(rep TickReport) {
		require.NoError(t, r.Verify())
		for _, tbl := range r.Tables() {
			require.LessOrEqual(t, tbl.OccupantCount(), tbl.Capacity())
			for _, p := range tbl.Occupants() {
				require.Same(t, tbl, p.SeatedAt())
			}
		}
		trace = append(trace, traceEntry{rep.Time, rep.Evictions, rep.Admissions})
	})
	require.NoError(t, err)
	return trace, r.Stats()
}

func TestRunIsDeterministicAndKeepsInvariants(t *testing.T) {
	first, firstStats := runTrace(t, 42)
	second, secondStats := runTrace(t, 42)
	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
	assert.Greater(t, firstStats.ServedPatrons, 0)
	assert.LessOrEqual(t, firstStats.SeatedPatrons, firstStats.ArrivedPatrons)

	other, _ := runTrace(t, 43)
	assert.NotEqual(t, first, other)
}
