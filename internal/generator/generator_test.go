package generator

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/dining-sim/internal/sim"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func testPeople(t *testing.T) People {
	t.Helper()
	short, err := sim.NewDiningTime(30, 60)
	require.NoError(t, err)
	long, err := sim.NewDiningTime(60, 120)
	require.NoError(t, err)
	return People{DiningTimes: []sim.DiningTime{short, long}, MinAge: 18, MaxAge: 80}
}

func TestRandomIsReproducible(t *testing.T) {
	a, b := NewRandom(7), NewRandom(7)
	for i := 0; i < 100; i++ {
		v := a.Float64()
		assert.Equal(t, v, b.Float64())
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.NotEqual(t, NewRandom(7).Float64(), NewRandom(8).Float64())
}

func TestGeneratorRejectsBadConfig(t *testing.T) {
	people := testPeople(t)
	tests := []Config{
		{ArrivalProbability: 1.5, MinPartySize: 1, MaxPartySize: 2, People: people},
		{ArrivalProbability: 0.5, MinPartySize: 0, MaxPartySize: 2, People: people},
		{ArrivalProbability: 0.5, MinPartySize: 3, MaxPartySize: 2, People: people},
		{ArrivalProbability: 0.5, MinPartySize: 1, MaxPartySize: 2},
	}
	for i, cfg := range tests {
		_, err := New(cfg, NewRandom(1))
		assert.True(t, errors.Is(err, ErrInvalidConfig), "case %d", i)
	}
	_, err := New(Config{ArrivalProbability: 0.5, MinPartySize: 1, MaxPartySize: 2, People: people}, nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestGeneratorHonoursArrivalProbability(t *testing.T) {
	people := testPeople(t)
	never, err := New(Config{ArrivalProbability: 0, MinPartySize: 1, MaxPartySize: 4, People: people}, NewRandom(1))
	require.NoError(t, err)
	always, err := New(Config{ArrivalProbability: 1, MinPartySize: 1, MaxPartySize: 4, People: people}, NewRandom(1))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		assert.Nil(t, never.GenerateParty(float64(i)))
		p := always.GenerateParty(float64(i))
		require.NotNil(t, p)
		assert.GreaterOrEqual(t, p.Size(), 1)
		assert.LessOrEqual(t, p.Size(), 4)
		for _, m := range p.Members() {
			assert.GreaterOrEqual(t, m.Age(), 18)
			assert.LessOrEqual(t, m.Age(), 80)
			assert.GreaterOrEqual(t, m.ActualDiningTime(), 30.0)
			assert.LessOrEqual(t, m.ActualDiningTime(), 120.0)
		}
	}
}

func TestGeneratorAssignsUniqueIDs(t *testing.T) {
	g, err := New(Config{ArrivalProbability: 1, MinPartySize: 2, MaxPartySize: 2, People: testPeople(t)}, NewRandom(3))
	require.NoError(t, err)
	seen := map[uint64]bool{}
	for i := 0; i < 10; i++ {
		for _, m := range g.GenerateParty(0).Members() {
			assert.False(t, seen[m.ID()], "id %d reused", m.ID())
			seen[m.ID()] = true
		}
	}
	assert.Len(t, seen, 20)
}

func TestPickStaysInRangeAtUpperEdge(t *testing.T) {
	f := newFactory(testPeople(t), constRand(0.9999999999))
	assert.Equal(t, 4, f.pick(5))
	assert.Equal(t, 0, f.pick(1))
}

func TestScheduleReleasesOneDuePartyPerPoll(t *testing.T) {
	s, err := NewSchedule([]Arrival{
		{At: 10, Size: 2},
		{At: 0, Size: 4},
		{At: 10, Size: 1},
	}, testPeople(t), NewRandom(1))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Remaining())

	p := s.GenerateParty(0)
	require.NotNil(t, p)
	assert.Equal(t, 4, p.Size())
	assert.Nil(t, s.GenerateParty(5))

	p = s.GenerateParty(10)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Size(), "ties keep schedule order")
	p = s.GenerateParty(15)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.Size())
	assert.Nil(t, s.GenerateParty(20))
	assert.Equal(t, 0, s.Remaining())
}

func TestScheduleRejectsBadArrivals(t *testing.T) {
	_, err := NewSchedule([]Arrival{{At: 0, Size: 0}}, testPeople(t), NewRandom(1))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = NewSchedule([]Arrival{{At: -1, Size: 2}}, testPeople(t), NewRandom(1))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestGeneratorDrivesDeterministicRuns(t *testing.T) {
	run := func(seed uint64) ([]sim.TickReport, sim.Stats) {
		rnd := NewRandom(seed)
		g, err := New(Config{ArrivalProbability: 0.5, MinPartySize: 1, MaxPartySize: 6, People: testPeople(t)}, rnd)
		require.NoError(t, err)
		var tables []*sim.Table
		for i, c := range []int{2, 2, 4, 4, 6} {
			tbl, err := sim.NewTable(uint64(i+1), c)
			require.NoError(t, err)
			tables = append(tables, tbl)
		}
		r, err := sim.NewRestaurant(tables...)
		require.NoError(t, err)
		var reports []sim.TickReport
		require.NoError(t, r.Run(480, 5, g, func(rep sim.TickReport) {
			require.NoError(t, r.Verify())
			reports = append(reports, rep)
		}))
		return reports, r.Stats()
	}
	a, aStats := run(99)
	b, bStats := run(99)
	assert.Equal(t, a, b)
	assert.Equal(t, aStats, bStats)
	assert.Greater(t, aStats.ArrivedParties, 0)
}
