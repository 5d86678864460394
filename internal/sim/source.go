package sim

// Randomizer is a source of uniformly distributed floats in [0, 1). The
// engine itself never draws from it; it is consumed once per Person when the
// actual dining duration is fixed.
type Randomizer interface {
	Float64() float64
}

// PartySource is polled once per tick by Run. It returns the party that
// arrived at time now, or nil when nobody arrived.
type PartySource interface {
	GenerateParty(now float64) *Party
}
