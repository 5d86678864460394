package generator

import (
	"github.com/cockroachdb/errors"

	"github.com/iliyamo/dining-sim/internal/sim"
)

// Config controls stochastic arrivals. On every tick a party arrives with
// probability ArrivalProbability; its size is uniform in
// [MinPartySize, MaxPartySize].
type Config struct {
	ArrivalProbability float64
	MinPartySize       int
	MaxPartySize       int
	People             People
}

// Generator is a sim.PartySource producing at most one party per tick.
type Generator struct {
	cfg     Config
	rnd     sim.Randomizer
	factory *factory
}

// New validates cfg and returns a generator drawing from rnd.
func New(cfg Config, rnd sim.Randomizer) (*Generator, error) {
	if rnd == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil randomizer")
	}
	if !(cfg.ArrivalProbability >= 0 && cfg.ArrivalProbability <= 1) {
		return nil, errors.Wrapf(ErrInvalidConfig, "arrival probability %g", cfg.ArrivalProbability)
	}
	if cfg.MinPartySize < 1 || cfg.MinPartySize > cfg.MaxPartySize {
		return nil, errors.Wrapf(ErrInvalidConfig, "party size %d..%d", cfg.MinPartySize, cfg.MaxPartySize)
	}
	if err := cfg.People.validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, rnd: rnd, factory: newFactory(cfg.People, rnd)}, nil
}

// GenerateParty implements sim.PartySource. The arrival draw is taken on
// every call, so the stream stays aligned with the tick count.
func (g *Generator) GenerateParty(now float64) *sim.Party {
	if g.rnd.Float64() >= g.cfg.ArrivalProbability {
		return nil
	}
	size := g.cfg.MinPartySize + g.factory.pick(g.cfg.MaxPartySize-g.cfg.MinPartySize+1)
	return g.factory.party(size)
}
