// Package sim implements the seating engine of the dining simulation. It
// models tables with a fixed number of seats, parties of patrons waiting in a
// FIFO queue, and departures driven by a sampled dining duration. The engine
// is single threaded: one Restaurant is advanced by one driver, tick by tick.
package sim

import "github.com/cockroachdb/errors"

// Construction errors. An object that fails construction is never returned
// in a partially built state.
var (
	// ErrInvalidRange is returned when a dining time range has its lower
	// bound above its upper bound, or a bound that is not a finite
	// non-negative number.
	ErrInvalidRange = errors.New("invalid dining time range")
	// ErrInvalidCapacity is returned when a table is created with a
	// non-positive capacity.
	ErrInvalidCapacity = errors.New("invalid table capacity")
	// ErrEmptyParty is returned when a party is created without members.
	ErrEmptyParty = errors.New("empty party")
	// ErrInvalidParty is returned when a party lists a nil or repeated member.
	ErrInvalidParty = errors.New("invalid party member")
	// ErrNoTables is returned when a restaurant is created without tables.
	ErrNoTables = errors.New("restaurant has no tables")
	// ErrDuplicateTable is returned when two tables share an id.
	ErrDuplicateTable = errors.New("duplicate table id")
)

// Runtime errors. Any of these surfacing from a tick means the seating
// relation was about to break; they are returned to the caller, never
// swallowed.
var (
	ErrInvalidTimeStep = errors.New("invalid time step")
	ErrInvalidDuration = errors.New("invalid run duration")
	ErrAlreadySeated   = errors.New("person already seated")
	ErrTableFull       = errors.New("table full")
	ErrNotSeated       = errors.New("person not seated")
	ErrSeatingMismatch = errors.New("seating relation mismatch")
	ErrUnknownTable    = errors.New("table not part of restaurant")
	ErrPartyQueued     = errors.New("party is waiting in the queue")
)
