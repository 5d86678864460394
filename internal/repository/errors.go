// Package repository defines the stores finished simulation runs are kept
// in, and the error values they share. ErrRunNotFound lets handlers answer
// 404 without knowing which store is configured.
package repository

import "github.com/cockroachdb/errors"

// ErrRunNotFound is returned when no run exists for the requested id.
var ErrRunNotFound = errors.New("simulation run not found")

// ErrConflict is returned when a run with the same id is already stored.
var ErrConflict = errors.New("conflict")
