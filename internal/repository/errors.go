// Package repository provides durable storage for completed bookings and
// read access to the flight schedule store.  Failures are surfaced to
// callers wrapped in ErrPersistence so higher layers can distinguish a
// storage fault from any other kind of error without depending on driver
// internals.
package repository

import "errors"

// ErrPersistence wraps every storage failure crossing the repository
// boundary.  The orchestrator folds it into a user-visible warning rather
// than failing the turn.
var ErrPersistence = errors.New("persistence failure")
