// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

// Checkpoint is a snapshot of Parser state — cursor, event log length, and
// expected-kind set — that Parser.Restore can roll back to, discarding any
// speculative parsing done since.
//
// Opens created before a Checkpoint must not be Closed before that
// Checkpoint is restored or superseded, and a Checkpoint must not be
// restored out of order with respect to a later Checkpoint — see
// Parser.Restore.
type Checkpoint[K Kind] struct {
	idx       int
	eventsLen int
	expected  []K
}
