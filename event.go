// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

// eventTag discriminates the event union. The zero value, eventEmpty, is
// the distinguished "abandoned slot" state — it costs nothing beyond the
// tag byte already required to tell the variants apart, which is as close
// as a tagged struct gets in Go to the niche-optimised Option<Event> the
// reference implementation relies on (see the event.go entry in DESIGN.md).
type eventTag uint8

const (
	eventEmpty eventTag = iota
	eventEnter
	eventToken
	eventExit
	eventError
)

// event is one slot in the parser's event log.
type event[K Kind] struct {
	tag eventTag

	// eventEnter
	enterKind     K
	forwardParent int // index of the enclosing Enter, or -1 for none

	// eventError
	errExpected []K
	errMessage  string
	hasMessage  bool
}
