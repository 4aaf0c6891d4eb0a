// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

import "runtime"

// Open is a handle to a syntax construct that is mid-parse: a slot has
// been reserved in the event log, but nothing has been written to it yet.
//
// An Open must be consumed exactly once, by Parser.Close or
// Parser.Abandon. If it is dropped instead, that is a programmer error:
// the finalizer armed when the marker was created panics the next time the
// garbage collector runs it, the same way a dropped drop-bomb would panic
// in a language with deterministic destructors. Go has neither, so this is
// the closest equivalent — it catches the bug, just later and on a GC
// goroutine rather than at the point of the mistake.
type Open struct {
	idx   int
	armed *bool
}

func newOpen(idx int) Open {
	armed := new(bool)
	*armed = true
	runtime.SetFinalizer(armed, func(a *bool) {
		if *a {
			panic("evparse: Open marker dropped without Close or Abandon")
		}
	})
	return Open{idx: idx, armed: armed}
}

// defuse marks the marker as consumed, so its finalizer becomes a no-op.
func (o Open) defuse() {
	*o.armed = false
	runtime.SetFinalizer(o.armed, nil)
}

// Closed references an already-written Enter event. It can be passed to
// Parser.Precede to retroactively make a new enclosing node its parent in
// the emitted tree, or simply ignored.
type Closed struct {
	idx int
}
