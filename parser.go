// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

// Parser is an event-based parser: a token cursor, an event log, and the
// set of kinds "expected" since the last accepted token (used to build
// diagnostics). Grammar functions drive it with Open/Close/Abandon/Precede
// to record structure and Peek/PeekN/At/Eat/Bump to consume tokens; Finish
// replays the recorded events against a Sink to build a tree.
//
// Parser is strictly single-threaded: no operation blocks, nothing is
// shared beyond the caller's token slice, and there is no internal
// parallelism of any kind.
type Parser[K Kind] struct {
	tokens   []Token[K]
	idx      int
	expected []K
	events   []event[K]
	finished bool
}

// New returns a parser over tokens. Trivia tokens among them are skipped by
// Peek, PeekN, At, and Bump, and only resurface when Finish replays the
// event log, attributed to the outermost node able to hold them.
func New[K Kind](tokens []Token[K]) *Parser[K] {
	return &Parser[K]{tokens: tokens}
}

// Open reserves a slot for a syntax construct that is about to begin. The
// returned marker must eventually be consumed by Close or Abandon.
func (p *Parser[K]) Open() Open {
	idx := len(p.events)
	p.events = append(p.events, event[K]{tag: eventEmpty})
	return newOpen(idx)
}

// Close finishes the syntax construct reserved by open as a node of kind,
// and returns a Closed marker that Precede can later use to retroactively
// make a new enclosing node its parent.
func (p *Parser[K]) Close(open Open, kind K) Closed {
	open.defuse()
	if p.events[open.idx].tag != eventEmpty {
		panic("evparse: Open marker already consumed")
	}
	p.events[open.idx] = event[K]{tag: eventEnter, enterKind: kind, forwardParent: -1}
	p.events = append(p.events, event[K]{tag: eventExit})
	return Closed{idx: open.idx}
}

// Abandon discards the syntax construct reserved by open. Any events
// recorded since it was opened, if any, belong to the parent instead.
func (p *Parser[K]) Abandon(open Open) {
	open.defuse()
	if p.events[open.idx].tag != eventEmpty {
		panic("evparse: Open marker already consumed")
	}
}

// Precede opens a new syntax construct and makes it the parent, in the
// emitted tree, of the node closed refers to.
//
// Consider a grammar <expr> ::= <int> | <expr> "+" <expr>. Having seen an
// <int>, the grammar has already entered and exited an Expr node for it.
// On then seeing "+", it calls Precede on that just-closed Expr to open a
// new BinaryExpr whose first child will be the already-closed Expr — by
// writing the new open's index into the closed Enter's forward parent.
func (p *Parser[K]) Precede(closed Closed) Open {
	if ev := p.events[closed.idx]; ev.tag != eventEnter {
		panic("evparse: Precede target is not an Enter event")
	} else if ev.forwardParent != -1 {
		panic("evparse: Precede target already has a forward parent")
	}
	ret := p.Open()
	p.events[closed.idx].forwardParent = ret.idx
	return ret
}

// Save snapshots the parser's state — cursor, event log length, and
// expected-kind set — so a speculative parse can later be rolled back with
// Restore. It clears the expected-kind set.
func (p *Parser[K]) Save() Checkpoint[K] {
	cp := Checkpoint[K]{idx: p.idx, eventsLen: len(p.events), expected: p.expected}
	p.expected = nil
	return cp
}

// Restore rolls the parser back to a previously saved Checkpoint,
// truncating the event log and restoring the cursor and expected set.
//
// Any Open created after cp, or any Checkpoint created after cp, must not
// still be outstanding when Restore is called — see Checkpoint.
func (p *Parser[K]) Restore(cp Checkpoint[K]) {
	p.idx = cp.idx
	p.events = p.events[:cp.eventsLen]
	p.expected = cp.expected
}

// ErrorSince reports whether an Error event was recorded after cp was
// taken.
func (p *Parser[K]) ErrorSince(cp Checkpoint[K]) bool {
	for i := cp.eventsLen; i < len(p.events); i++ {
		if p.events[i].tag == eventError {
			return true
		}
	}
	return false
}
