// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

// Peek returns the current lookahead token — the first token at or after
// the cursor whose kind is not trivia — or false if the token stream is
// exhausted. It never mutates observable parser state.
func (p *Parser[K]) Peek() (Token[K], bool) {
	return p.peekN(0)
}

// PeekN returns the nth non-trivia token beyond the current one (PeekN(0)
// is equivalent to Peek), or false if there is no such token. It never
// mutates observable parser state.
func (p *Parser[K]) PeekN(n int) (Token[K], bool) {
	return p.peekN(n)
}

func (p *Parser[K]) peekN(n int) (Token[K], bool) {
	idx := p.idx
	for {
		if idx >= len(p.tokens) {
			var zero Token[K]
			return zero, false
		}
		if p.tokens[idx].Kind.IsTrivia() {
			idx++
			continue
		}
		if n == 0 {
			return p.tokens[idx], true
		}
		n--
		idx++
	}
}

// Bump consumes and returns the current token, clearing the expected-kind
// set. It panics if the stream is exhausted — callers should check At or
// Peek first.
func (p *Parser[K]) Bump() Token[K] {
	tok, ok := p.Peek()
	if !ok {
		panic("evparse: Bump with no tokens")
	}
	for p.tokens[p.idx].Kind.IsTrivia() {
		p.idx++
	}
	p.events = append(p.events, event[K]{tag: eventToken})
	p.idx++
	p.expected = p.expected[:0]
	return tok
}

// At records kind as expected at the current position, for use in a later
// Error diagnostic, and reports whether the lookahead token has that kind.
func (p *Parser[K]) At(kind K) bool {
	p.expected = append(p.expected, kind)
	tok, ok := p.Peek()
	return ok && tok.Kind == kind
}

// AtOneOf is At generalized to several candidate kinds: all of them are
// recorded as expected, and it reports whether the lookahead matches any.
func (p *Parser[K]) AtOneOf(kinds ...K) bool {
	found := false
	for _, k := range kinds {
		if p.At(k) {
			found = true
		}
	}
	return found
}

// Eat consumes and returns the current token if it has kind. Otherwise it
// records a diagnostic (via Error) and returns the zero token and false.
func (p *Parser[K]) Eat(kind K) (Token[K], bool) {
	if p.At(kind) {
		return p.Bump(), true
	}
	p.Error()
	var zero Token[K]
	return zero, false
}

// IsAtEnd reports whether the cursor has reached the end of the token
// stream (ignoring any trailing trivia).
func (p *Parser[K]) IsAtEnd() bool {
	_, ok := p.Peek()
	return !ok
}

// Error records a diagnostic at the current cursor position, carrying the
// set of kinds tried since the last successful Bump. As its built-in
// recovery, it consumes one token if any remain, so that grammar loops
// which call Error unconditionally still make forward progress. This is
// intentionally the full recovery budget — no cascading resynchronization
// is attempted here.
func (p *Parser[K]) Error() {
	p.errorImpl(false, "")
}

// ErrorWith is Error with a caller-supplied message attached.
func (p *Parser[K]) ErrorWith(message string) {
	p.errorImpl(true, message)
}

func (p *Parser[K]) errorImpl(hasMessage bool, message string) {
	expected := p.expected
	p.expected = nil
	p.events = append(p.events, event[K]{
		tag:         eventError,
		errExpected: expected,
		errMessage:  message,
		hasMessage:  hasMessage,
	})
	if _, ok := p.Peek(); ok {
		p.Bump()
	}
}
