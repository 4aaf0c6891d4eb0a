// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

// Finish replays the recorded event log against tokens, driving sink with
// a deterministic, well-nested enter/token/exit/error call sequence, and
// threading trivia tokens outward so each is attributed to the outermost
// node that can hold it. It panics if called more than once, or if the
// event log is malformed (unbalanced Enter/Exit, a forward parent that
// does not reference an Enter event) — both are programmer errors in the
// grammar code that built the log, not input problems.
func (p *Parser[K]) Finish(sink Sink[K]) {
	if p.finished {
		panic("evparse: Finish called more than once")
	}
	p.finished = true

	cursor := 0
	levels := 0
	var kinds []K

	emitTrivia := func() {
		for cursor < len(p.tokens) && p.tokens[cursor].Kind.IsTrivia() {
			sink.Token(p.tokens[cursor])
			cursor++
		}
	}

	for i := range p.events {
		ev := p.events[i]
		if ev.tag == eventEmpty {
			continue
		}

		switch ev.tag {
		case eventEnter:
			if len(kinds) != 0 {
				panic("evparse: Finish: malformed event log, kinds stack not empty at Enter")
			}
			kinds = append(kinds, ev.enterKind)
			parent := ev.forwardParent
			p.events[i] = event[K]{tag: eventEmpty}
			for parent != -1 {
				pev := p.events[parent]
				if pev.tag != eventEnter {
					panic("evparse: Finish: forward parent does not reference an Enter event")
				}
				kinds = append(kinds, pev.enterKind)
				next := pev.forwardParent
				p.events[parent] = event[K]{tag: eventEmpty}
				parent = next
			}
			for j := len(kinds) - 1; j >= 0; j-- {
				// keep as much trivia as possible outside of what we're entering
				if levels != 0 {
					emitTrivia()
				}
				sink.Enter(kinds[j])
				levels++
			}
			kinds = kinds[:0]

		case eventExit:
			sink.Exit()
			levels--
			// keep as much trivia as possible outside of top-level items
			if levels == 1 {
				emitTrivia()
			}

		case eventToken:
			emitTrivia()
			sink.Token(p.tokens[cursor])
			cursor++

		case eventError:
			var message *string
			if ev.hasMessage {
				m := ev.errMessage
				message = &m
			}
			sink.Error(ev.errExpected, message)
		}
	}

	if levels != 0 {
		panic("evparse: Finish: unbalanced enter/exit at end of event log")
	}
}
