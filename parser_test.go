// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse_test

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/mdhender/evparse"
)

// testKind is a tiny Kind used only by these tests: digits, "+", a single
// trivia kind (spaces), and a couple of node kinds.
type testKind int

const (
	tkUnknown testKind = iota
	tkSpace            // trivia
	tkNumber
	tkPlus
	tkNodeLiteral
	tkNodeBinary
	tkNodeRoot
)

func (k testKind) IsTrivia() bool { return k == tkSpace }

func (k testKind) String() string {
	switch k {
	case tkSpace:
		return "Space"
	case tkNumber:
		return "Number"
	case tkPlus:
		return "Plus"
	case tkNodeLiteral:
		return "Literal"
	case tkNodeBinary:
		return "Binary"
	case tkNodeRoot:
		return "Root"
	default:
		return "Unknown"
	}
}

// recordingSink collects the call sequence Finish drives it with, as a
// flat trace, so tests can assert on shape without building real nodes.
type recordingSink struct {
	trace []string
}

func (s *recordingSink) Enter(kind testKind) {
	s.trace = append(s.trace, "enter:"+kind.String())
}

func (s *recordingSink) Token(tok evparse.Token[testKind]) {
	s.trace = append(s.trace, "token:"+tok.Kind.String()+":"+tok.Text)
}

func (s *recordingSink) Exit() {
	s.trace = append(s.trace, "exit")
}

func (s *recordingSink) Error(expected []testKind, message *string) {
	s.trace = append(s.trace, "error")
}

func tok(k testKind, text string) evparse.Token[testKind] {
	return evparse.Token[testKind]{Kind: k, Text: text}
}

// literalExpr parses a single Number as a Literal node.
func literalExpr(p *evparse.Parser[testKind]) evparse.Closed {
	m := p.Open()
	p.Bump()
	return p.Close(m, tkNodeLiteral)
}

// sumExpr parses a left-associative chain of Number ("+" Number)*, using
// Precede to retroactively wrap the left-hand side once an operator is
// seen — this is the shape every Pratt-style grammar function takes.
func sumExpr(p *evparse.Parser[testKind]) evparse.Closed {
	lhs := literalExpr(p)
	for p.At(tkPlus) {
		m := p.Precede(lhs)
		p.Bump()
		literalExpr(p)
		lhs = p.Close(m, tkNodeBinary)
	}
	return lhs
}

func TestFinish_SingleLiteral_BalancedEmission(t *testing.T) {
	toks := []evparse.Token[testKind]{tok(tkNumber, "1")}
	p := evparse.New(toks)
	literalExpr(p)

	sink := &recordingSink{}
	p.Finish(sink)

	want := []string{"enter:Literal", "token:Number:1", "exit"}
	assertTrace(t, sink.trace, want)
}

func TestFinish_Precede_WrapsLeftHandSide(t *testing.T) {
	toks := []evparse.Token[testKind]{
		tok(tkNumber, "1"), tok(tkPlus, "+"), tok(tkNumber, "2"),
	}
	p := evparse.New(toks)
	sumExpr(p)

	sink := &recordingSink{}
	p.Finish(sink)

	want := []string{
		"enter:Binary",
		"enter:Literal", "token:Number:1", "exit",
		"token:Plus:+",
		"enter:Literal", "token:Number:2", "exit",
		"exit",
	}
	assertTrace(t, sink.trace, want)
}

func TestFinish_TokenConservation(t *testing.T) {
	toks := []evparse.Token[testKind]{
		tok(tkNumber, "1"), tok(tkSpace, " "), tok(tkPlus, "+"), tok(tkSpace, " "), tok(tkNumber, "2"),
	}
	p := evparse.New(toks)
	sumExpr(p)

	sink := &recordingSink{}
	p.Finish(sink)

	var gotText strings.Builder
	for _, tr := range sink.trace {
		if rest, ok := strings.CutPrefix(tr, "token:"); ok {
			parts := strings.SplitN(rest, ":", 2)
			gotText.WriteString(parts[1])
		}
	}
	var wantText strings.Builder
	for _, tk := range toks {
		wantText.WriteString(tk.Text)
	}
	if gotText.String() != wantText.String() {
		t.Fatalf("replayed text = %q, want %q", gotText.String(), wantText.String())
	}
}

func TestFinish_TriviaAttributedToOutermostNode(t *testing.T) {
	// " 1" — the outermost Enter does not flush trivia, so the leading
	// space surfaces as the first child of the only node, Literal.
	toks := []evparse.Token[testKind]{tok(tkSpace, " "), tok(tkNumber, "1")}
	p := evparse.New(toks)
	literalExpr(p)

	sink := &recordingSink{}
	p.Finish(sink)

	want := []string{"enter:Literal", "token:Space: ", "token:Number:1", "exit"}
	assertTrace(t, sink.trace, want)
}

func TestFinish_TrailingTriviaAfterTopLevelExit(t *testing.T) {
	// A root wraps the top-level Literal; once the Literal exits, the
	// trailing space is lifted into the root rather than left inside it.
	toks := []evparse.Token[testKind]{tok(tkNumber, "1"), tok(tkSpace, " ")}
	p := evparse.New(toks)
	root := p.Open()
	literalExpr(p)
	p.Close(root, tkNodeRoot)

	sink := &recordingSink{}
	p.Finish(sink)

	want := []string{"enter:Root", "enter:Literal", "token:Number:1", "exit", "token:Space: ", "exit"}
	assertTrace(t, sink.trace, want)
}

func TestFinish_PanicsOnDoubleCall(t *testing.T) {
	toks := []evparse.Token[testKind]{tok(tkNumber, "1")}
	p := evparse.New(toks)
	literalExpr(p)
	p.Finish(&recordingSink{})

	defer func() {
		if recover() == nil {
			t.Fatal("second Finish call did not panic")
		}
	}()
	p.Finish(&recordingSink{})
}

func TestSaveRestore_RollsBackCursorAndEvents(t *testing.T) {
	toks := []evparse.Token[testKind]{tok(tkNumber, "1"), tok(tkPlus, "+")}
	p := evparse.New(toks)

	cp := p.Save()
	m := p.Open()
	p.Bump()
	p.Abandon(m)
	p.Restore(cp)

	// After restore, the parser should behave as if the speculative
	// Open/Bump never happened: the next token is still Number.
	if !p.At(tkNumber) {
		t.Fatal("expected cursor restored to before speculative bump")
	}

	m2 := p.Open()
	p.Bump()
	p.Close(m2, tkNodeLiteral)
	p.Bump() // consume "+"

	sink := &recordingSink{}
	p.Finish(sink)
	want := []string{"enter:Literal", "token:Number:1", "exit", "token:Plus:+"}
	assertTrace(t, sink.trace, want)
}

func TestErrorSince_DetectsErrorAfterCheckpoint(t *testing.T) {
	toks := []evparse.Token[testKind]{tok(tkPlus, "+")}
	p := evparse.New(toks)
	cp := p.Save()

	if p.ErrorSince(cp) {
		t.Fatal("ErrorSince true before any error recorded")
	}

	p.Error() // records a diagnostic, then skips the "+" as its recovery

	if !p.ErrorSince(cp) {
		t.Fatal("ErrorSince false after an error was recorded")
	}
}

func TestClose_AlreadyConsumedMarker_Panics(t *testing.T) {
	toks := []evparse.Token[testKind]{tok(tkNumber, "1")}
	p := evparse.New(toks)
	m := p.Open()
	p.Close(m, tkNodeLiteral)

	defer func() {
		if recover() == nil {
			t.Fatal("closing an already-closed marker did not panic")
		}
	}()
	p.Close(m, tkNodeLiteral)
}

// TestOpen_DroppedWithoutCloseOrAbandon_Panics exercises the finalizer
// armed by Open itself, not just the defuse bookkeeping: a dropped Open
// must crash the process once the garbage collector reclaims it. Since an
// uncaught panic on the finalizer goroutine is fatal to the whole process
// (not just recoverable in this goroutine), the only way to observe it is
// to trigger it in a subprocess and check how that subprocess died — the
// same technique the standard library uses to test os.Exit/fatal-panic
// paths from the calling test binary.
func TestOpen_DroppedWithoutCloseOrAbandon_Panics(t *testing.T) {
	if os.Getenv("EVPARSE_DROP_OPEN_CHILD") == "1" {
		dropOpenAndForceFinalizer()
		return // reaching here without crashing means the test should fail
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestOpen_DroppedWithoutCloseOrAbandon_Panics$")
	cmd.Env = append(os.Environ(), "EVPARSE_DROP_OPEN_CHILD=1")
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("subprocess exited cleanly; want a crash from the dropped Open marker's finalizer\noutput:\n%s", out)
	}
	if !strings.Contains(string(out), "Open marker dropped without Close or Abandon") {
		t.Fatalf("subprocess crashed, but not with the expected message\noutput:\n%s", out)
	}
}

// dropOpenAndForceFinalizer drops an Open marker without Close or Abandon,
// then forces a GC cycle, waits up to five seconds for a sentinel
// finalizer, and runs one more GC followed by a short sleep, giving the
// dropped marker's finalizer a chance to run before returning (and letting
// the process exit cleanly, which only happens if the dropped marker's own
// finalizer never fired or never panicked).
func dropOpenAndForceFinalizer() {
	done := make(chan struct{})

	func() {
		sentinel := new(int)
		runtime.SetFinalizer(sentinel, func(*int) { close(done) })

		toks := []evparse.Token[testKind]{tok(tkNumber, "1")}
		p := evparse.New(toks)
		p.Open() // dropped: never Close'd or Abandon'd
	}()

	runtime.GC()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
	// The dropped Open's finalizer is not guaranteed to run before the
	// sentinel's in the same cycle; give the runtime one more pass.
	runtime.GC()
	time.Sleep(200 * time.Millisecond)
}

func TestBump_WithNoTokensRemaining_Panics(t *testing.T) {
	p := evparse.New([]evparse.Token[testKind]{})

	defer func() {
		if recover() == nil {
			t.Fatal("Bump on an exhausted token stream did not panic")
		}
	}()
	p.Bump()
}

// TestPrecede_StaleClosedAfterRestore_Panics shows why a Closed must not
// be reused once the checkpoint it predates has been Restore'd: Restore
// truncates the event log, so a later event can be written into the same
// slot a stale Closed still points at. Here that slot ends up holding a
// plain token event, not an Enter, so Precede must refuse it.
func TestPrecede_StaleClosedAfterRestore_Panics(t *testing.T) {
	toks := []evparse.Token[testKind]{tok(tkNumber, "1"), tok(tkPlus, "+")}
	p := evparse.New(toks)
	cp := p.Save()
	closed := literalExpr(p)
	p.Restore(cp)
	p.Bump() // overwrites the event slot closed.idx pointed at

	defer func() {
		if recover() == nil {
			t.Fatal("Precede on a stale Closed from before Restore did not panic")
		}
	}()
	p.Precede(closed)
}

// TestFinish_AbandonedForwardParent_Panics builds a forward-parent chain
// that points at an Open which was then Abandon'd rather than Close'd, so
// the chain's target never becomes an Enter event. Finish must detect this
// instead of silently skipping or misreplaying it.
func TestFinish_AbandonedForwardParent_Panics(t *testing.T) {
	toks := []evparse.Token[testKind]{tok(tkNumber, "1")}
	p := evparse.New(toks)
	closed := literalExpr(p)
	m := p.Precede(closed)
	p.Abandon(m)

	defer func() {
		if recover() == nil {
			t.Fatal("Finish did not panic on a forward parent that was abandoned instead of closed")
		}
	}()
	p.Finish(&recordingSink{})
}

func assertTrace(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("trace = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("trace[%d] = %q, want %q\nfull got: %v\nfull want: %v", i, got[i], want[i], got, want)
		}
	}
}
