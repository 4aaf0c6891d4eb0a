// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package lang

import (
	"log/slog"

	"github.com/mdhender/evparse"
)

// ParseWithLogger is Parse with structured logging around the lex/parse
// pipeline, in the style of the teacher's Lexer.logDebug/logError
// wrappers: one Debug line with the token count before parsing, one Info
// (or Error, if any diagnostics were recorded) line after.
func ParseWithLogger(src []byte, sink evparse.Sink[Kind], log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	toks := Lex(src)
	log.Debug("lexed source", "tokens", len(toks), "bytes", len(src))

	counting := &countingSink{inner: sink}
	p := evparse.New(toks)
	block(p)
	p.Finish(counting)

	if counting.errors > 0 {
		log.Error("parse completed with diagnostics", "errors", counting.errors, "nodes", counting.nodes)
	} else {
		log.Info("parse completed", "nodes", counting.nodes)
	}
}

// countingSink wraps a Sink to count Enter and Error calls for logging,
// without the grammar or the real sink needing to know logging exists.
type countingSink struct {
	inner  evparse.Sink[Kind]
	nodes  int
	errors int
}

func (c *countingSink) Enter(kind Kind) {
	c.nodes++
	c.inner.Enter(kind)
}

func (c *countingSink) Token(tok evparse.Token[Kind]) { c.inner.Token(tok) }
func (c *countingSink) Exit()                         { c.inner.Exit() }

func (c *countingSink) Error(expected []Kind, message *string) {
	c.errors++
	c.inner.Error(expected, message)
}
