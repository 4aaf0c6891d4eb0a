// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package lang

import "github.com/mdhender/evparse"

// Parse lexes src and parses it as a sequence of statements, replaying the
// resulting tree onto sink. It never returns an error: malformed input is
// reported through sink.Error instead, and a missing operand inside an
// expression also becomes an Error node in the emitted tree.
func Parse(src []byte, sink evparse.Sink[Kind]) {
	p := evparse.New(Lex(src))
	block(p)
	p.Finish(sink)
}

// block parses a sequence of statements up to end of input.
func block(p *evparse.Parser[Kind]) {
	m := p.Open()
	for !p.IsAtEnd() {
		stmt(p)
	}
	p.Close(m, NodeBlock)
}

// stmt parses one statement: an assignment or a bare expression, each
// terminated by ";". Assignment is disambiguated from a parenthesized or
// compound expression statement by speculatively consuming "Ident =" and
// restoring if that fails to match.
func stmt(p *evparse.Parser[Kind]) {
	if !p.AtOneOf(Ident, Number, LeftParen) {
		errorStmt(p)
		return
	}

	if p.At(Ident) {
		cp := p.Save()
		m := p.Open()
		p.Bump() // Ident
		if p.At(Equals) {
			p.Bump()
			expr(p)
			eatSemicolon(p)
			p.Close(m, NodeAssignStmt)
			return
		}
		p.Abandon(m)
		p.Restore(cp)
	}

	m := p.Open()
	expr(p)
	eatSemicolon(p)
	p.Close(m, NodeExprStmt)
}

// errorStmt records a diagnostic at the current position and resyncs at
// the next statement boundary, consuming tokens up to and including the
// next ";" (or end of input). This is the grammar's entire recovery
// budget beyond Parser's own built-in one-token skip.
func errorStmt(p *evparse.Parser[Kind]) {
	p.Error()
	for {
		if p.IsAtEnd() {
			return
		}
		if p.At(Semicolon) {
			p.Bump()
			return
		}
		p.Bump()
	}
}

func eatSemicolon(p *evparse.Parser[Kind]) {
	p.Eat(Semicolon)
}

// expr parses a left-associative chain of "+"/"-" terms. Each iteration
// uses Precede to retroactively wrap the left-hand side already closed
// by the previous iteration (or by term, on the first), rather than
// guessing the node's kind before the operator is known.
func expr(p *evparse.Parser[Kind]) evparse.Closed {
	lhs := term(p)
	for p.AtOneOf(Plus, Minus) {
		m := p.Precede(lhs)
		p.Bump()
		term(p)
		lhs = p.Close(m, NodeBinaryExpr)
	}
	return lhs
}

// term parses a left-associative chain of "*"/"/" factors.
func term(p *evparse.Parser[Kind]) evparse.Closed {
	lhs := factor(p)
	for p.AtOneOf(Star, Slash) {
		m := p.Precede(lhs)
		p.Bump()
		factor(p)
		lhs = p.Close(m, NodeBinaryExpr)
	}
	return lhs
}

// factor parses a number, an identifier, or a parenthesized expression.
func factor(p *evparse.Parser[Kind]) evparse.Closed {
	switch {
	case p.At(Number):
		m := p.Open()
		p.Bump()
		return p.Close(m, NodeLiteral)
	case p.At(Ident):
		m := p.Open()
		p.Bump()
		return p.Close(m, NodeIdent)
	case p.At(LeftParen):
		m := p.Open()
		p.Bump()
		expr(p)
		p.Eat(RightParen)
		return p.Close(m, NodeParenExpr)
	default:
		m := p.Open()
		p.Error()
		return p.Close(m, NodeError)
	}
}
