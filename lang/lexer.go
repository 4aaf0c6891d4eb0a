// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package lang

import (
	"unicode"
	"unicode/utf8"

	"github.com/mdhender/evparse"
)

// lexer scans input rune by rune, anchoring the start of each token with
// setAnchor and slicing input[anchor:pos] once the scan for that token
// stops. CRLF is normalized to a single logical line break so downstream
// code never has to special-case "\r\n" versus "\n".
type lexer struct {
	input []byte
	pos   int // byte offset of the next unread rune
	r     rune
	width int // width in bytes of r, 0 at EOF

	anchor int
}

const eof = -1

// Lex scans all of src and returns its tokens, including trivia, in
// source order. There is no trailing end-of-input token: Parser already
// treats running off the end of the slice as "no more input" via Peek,
// so adding a sentinel token would only give the grammar a spurious
// token to trip over.
func Lex(src []byte) []evparse.Token[Kind] {
	lx := &lexer{input: src}
	lx.advance()

	var toks []evparse.Token[Kind]
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func (lx *lexer) advance() {
	if lx.pos >= len(lx.input) {
		lx.r, lx.width = eof, 0
		return
	}
	r, w := utf8.DecodeRune(lx.input[lx.pos:])
	if r == '\r' {
		if lx.pos+1 < len(lx.input) && lx.input[lx.pos+1] == '\n' {
			w = 2
		}
		r = '\n'
	}
	lx.r, lx.width = r, w
	lx.pos += w
}

func (lx *lexer) setAnchor() {
	lx.anchor = lx.pos - lx.width
}

func (lx *lexer) text() string {
	start := lx.anchor
	end := lx.pos - lx.width
	if lx.r == eof {
		end = len(lx.input)
	}
	return string(lx.input[start:end])
}

// next scans and returns the single next token, or false once lx.r has
// reached eof. There is no end-of-input token to return at that point —
// callers (Lex and, through it, Parser) treat running off the end of the
// token slice itself as "no more input."
func (lx *lexer) next() (evparse.Token[Kind], bool) {
	if lx.r == eof {
		return evparse.Token[Kind]{}, false
	}

	switch {
	case lx.r == ' ' || lx.r == '\t':
		return lx.scanWhile(Whitespace, func(r rune) bool { return r == ' ' || r == '\t' }), true
	case lx.r == '\n':
		lx.setAnchor()
		lx.advance()
		return evparse.Token[Kind]{Kind: Newline, Text: "\n"}, true
	case lx.r == '#':
		return lx.scanWhile(Comment, func(r rune) bool { return r != '\n' && r != eof }), true
	case unicode.IsDigit(lx.r):
		return lx.scanWhile(Number, unicode.IsDigit), true
	case isIdentStart(lx.r):
		return lx.scanWhile(Ident, isIdentCont), true
	}

	lx.setAnchor()
	r := lx.r
	lx.advance()
	switch r {
	case '+':
		return evparse.Token[Kind]{Kind: Plus, Text: "+"}, true
	case '-':
		return evparse.Token[Kind]{Kind: Minus, Text: "-"}, true
	case '*':
		return evparse.Token[Kind]{Kind: Star, Text: "*"}, true
	case '/':
		return evparse.Token[Kind]{Kind: Slash, Text: "/"}, true
	case '=':
		return evparse.Token[Kind]{Kind: Equals, Text: "="}, true
	case '(':
		return evparse.Token[Kind]{Kind: LeftParen, Text: "("}, true
	case ')':
		return evparse.Token[Kind]{Kind: RightParen, Text: ")"}, true
	case ';':
		return evparse.Token[Kind]{Kind: Semicolon, Text: ";"}, true
	default:
		return evparse.Token[Kind]{Kind: Unknown, Text: string(r)}, true
	}
}

func (lx *lexer) scanWhile(kind Kind, pred func(rune) bool) evparse.Token[Kind] {
	lx.setAnchor()
	for pred(lx.r) {
		lx.advance()
	}
	return evparse.Token[Kind]{Kind: kind, Text: lx.text()}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
