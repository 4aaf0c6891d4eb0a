// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package lang is a minimal arithmetic-and-assignment language used to
// exercise every feature of evparse's Core A engine: left-associative
// binary expressions built via Precede, statement-kind disambiguation via
// Save/Restore, and single-token-skip error recovery.
//
// It is a conformance fixture, not a product grammar — real grammars are
// expected to be considerably larger and to use evparse/gen to generate
// their typed-tree bindings.
package lang

import "strconv"

// Kind enumerates the token and node kinds of the demo language.
type Kind int

const (
	Unknown Kind = iota

	// trivia
	Whitespace
	Newline
	Comment

	// literal tokens
	Ident
	Number

	// operator and punctuation tokens
	Plus
	Minus
	Star
	Slash
	Equals
	LeftParen
	RightParen
	Semicolon

	// node kinds, produced by Parser.Close, never by the lexer
	NodeLiteral
	NodeIdent
	NodeBinaryExpr
	NodeParenExpr
	NodeAssignStmt
	NodeExprStmt
	NodeBlock
	NodeError
)

var kindNames = map[Kind]string{
	Unknown:        "Unknown",
	Whitespace:     "Whitespace",
	Newline:        "Newline",
	Comment:        "Comment",
	Ident:          "Ident",
	Number:         "Number",
	Plus:           "Plus",
	Minus:          "Minus",
	Star:           "Star",
	Slash:          "Slash",
	Equals:         "Equals",
	LeftParen:      "LeftParen",
	RightParen:     "RightParen",
	Semicolon:      "Semicolon",
	NodeLiteral:    "Literal",
	NodeIdent:      "Ident",
	NodeBinaryExpr: "BinaryExpr",
	NodeParenExpr:  "ParenExpr",
	NodeAssignStmt: "AssignStmt",
	NodeExprStmt:   "ExprStmt",
	NodeBlock:      "Block",
	NodeError:      "Error",
}

// String renders k using its name from kindNames, or a numeric fallback
// for values outside the declared range.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsTrivia reports whether k is a trivia kind, satisfying evparse.Kind.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, Comment:
		return true
	default:
		return false
	}
}
