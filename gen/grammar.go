// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package gen is the typed-tree generator (Core B): given a Grammar
// description, it emits Go source for a Kind enum, a typed AST accessor
// layer, and a reparse-stable pointer type, the way
// lohvht-zz-went/tool/ast-generate.go emits Go source for its own AST
// node types — text/template to build the text, go/format.Source to
// canonicalise it before it touches disk.
package gen

// TokenKind classifies a Terminal for the purposes of kind-table
// emission and diagnostic rendering.
type TokenKind int

const (
	Keyword TokenKind = iota
	Punctuation
	Special
)

// Terminal is one token kind of the grammar: its generated constant name,
// its literal text (used to build keyword/punctuation lookup tables), and
// its classification.
type Terminal struct {
	Name string
	Text string
	Kind TokenKind
}

// Elem is one element of a Seq node: a field name paired with the kind of
// child it holds (another node name, or a Terminal name for a token
// field).
type Elem struct {
	Field string
	Of    string
}

// Node is either a Seq (a fixed sequence of named children, emitted as a
// struct with typed accessors) or an Alt (a closed set of alternative
// node kinds, emitted as a struct wrapping the tree node plus an As
// function that switches on the node's kind).
type Node interface {
	NodeName() string
}

// Seq describes a node kind with a fixed, ordered set of children.
type Seq struct {
	Name  string
	Elems []Elem
}

func (s Seq) NodeName() string { return s.Name }

// Alt describes a node kind that is one of several alternatives, such as
// a Stmt that is either an AssignStmt or an ExprStmt.
type Alt struct {
	Name     string
	Variants []string
}

func (a Alt) NodeName() string { return a.Name }

// Grammar is the complete input to Generate: the trivia kind names, the
// node kinds in emission order, and the terminal (token) kinds.
type Grammar struct {
	Package   string
	Trivia    []string
	Nodes     []Node
	Terminals []Terminal
}

// StablePointer is a serializable, Kind-type-agnostic reparse-stable
// pointer: a node's path of child indices from the tree root, plus the
// name of the kind expected at that path's end. It is the on-disk/on-wire
// counterpart of evparse.NodePtr[K] — generated ptr.go files convert
// between the two so storage code never needs to know a grammar's
// concrete Kind type.
type StablePointer struct {
	KindName string
	Path     []int
}
