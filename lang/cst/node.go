// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package cst builds a lossless concrete syntax tree from the event
// stream evparse.Parser.Finish replays, for the lang demo grammar. It is
// the Sink implementation the demo grammar's tests and the CLI's parse
// subcommand use to inspect and print what was parsed.
package cst

import (
	"strings"

	"github.com/mdhender/evparse"
	"github.com/mdhender/evparse/lang"
)

// Node is one element of the tree: either an interior node (Token is the
// zero value, Children non-empty) or a leaf token (Children empty).
// Concatenating Text() over a root's children in order reproduces the
// original source, including trivia — the tree is lossless, except that
// the lexer hands back each CRLF or lone CR line break as "\n".
type Node struct {
	Kind     lang.Kind
	Token    evparse.Token[lang.Kind] // valid only when len(Children) == 0
	Children []*Node
}

// NodeKind, NumChildren, and Child satisfy evparse.TreeNode[lang.Kind],
// letting a NodePtr captured against one parse of a file be resolved
// against the tree built from a later parse of the same text.
func (n *Node) NodeKind() lang.Kind { return n.Kind }
func (n *Node) NumChildren() int    { return len(n.Children) }
func (n *Node) Child(i int) evparse.TreeNode[lang.Kind] {
	return n.Children[i]
}

// IsLeaf reports whether n is a token rather than an interior node.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Text reconstructs the source text spanned by n and its descendants.
func (n *Node) Text() string {
	if n.IsLeaf() {
		return n.Token.Text
	}
	var sb strings.Builder
	for _, ch := range n.Children {
		sb.WriteString(ch.Text())
	}
	return sb.String()
}

// Diagnostic is one error recorded during a parse: the kinds expected and
// the optional message. Builder collects these alongside the tree because
// evparse.Sink has no other channel for them.
type Diagnostic struct {
	Expected []lang.Kind
	Message  *string
}

// Builder implements evparse.Sink[lang.Kind], assembling a *Node tree and
// a slice of Diagnostics as Parser.Finish replays its event log. Use it
// once per parse; construct a fresh Builder for each.
type Builder struct {
	stack       []*Node
	roots       []*Node
	Diagnostics []Diagnostic
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Enter(kind lang.Kind) {
	n := &Node{Kind: kind}
	b.stack = append(b.stack, n)
}

func (b *Builder) Token(tok evparse.Token[lang.Kind]) {
	leaf := &Node{Kind: tok.Kind, Token: tok}
	if len(b.stack) == 0 {
		b.roots = append(b.roots, leaf)
		return
	}
	top := b.stack[len(b.stack)-1]
	top.Children = append(top.Children, leaf)
}

func (b *Builder) Exit() {
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) == 0 {
		b.roots = append(b.roots, n)
		return
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, n)
}

func (b *Builder) Error(expected []lang.Kind, message *string) {
	b.Diagnostics = append(b.Diagnostics, Diagnostic{Expected: expected, Message: message})
}

// Root returns the single top-level node built so far. It panics if the
// replay produced anything other than exactly one root, which would mean
// Finish was driven by an empty or malformed grammar.
func (b *Builder) Root() *Node {
	if len(b.roots) != 1 {
		panic("cst: expected exactly one root node")
	}
	return b.roots[0]
}

// Dump renders the tree rooted at n as an indented outline, one line per
// node or token, for debugging and the CLI's parse subcommand.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.IsLeaf() {
		sb.WriteString(n.Kind.String())
		if !n.Kind.IsTrivia() {
			sb.WriteString(" ")
			sb.WriteString(quote(n.Token.Text))
		}
		sb.WriteString("\n")
		return
	}
	sb.WriteString(n.Kind.String())
	sb.WriteString("\n")
	for _, ch := range n.Children {
		dump(sb, ch, depth+1)
	}
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
