// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse_test

import (
	"testing"

	"github.com/mdhender/evparse"
)

// fakeTree is a minimal evparse.TreeNode[testKind] for exercising NodePtr
// without needing a real Sink implementation.
type fakeTree struct {
	kind     testKind
	children []*fakeTree
}

func (n *fakeTree) NodeKind() testKind { return n.kind }
func (n *fakeTree) NumChildren() int   { return len(n.children) }
func (n *fakeTree) Child(i int) evparse.TreeNode[testKind] {
	return n.children[i]
}

func TestNodePtr_ResolvesAlongPath(t *testing.T) {
	root := &fakeTree{kind: tkNodeBinary, children: []*fakeTree{
		{kind: tkNodeLiteral},
		{kind: tkNodeLiteral},
	}}

	ptr := evparse.NewNodePtr(tkNodeLiteral, []int{1})
	got, ok := ptr.Resolve(root)
	if !ok {
		t.Fatal("Resolve failed for a valid path")
	}
	if got.NodeKind() != tkNodeLiteral {
		t.Fatalf("resolved kind = %v, want %v", got.NodeKind(), tkNodeLiteral)
	}
}

func TestNodePtr_KindMismatchFails(t *testing.T) {
	root := &fakeTree{kind: tkNodeBinary, children: []*fakeTree{
		{kind: tkNodeLiteral},
	}}

	ptr := evparse.NewNodePtr(tkNodeBinary, []int{0}) // wrong expected kind at that path
	if _, ok := ptr.Resolve(root); ok {
		t.Fatal("Resolve succeeded despite a kind mismatch")
	}
}

func TestNodePtr_OutOfRangePathFails(t *testing.T) {
	root := &fakeTree{kind: tkNodeBinary}
	ptr := evparse.NewNodePtr(tkNodeLiteral, []int{5})
	if _, ok := ptr.Resolve(root); ok {
		t.Fatal("Resolve succeeded for an out-of-range path")
	}
}

func TestNodePtr_EmptyPathResolvesRoot(t *testing.T) {
	root := &fakeTree{kind: tkNodeLiteral}
	ptr := evparse.NewNodePtr(tkNodeLiteral, nil)
	got, ok := ptr.Resolve(root)
	if !ok || got.NodeKind() != tkNodeLiteral {
		t.Fatal("Resolve with empty path did not return the root")
	}
}
