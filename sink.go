// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

// Sink is the external collaborator that receives the well-nested
// enter/token/exit/error call sequence Parser.Finish reconstructs from the
// event log, and is responsible for building a concrete syntax tree from
// it. Calls are guaranteed well-nested: every Enter is matched by a later
// Exit, and trivia tokens arrive via Token like any other.
type Sink[K Kind] interface {
	// Enter starts a node of kind as a child of the currently open node
	// (or as a new root, if none is open).
	Enter(kind K)
	// Token adds a token — trivia or not — as a child of the currently
	// open node.
	Token(token Token[K])
	// Exit closes the currently open node.
	Exit()
	// Error records a diagnostic. expected is the set of kinds the
	// parser tried at the failing position; message is the optional
	// caller-supplied detail, or nil.
	Error(expected []K, message *string)
}
