// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package evparse implements an event-based parsing core.
//
// To use it:
//  1. Define an enum type, typically called Kind, enumerating every token
//     kind and syntactic construct in your language, including trivia like
//     whitespace and comments.
//  2. Implement IsTrivia on that type so it satisfies the Kind constraint.
//  3. Write a lexer that turns an input string into a slice of Tokens using
//     that Kind type.
//  4. Write your language's grammar as functions operating on a *Parser,
//     using Open/Close/Precede to record syntactic structure and Peek/Bump/
//     At/Eat to consume tokens.
//  5. Call Parser.Finish when done, passing a Sink that builds your concrete
//     syntax tree from the resulting enter/token/exit/error call sequence.
//
// A similar approach is used by rust-analyzer's parser crate: grammar code
// never touches a tree directly, it only records a flat log of events, and
// a separate replay pass turns that log into nested calls against a Sink.
// That separation is what lets Open markers be retroactively reparented
// (Precede) and lets whole parses be spun up speculatively and rolled back
// (Save/Restore) without ever mutating a partially-built tree.
//
// The subpackage gen builds on top of this core: given a grammar described
// as a set of sequence/alternation rules over a set of terminals, it emits
// the Go source for a dense Kind enumeration, typed accessors over a CST,
// and a reparse-stable node pointer.
package evparse
