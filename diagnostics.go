// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package evparse

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) in the original source, with
// the 1-based line and column of its start.
type Span struct {
	Start, End int
	Line       int
	Column     int
}

// Diagnostic is a single parse-time diagnostic delivered to a Sink's Error
// method: the set of kinds tried at Span, and an optional message.
type Diagnostic[K Kind] struct {
	Expected []K
	Message  *string
	Span     Span
}

// Print writes a human-readable rendition of diag to w:
//
//	file:line:col: error: message
//	    <source line>
//	    ^
//
// describeKind renders a single expected kind as a short label — callers
// typically back it with a generated kind table's token-description
// lookup — and is used to build the "expected X, Y, Z" portion of the
// default message when diag.Message is nil.
func Print[K Kind](w io.Writer, diag Diagnostic[K], filename string, src []byte, describeKind func(K) string) {
	span := diag.Span
	message := defaultMessage(diag, describeKind)

	_, _ = fmt.Fprintf(w, "%s:%d:%d: error: %s\n", filename, span.Line, span.Column, message)

	line := findLine(src, span.Start, span.End)
	_, _ = fmt.Fprintf(w, "    %s\n", line)

	caretCount := runeColumnOffset(span.Column-1, line)
	_, _ = fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretCount))
}

func defaultMessage[K Kind](diag Diagnostic[K], describeKind func(K) string) string {
	if diag.Message != nil {
		return *diag.Message
	}
	if len(diag.Expected) == 0 {
		return "syntax error"
	}
	labels := make([]string, len(diag.Expected))
	for i, k := range diag.Expected {
		labels[i] = describeKind(k)
	}
	return "expected " + strings.Join(labels, ", ")
}

// findLine returns the line of src containing the byte offset start. It
// searches backward for the start of the line, then forward until it hits
// a newline or end. The returned line excludes the trailing newline.
func findLine(src []byte, start, end int) []byte {
	if start >= len(src) {
		return []byte{}
	}
	if end > len(src) {
		end = len(src)
	}

	lineStart := 0
	for i := start; i >= 0; i-- {
		if src[i] == '\n' {
			lineStart = i + 1
			break
		}
	}

	lineEnd := end
	for i := lineStart; i < end; i++ {
		if src[i] == '\n' {
			lineEnd = i
			break
		}
	}
	if lineStart >= lineEnd {
		return []byte{}
	}
	return src[lineStart:lineEnd]
}

func runeColumnOffset(column int, b []byte) (offset int) {
	for column > 0 && len(b) != 0 {
		_, w := utf8.DecodeRune(b)
		offset += w
		b = b[w:]
		column--
	}
	return offset
}
