// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package amark

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

var (
	_ error = &IOError{}
	_ error = &UnexpectedInputError{}
	_ error = &UnexpectedEOLError{}
	_ error = &UnexpectedEOFError{}
)

// IOError wraps a failure of the underlying source.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("An io operation failed: %s", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// UnexpectedInputError reports a byte that is not legal in the current context.
type UnexpectedInputError struct {
	Expected string
	Got      []byte
}

func newUnexpectedInputError(expected string, got []byte) *UnexpectedInputError {
	return &UnexpectedInputError{Expected: expected, Got: append([]byte{}, got...)}
}

func (e *UnexpectedInputError) Error() string {
	return fmt.Sprintf("Unexpected input:\nexpected: %s\ngot: %s", ByteDisp(e.Expected), ByteDisp(e.Got))
}

// UnexpectedEOLError reports a line that ended before a construct was complete.
// The current grammar lets every context span lines, so Reader never returns it;
// it is kept so that callers can already handle it.
type UnexpectedEOLError struct {
	Expected string
}

func (e *UnexpectedEOLError) Error() string {
	return fmt.Sprintf("Unexpected end of line, expected %s before end of line", ByteDisp(e.Expected))
}

// UnexpectedEOFError reports a source that ran dry while a context was still open.
type UnexpectedEOFError struct {
	Expected string
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("Unexpected end of file:\nexpected: %s\ngot: End of File", ByteDisp(e.Expected))
}

// ByteDisp renders bytes as a quoted string when they are valid UTF-8
// and as a list of byte values otherwise.
type ByteDisp []byte

func (d ByteDisp) String() string {
	if utf8.Valid(d) {
		return strconv.Quote(string(d))
	}
	return fmt.Sprintf("%v", []byte(d))
}
