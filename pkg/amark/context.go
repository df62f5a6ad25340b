// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package amark

import (
	"fmt"
)

// context is the grammar scope the reader is currently in.
type context uint8

const (
	contextTopLevel context = iota
	contextContainer
	contextBlock
	// Parameter lists remember what opened them: an item name stays open
	// after its params close, an escape sequence does not.
	contextItemParams
	contextEscapeParams
	contextItemName
	contextEscapeSequence
)

func (c context) isParams() bool {
	return c == contextItemParams || c == contextEscapeParams
}

// expected describes what would legally end the context. Used for unexpected EOF errors.
func (c context) expected() string {
	switch c {
	case contextBlock:
		return "End of Block: }"
	case contextItemParams, contextEscapeParams:
		return "End of Parameter List: )"
	case contextContainer:
		return "End of Container: ]"
	case contextTopLevel:
		return "Any valid Token"
	case contextItemName:
		return "An element start indicator: (, [ or {"
	case contextEscapeSequence:
		return "Escape Sequence after `\\`"
	default:
		panic(fmt.Sprintf("Unknown context %d", c))
	}
}

func (c context) String() string {
	switch c {
	case contextTopLevel:
		return "TopLevel"
	case contextContainer:
		return "Container"
	case contextBlock:
		return "Block"
	case contextItemParams, contextEscapeParams:
		return "Params"
	case contextItemName:
		return "ItemName"
	case contextEscapeSequence:
		return "EscapeSequence"
	default:
		return fmt.Sprintf("context(%d)", uint8(c))
	}
}

// contextStack mirrors the nesting of open scopes. An empty stack is TopLevel.
type contextStack struct {
	stack []context
}

func newContextStack() contextStack {
	return contextStack{stack: make([]context, 0, 5)}
}

func (s *contextStack) push(ctx context) {
	s.stack = append(s.stack, ctx)
}

func (s *contextStack) pop() context {
	if len(s.stack) == 0 {
		return contextTopLevel
	}
	ctx := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return ctx
}

func (s *contextStack) last() context {
	if len(s.stack) == 0 {
		return contextTopLevel
	}
	return s.stack[len(s.stack)-1]
}
