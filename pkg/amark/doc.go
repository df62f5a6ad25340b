// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package amark tokenizes amark markup into a stream of context aware tokens.

No tree is built. Consumers (e.g. an HTML emitter) decide what to build from
the tokens:

	reader := amark.NewReader()
	src := bufio.NewReader(file)
	for {
		tok, err := reader.Next(src)
		if err != nil {
			return err
		}
		if tok.Kind == amark.TokenEnd {
			break
		}
		...
	}

The markup is made of items. An item is a name followed by a block `name{...}`,
a container `name[...]`, a parameter list `name(...)` or nothing `name;`. An item
with a parameter list stays open so it may be followed by a block or closed by `;`.
Containers hold sibling items. Blocks hold lines of text, nested items
introduced by the `@` sigil and escape sequences `\X` that may carry their own
parameter list `\X(...)`.

Reader is a pushdown automaton over a single line of lookahead. Input is pulled
one line at a time, and ItemName and Text tokens point into that line: they are
only valid until the next call to Next. Errors never reference that line and may
be kept.
*/
package amark
