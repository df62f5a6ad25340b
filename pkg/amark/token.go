// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package amark

import (
	"fmt"
	"io"
)

type TokenKind int8

const (
	// TokenBlockStart is the start of a block item '{'
	TokenBlockStart TokenKind = iota
	// TokenParamsStart is the start of a parameter list '('
	TokenParamsStart
	// TokenContainerStart is the start of a container item '['
	TokenContainerStart
	// TokenBlockEnd is the end of a block item '}'
	TokenBlockEnd
	// TokenParamsEnd is the end of a parameter list ')'
	TokenParamsEnd
	// TokenContainerEnd is the end of a container item ']'
	TokenContainerEnd
	// TokenItemEnd ends an item that did not open a block or container ';'
	TokenItemEnd
	// TokenEmptyLine is a blank line inside a block
	TokenEmptyLine
	// TokenEnd is the end of input
	TokenEnd
	// TokenItemName carries the name of an item in Token.Bytes
	TokenItemName
	// TokenText carries a line of text in Token.Bytes
	TokenText
	// TokenEscapeSequence carries the escaped byte in Token.Byte
	TokenEscapeSequence
)

var tokenKindNames = map[TokenKind]string{
	TokenBlockStart:     "BlockStart",
	TokenParamsStart:    "ParamsStart",
	TokenContainerStart: "ContainerStart",
	TokenBlockEnd:       "BlockEnd",
	TokenParamsEnd:      "ParamsEnd",
	TokenContainerEnd:   "ContainerEnd",
	TokenItemEnd:        "ItemEnd",
	TokenEmptyLine:      "EmptyLine",
	TokenEnd:            "End",
	TokenItemName:       "ItemName",
	TokenText:           "Text",
	TokenEscapeSequence: "EscapeSequence",
}

func (k TokenKind) String() string {
	if name, found := tokenKindNames[k]; found {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int8(k))
}

// Token is a single lexical unit produced by Reader.
//
// Bytes of ItemName and Text tokens point into the Reader's line buffer and are only
// valid until the next call to Reader.Next. Use Clone to keep them around.
type Token struct {
	Kind  TokenKind
	Bytes []byte
	Byte  byte
}

func NewItemNameToken(name []byte) Token { return Token{Kind: TokenItemName, Bytes: name} }
func NewTextToken(text []byte) Token     { return Token{Kind: TokenText, Bytes: text} }
func NewEscapeSequenceToken(b byte) Token {
	return Token{Kind: TokenEscapeSequence, Byte: b}
}

// IsContextEnd reports whether the token closes a params list, block or container.
func (t Token) IsContextEnd() bool {
	switch t.Kind {
	case TokenParamsEnd, TokenBlockEnd, TokenContainerEnd:
		return true
	default:
		return false
	}
}

// Clone returns a token that no longer shares memory with the Reader.
func (t Token) Clone() Token {
	if t.Bytes != nil {
		t.Bytes = append([]byte{}, t.Bytes...)
	}
	return t
}

// Equal compares kind and payload.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TokenItemName, TokenText:
		return string(t.Bytes) == string(other.Bytes)
	case TokenEscapeSequence:
		return t.Byte == other.Byte
	default:
		return true
	}
}

// Dump writes the token as `TagName` or `TagName(payload)` with the payload
// copied verbatim. It avoids fmt so that dumping large inputs stays cheap.
func (t Token) Dump(w io.Writer) error {
	name := t.Kind.String()

	switch t.Kind {
	case TokenItemName, TokenText:
		return writeAll(w, []byte(name), []byte("("), t.Bytes, []byte(")"))
	case TokenEscapeSequence:
		return writeAll(w, []byte(name), []byte("("), []byte{t.Byte}, []byte(")"))
	default:
		return writeAll(w, []byte(name))
	}
}

// String renders the token for debugging; payloads are quoted when they are valid UTF-8.
func (t Token) String() string {
	switch t.Kind {
	case TokenItemName, TokenText:
		return fmt.Sprintf("%s(%s)", t.Kind, ByteDisp(t.Bytes))
	case TokenEscapeSequence:
		return fmt.Sprintf("%s(%c)", t.Kind, rune(t.Byte))
	default:
		return t.Kind.String()
	}
}

func writeAll(w io.Writer, pieces ...[]byte) error {
	for _, piece := range pieces {
		if _, err := w.Write(piece); err != nil {
			return err
		}
	}
	return nil
}
