// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package amark

// Reader tokenizes amark markup. It does not own its input: the source is passed
// to every call of Next, which returns exactly one token or one error.
//
// A Reader is meant for a single goroutine. After an error its state is undefined
// and it should not be used for further parsing.
type Reader struct {
	buf     lineBuffer
	stack   contextStack
	curLine int
}

// NewReader creates a Reader with an empty line buffer.
func NewReader() *Reader {
	return NewReaderWithBuf(nil)
}

// NewReaderWithBuf creates a Reader that reuses the capacity of storage
// (e.g. obtained from TakeBuf of a finished Reader).
func NewReaderWithBuf(storage []byte) *Reader {
	return &Reader{
		buf:   newLineBuffer(storage),
		stack: newContextStack(),
	}
}

// CurLine is the 1-based number of the line currently held in the buffer.
func (r *Reader) CurLine() int { return r.curLine }

// TakeBuf hands out the line buffer for reuse. The Reader must not be used afterwards.
func (r *Reader) TakeBuf() []byte { return r.buf.takeStorage() }

// Next parses the next token from src.
func (r *Reader) Next(src LineSource) (Token, error) {
	return r.next(src)
}

// NextWithLine is Next that additionally reports the current line for diagnostics.
func (r *Reader) NextWithLine(src LineSource) (Token, int, error) {
	tok, err := r.next(src)
	return tok, r.curLine, err
}

func (r *Reader) next(src LineSource) (Token, error) {
	for {
		for {
			b, ok := r.buf.nextByte()
			if !ok {
				break
			}

			switch ctx := r.stack.last(); ctx {
			case contextItemName:
				switch {
				case b == '{' || b == '[' || b == '(':
					tok, newCtx := itemOpening(b)
					if newCtx != contextItemParams {
						// the opening bracket ends the item itself
						r.stack.pop()
					}
					r.stack.push(newCtx)
					if err := r.skipWhitespaceAcrossLines(src); err != nil {
						return Token{}, err
					}
					return tok, nil

				case b == ';':
					r.stack.pop()
					r.skipWhitespaceInLine()
					return Token{Kind: TokenItemEnd}, nil

				case isASCIIWhitespace(b):

				default:
					return Token{}, newUnexpectedInputError("Start or End of item token {, (, [ or ;", []byte{b})
				}

			case contextContainer, contextTopLevel:
				switch {
				case b == ']':
					if ctx == contextContainer {
						r.stack.pop()
						return Token{Kind: TokenContainerEnd}, nil
					}
					return Token{}, newUnexpectedInputError("Item or EOF", []byte("]"))

				case b == '}':
					return Token{}, newUnexpectedInputError(contextContainer.expected(), []byte(contextBlock.expected()))

				case isIdentByte(b):
					r.buf.rewind(1)
					name, err := r.readItemName()
					if err != nil {
						return Token{}, err
					}
					r.stack.push(contextItemName)
					return NewItemNameToken(name), nil
				}

			case contextBlock:
				switch {
				case b == '\n':
					return Token{Kind: TokenEmptyLine}, nil

				case b == '\\':
					return r.parseEscapeSequence()

				case b == '@':
					name, err := r.readItemName()
					if err != nil {
						return Token{}, err
					}
					r.stack.push(contextItemName)
					return NewItemNameToken(name), nil

				case b == '}':
					r.stack.pop()
					// a directly following whitespace byte (usually '\n') belongs to the brace;
					// anything else, such as a second '}', is reprocessed in the enclosing context
					if next, ok := r.buf.nextByte(); ok && !isASCIIWhitespace(next) {
						r.buf.rewind(1)
					}
					return Token{Kind: TokenBlockEnd}, nil

				case isASCIIWhitespace(b):

				default:
					r.buf.rewind(1)
					text, ok := r.readText('}')
					if !ok {
						return Token{}, &UnexpectedEOFError{
							Expected: "End of line indicator for text line or end of item indicator }",
						}
					}
					return NewTextToken(text), nil
				}

			case contextEscapeSequence:
				if b == '(' {
					r.stack.push(contextEscapeParams)
					if err := r.skipWhitespaceAcrossLines(src); err != nil {
						return Token{}, err
					}
					return Token{Kind: TokenParamsStart}, nil
				}

				// escape without params, reprocess the byte in the enclosing context
				r.buf.rewind(1)
				r.stack.pop()

			case contextItemParams, contextEscapeParams:
				switch b {
				case '\\':
					return r.parseEscapeSequence()

				case ')':
					r.skipWhitespaceInLine()
					if r.stack.pop() == contextEscapeParams {
						r.stack.pop()
					}
					return Token{Kind: TokenParamsEnd}, nil

				default:
					r.buf.rewind(1)
					text, ok := r.readText(')')
					if !ok {
						return Token{}, &UnexpectedEOFError{
							Expected: "End of line indicator for text line or end of params indicator )",
						}
					}
					return NewTextToken(text), nil
				}
			}
		}

		err := r.buf.fillWithLine(&r.curLine, src)
		if err != nil {
			return Token{}, err
		}

		if r.buf.storageEmpty() {
			if ctx := r.stack.last(); ctx != contextTopLevel {
				return Token{}, &UnexpectedEOFError{Expected: ctx.expected()}
			}
			return Token{Kind: TokenEnd}, nil
		}
	}
}

// parseEscapeSequence reads the single escaped byte following '\'.
func (r *Reader) parseEscapeSequence() (Token, error) {
	r.stack.push(contextEscapeSequence)

	b, ok := r.buf.nextByte()
	if !ok {
		return Token{}, &UnexpectedEOFError{Expected: contextEscapeSequence.expected()}
	}
	return NewEscapeSequenceToken(b), nil
}

// readItemName reads until the first byte that cannot be part of an item name.
// Structural bytes and ';' are left for the next call; whitespace is consumed.
func (r *Reader) readItemName() ([]byte, error) {
	name, _, ok := r.buf.takeUntilRewind(indexNonIdentByte, func(b byte) int {
		if isContextByte(b) || b == ';' {
			return 1
		}
		return 0
	})
	if !ok {
		return nil, &UnexpectedEOFError{Expected: "Any other symbol after item name"}
	}
	return name, nil
}

// readText reads a line of text ending before '\n', endByte or '\'.
// Only the '\n' is consumed.
func (r *Reader) readText(endByte byte) ([]byte, bool) {
	text, _, ok := r.buf.takeUntilRewind(
		func(haystack []byte) int {
			for i, b := range haystack {
				if b == '\n' || b == endByte || b == '\\' {
					return i
				}
			}
			return -1
		},
		func(b byte) int {
			if b == endByte || b == '\\' {
				return 1
			}
			return 0
		},
	)
	return text, ok
}

// skipWhitespaceAcrossLines moves to the next non-whitespace byte, pulling new lines if needed.
func (r *Reader) skipWhitespaceAcrossLines(src LineSource) error {
	_, err := r.buf.searchForward(&r.curLine, src, func(b byte) bool { return !isASCIIWhitespace(b) })
	if err != nil {
		return err
	}
	r.buf.rewind(1)
	return nil
}

func (r *Reader) skipWhitespaceInLine() {
	for {
		b, ok := r.buf.nextByte()
		if !ok {
			return
		}
		if !isASCIIWhitespace(b) {
			r.buf.rewind(1)
			return
		}
	}
}

func itemOpening(b byte) (Token, context) {
	switch b {
	case '[':
		return Token{Kind: TokenContainerStart}, contextContainer
	case '{':
		return Token{Kind: TokenBlockStart}, contextBlock
	case '(':
		return Token{Kind: TokenParamsStart}, contextItemParams
	default:
		panic("Internal inconsistency: not an item opening byte")
	}
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}

// isContextByte reports bytes that open or close a block, container or params list.
func isContextByte(b byte) bool {
	switch b {
	case '{', '}', '(', ')', '[', ']':
		return true
	default:
		return false
	}
}

func isIdentByte(b byte) bool {
	return !isASCIIWhitespace(b) && !isContextByte(b) && b != ';'
}

func indexNonIdentByte(bs []byte) int {
	for i, b := range bs {
		if !isIdentByte(b) {
			return i
		}
	}
	return -1
}
