// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package amark

import (
	"bufio"
	"errors"
	"io"
)

// LineSource is a byte stream that can be consumed line by line.
// *bufio.Reader satisfies it.
type LineSource interface {
	ReadSlice(delim byte) (line []byte, err error)
}

var _ LineSource = &bufio.Reader{}

// NewLineSource wraps r into a LineSource unless it already is one.
func NewLineSource(r io.Reader) LineSource {
	if src, ok := r.(LineSource); ok {
		return src
	}
	return bufio.NewReader(r)
}

// lineBuffer holds exactly one line of input and tracks
// how many of its bytes have been processed.
type lineBuffer struct {
	storage   []byte
	processed int // 0 <= processed <= len(storage)
}

// newLineBuffer reuses the capacity of storage; its contents are discarded.
func newLineBuffer(storage []byte) lineBuffer {
	return lineBuffer{storage: storage[:0]}
}

// fillWithLine clears the buffer and pulls the next line (including its '\n', if any)
// from src. An exhausted source leaves the storage empty and is not an error.
func (b *lineBuffer) fillWithLine(curLine *int, src LineSource) error {
	b.storage = b.storage[:0]
	b.processed = 0
	*curLine++

	for {
		line, err := src.ReadSlice('\n')
		b.storage = append(b.storage, line...)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, bufio.ErrBufferFull):
			// line is longer than the source's own buffer, keep accumulating
		case errors.Is(err, io.EOF):
			return nil
		default:
			return &IOError{Err: err}
		}
	}
}

func (b *lineBuffer) nextByte() (byte, bool) {
	if b.processed >= len(b.storage) {
		return 0, false
	}
	ret := b.storage[b.processed]
	b.processed++
	return ret, true
}

// rewind makes the last n processed bytes processable again.
func (b *lineBuffer) rewind(n int) {
	b.processed -= n
	if b.processed < 0 {
		b.processed = 0
	}
}

// searchForward consumes bytes until pattern matches, pulling in new lines as needed.
// It reports false only when the source ran dry before a match.
func (b *lineBuffer) searchForward(curLine *int, src LineSource, pattern func(byte) bool) (bool, error) {
	for !b.storageEmpty() {
		c, ok := b.nextByte()
		if !ok {
			if err := b.fillWithLine(curLine, src); err != nil {
				return false, err
			}
			continue
		}
		if pattern(c) {
			return true, nil
		}
	}
	return false, nil
}

// takeUntilRewind returns the unprocessed bytes up to (excluding) the position
// reported by searcher together with the byte found there. The found byte is consumed
// unless rewind asks to give it back. If searcher finds nothing, the rest of the
// line is consumed and ok is false.
func (b *lineBuffer) takeUntilRewind(searcher func([]byte) int, rewind func(byte) int) (taken []byte, found byte, ok bool) {
	rest := b.storage[b.processed:]

	pos := searcher(rest)
	if pos < 0 || pos >= len(rest) {
		b.processed = len(b.storage)
		return nil, 0, false
	}

	b.processed += pos + 1
	b.rewind(rewind(rest[pos]))

	return rest[:pos], rest[pos], true
}

// storageEmpty reports whether the last fill produced no bytes at all,
// regardless of how many of them are processed.
func (b *lineBuffer) storageEmpty() bool { return len(b.storage) == 0 }

func (b *lineBuffer) takeStorage() []byte {
	storage := b.storage
	b.storage = nil
	b.processed = 0
	return storage
}
