// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
)

type Position struct {
	lineNum *int // 1 based
	file    string
	known   bool
}

func NewPosition(lineNum int) *Position {
	if lineNum <= 0 {
		panic("Lines are 1 based")
	}
	return &Position{lineNum: &lineNum, known: true}
}

// NewPositionInFile returns the Position of line "lineNum" within the file "file"
func NewPositionInFile(lineNum int, file string) *Position {
	p := NewPosition(lineNum)
	p.file = file
	return p
}

// NewUnknownPosition is equivalent of zero value *Position
func NewUnknownPosition() *Position {
	return &Position{}
}

// NewUnknownPositionInFile produces a Position of a known file at an unknown line.
func NewUnknownPositionInFile(file string) *Position {
	return &Position{file: file}
}

func (p *Position) IsKnown() bool { return p != nil && p.known }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	if p.lineNum == nil {
		panic("Position was not properly initialized")
	}
	return *p.lineNum
}

func (p *Position) GetFile() string {
	return p.file
}

func (p *Position) AsString() string {
	return "line " + p.AsCompactString()
}

func (p *Position) AsCompactString() string {
	filePrefix := p.file
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	if p.IsKnown() {
		return fmt.Sprintf("%s%d", filePrefix, p.LineNum())
	}
	return fmt.Sprintf("%s?", filePrefix)
}

func (p *Position) As4DigitString() string {
	if p.IsKnown() {
		return fmt.Sprintf("%4d", p.LineNum())
	}
	return "????"
}
