// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a source name (usually a file)
and line number within that source.

File positions are crucial when reporting tokenizer errors to the user: the
tokenizer itself only knows the number of the line it last pulled in.

Not all Positions point within a file (e.g. input that failed before the first
line was read). The zero-value of Position (can be created using
NewUnknownPosition()) represents this case.
*/
package filepos
