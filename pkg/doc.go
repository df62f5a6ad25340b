// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of amark.

Packages are layered; each depends on the others only to the degree required.

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

amark is built into a single command-line tool:

	./cmd/amark

# Commands

	(1) => pkg/cmd => (7)

# Tokenizer

The heart of amark is a streaming tokenizer. It has no dependencies on other
packages so that it can be embedded on its own (see examples/integrating-with-amark).

	(1) => pkg/amark => (0)

# Utilities

	(1) => pkg/files => (0)
	(1) => pkg/filepos => (0)
	(1) => pkg/config => (1)
	(2) => pkg/version => (0)
	(1) => pkg/cmd/ui => (0)

# Dependencies

	pkg/cmd:
	- pkg/amark
	- pkg/cmd/ui
	- pkg/config
	- pkg/filepos
	- pkg/files
	- pkg/version
	pkg/config:
	- pkg/version
*/
package pkg
