// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and opening data from various
file or file-like Source's: local files, directories, standard input and HTTP URLs.

Contents are never loaded up front. Each File is opened as a stream so the
tokenizer can pull one line at a time regardless of where the bytes come from.

Directories are only walked when recursion is enabled, and only files with an
amark extension are selected from them.
*/
package files
