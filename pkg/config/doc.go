// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads optional amark settings from a TOML file.

Values from the file are applied on top of the defaults; command line flags
that were explicitly set take precedence over both.
*/
package config
