// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"carvel.dev/amark/pkg/version"
	"github.com/BurntSushi/toml"
)

const (
	FormatDump  = "dump"
	FormatDebug = "debug"

	DefaultBufferCapacity = 4096
	DefaultOutputBuffer   = 4_000_000
)

// Config holds settings shared by all commands. Zero values mean "not set".
type Config struct {
	BufferCapacity int    `toml:"buffer-capacity"`
	OutputBuffer   int    `toml:"output-buffer"`
	Format         string `toml:"format"`
	Recursive      bool   `toml:"recursive"`
	RequireVersion string `toml:"require-version"`
}

func NewDefaultConfig() Config {
	return Config{
		BufferCapacity: DefaultBufferCapacity,
		OutputBuffer:   DefaultOutputBuffer,
		Format:         FormatDump,
	}
}

// NewConfigFromFile reads a TOML file on top of the defaults.
func NewConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("Reading config file '%s': %s", path, err)
	}

	return NewConfigFromBytes(path, contents)
}

func NewConfigFromBytes(desc string, contents []byte) (Config, error) {
	cfg := NewDefaultConfig()

	md, err := toml.Decode(string(contents), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("Unmarshaling config file '%s': %s", desc, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("Unmarshaling config file '%s': unknown key '%s'", desc, undecoded[0])
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("Validating config file '%s': %s", desc, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.BufferCapacity < 0 {
		return fmt.Errorf("Expected buffer-capacity to be non-negative, but was %d", c.BufferCapacity)
	}
	if c.OutputBuffer < 0 {
		return fmt.Errorf("Expected output-buffer to be non-negative, but was %d", c.OutputBuffer)
	}

	switch c.Format {
	case FormatDump, FormatDebug:
	default:
		return fmt.Errorf("Unknown format '%s' (supported: %s, %s)", c.Format, FormatDump, FormatDebug)
	}

	if len(c.RequireVersion) > 0 {
		return version.Require(c.RequireVersion)
	}
	return nil
}
