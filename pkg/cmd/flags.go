// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"carvel.dev/amark/pkg/config"
	"carvel.dev/amark/pkg/files"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FilesFlags selects the sources to tokenize.
type FilesFlags struct {
	Files     []string
	Recursive bool
}

func (s *FilesFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&s.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().BoolVarP(&s.Recursive, "recursive", "R", false, "Interpret file as directory")
}

// AddArgs treats positional arguments as additional files.
func (s *FilesFlags) AddArgs(args []string) {
	s.Files = append(s.Files, args...)
}

// NewFiles defaults to standard input when no file was given.
func (s *FilesFlags) NewFiles() ([]*files.File, error) {
	paths := s.Files
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	return files.NewFiles(paths, s.Recursive)
}

// ConfigFlags loads the optional config file and tracks which flags were
// explicitly given so that they can take precedence over it.
type ConfigFlags struct {
	File  string
	Debug bool

	isSet func(name string) bool
}

func (s *ConfigFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.File, "config", "", "Config file (TOML)")
	cmd.Flags().BoolVar(&s.Debug, "debug", false, "Enable debug output")
	s.isSet = cmd.Flags().Changed
}

func (s *ConfigFlags) Config() (config.Config, error) {
	if len(s.File) == 0 {
		return config.NewDefaultConfig(), nil
	}
	return config.NewConfigFromFile(s.File)
}

func (s *ConfigFlags) FlagSet(name string) bool {
	return s.isSet != nil && s.isSet(name)
}

// FormatFlag is validated once all flags are parsed.
type FormatFlag struct {
	value *string
}

var _ pflag.Value = FormatFlag{}
var _ cobrautil.ResolvableFlag = FormatFlag{}

func (s FormatFlag) Set(val string) error {
	*s.value = val
	return nil
}

func (s FormatFlag) Type() string { return "string" }

func (s FormatFlag) String() string {
	if s.value == nil {
		return ""
	}
	return *s.value
}

func (s FormatFlag) Resolve() error {
	switch *s.value {
	case config.FormatDump, config.FormatDebug:
		return nil
	default:
		return fmt.Errorf("Expected flag 'format' to be one of %s, %s, but was '%s'",
			config.FormatDump, config.FormatDebug, *s.value)
	}
}
