// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/amark/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type AmarkOptions struct{}

func NewDefaultAmarkOptions() *AmarkOptions {
	return &AmarkOptions{}
}

func NewDefaultAmarkCmd() *cobra.Command {
	return NewAmarkCmd(NewDefaultAmarkOptions())
}

func NewAmarkCmd(o *AmarkOptions) *cobra.Command {
	cmd := NewDumpCmd(NewDumpOptions())

	cmd.Use = "amark [file]..."
	cmd.Version = version.Version
	cmd.Short = "amark tokenizes amark markup"
	cmd.Long = `amark tokenizes amark markup into a stream of tokens.

Without a subcommand, tokens of the given files (or standard input) are dumped one per line.
Files may be given as arguments or with -f.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewDumpCmd(NewDumpOptions()))
	cmd.AddCommand(NewCheckCmd(NewCheckOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		disallowExtraArgsUnlessFiles, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

// fileArgsAnnotation marks commands that take files as positional arguments.
const fileArgsAnnotation = "amark/file-args"

func disallowExtraArgsUnlessFiles(cmd *cobra.Command) {
	if _, found := cmd.Annotations[fileArgsAnnotation]; found {
		cmd.Args = cobra.ArbitraryArgs
		return
	}
	cobrautil.DisallowExtraArgs(cmd)
}
