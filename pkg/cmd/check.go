// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"carvel.dev/amark/pkg/amark"
	"carvel.dev/amark/pkg/cmd/ui"
	"carvel.dev/amark/pkg/filepos"
	"carvel.dev/amark/pkg/files"
	"github.com/spf13/cobra"
)

type CheckOptions struct {
	FilesFlags  FilesFlags
	ConfigFlags ConfigFlags

	BufferCapacity int
}

func NewCheckOptions() *CheckOptions {
	return &CheckOptions{}
}

func NewCheckCmd(o *CheckOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "check [file]...",
		Short:       "Verify that amark files tokenize cleanly",
		Annotations: map[string]string{fileArgsAnnotation: ""},
		RunE: func(_ *cobra.Command, args []string) error {
			o.FilesFlags.AddArgs(args)
			return o.Run()
		},
	}
	o.FilesFlags.Set(cmd)
	o.ConfigFlags.Set(cmd)
	return cmd
}

func (o *CheckOptions) Run() error {
	ui := ui.NewTTY(o.ConfigFlags.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	cfg, err := o.ConfigFlags.Config()
	if err != nil {
		return err
	}

	o.BufferCapacity = cfg.BufferCapacity
	if !o.ConfigFlags.FlagSet("recursive") {
		o.FilesFlags.Recursive = cfg.Recursive
	}

	filesToProcess, err := o.FilesFlags.NewFiles()
	if err != nil {
		return err
	}

	return o.RunWithFiles(filesToProcess, ui)
}

func (o *CheckOptions) RunWithFiles(filesToProcess []*files.File, ui ui.UI) error {
	buf := make([]byte, 0, o.BufferCapacity)

	for _, file := range filesToProcess {
		warnIfNotAmark(file, ui)

		reader := amark.NewReaderWithBuf(buf)
		balance := &balanceCheck{}

		count, err := tokenizeFile(file, reader, balance.Visit)
		if err != nil {
			return err
		}

		ui.Printf("%s: ok (%d tokens)\n", file.RelativePath(), count)

		buf = reader.TakeBuf()
	}

	return nil
}

var closingKinds = map[amark.TokenKind]amark.TokenKind{
	amark.TokenBlockEnd:     amark.TokenBlockStart,
	amark.TokenContainerEnd: amark.TokenContainerStart,
	amark.TokenParamsEnd:    amark.TokenParamsStart,
}

// balanceCheck verifies that every start token is closed by its matching end
// token in nesting order, and that nothing is left open at End.
type balanceCheck struct {
	open []amark.TokenKind
}

func (c *balanceCheck) Visit(tok amark.Token, pos *filepos.Position) error {
	switch tok.Kind {
	case amark.TokenBlockStart, amark.TokenContainerStart, amark.TokenParamsStart:
		c.open = append(c.open, tok.Kind)

	case amark.TokenBlockEnd, amark.TokenContainerEnd, amark.TokenParamsEnd:
		expected := closingKinds[tok.Kind]
		if len(c.open) == 0 || c.open[len(c.open)-1] != expected {
			return fmt.Errorf("Unbalanced %s at %s", tok.Kind, pos.AsString())
		}
		c.open = c.open[:len(c.open)-1]

	case amark.TokenEnd:
		if len(c.open) > 0 {
			return fmt.Errorf("Unclosed %s at %s", c.open[len(c.open)-1], pos.AsString())
		}
	}
	return nil
}
