// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"carvel.dev/amark/pkg/amark"
	"carvel.dev/amark/pkg/cmd/ui"
	"carvel.dev/amark/pkg/config"
	"carvel.dev/amark/pkg/filepos"
	"carvel.dev/amark/pkg/files"
	"github.com/spf13/cobra"
)

type DumpOptions struct {
	FilesFlags  FilesFlags
	ConfigFlags ConfigFlags

	Format         string
	BufferCapacity int
	OutputBuffer   int
}

func NewDumpOptions() *DumpOptions {
	return &DumpOptions{
		Format:         config.FormatDump,
		BufferCapacity: config.DefaultBufferCapacity,
		OutputBuffer:   config.DefaultOutputBuffer,
	}
}

func NewDumpCmd(o *DumpOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "dump [file]...",
		Short:       "Print the token stream of amark files",
		Annotations: map[string]string{fileArgsAnnotation: ""},
		RunE: func(_ *cobra.Command, args []string) error {
			o.FilesFlags.AddArgs(args)
			return o.Run()
		},
	}
	o.FilesFlags.Set(cmd)
	o.ConfigFlags.Set(cmd)
	cmd.Flags().Var(FormatFlag{&o.Format}, "format", "Output format (dump, debug)")
	return cmd
}

func (o *DumpOptions) Run() error {
	ui := ui.NewTTY(o.ConfigFlags.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	cfg, err := o.ConfigFlags.Config()
	if err != nil {
		return err
	}
	o.applyConfig(cfg)

	filesToProcess, err := o.FilesFlags.NewFiles()
	if err != nil {
		return err
	}

	return o.RunWithFiles(filesToProcess, ui)
}

func (o *DumpOptions) applyConfig(cfg config.Config) {
	o.BufferCapacity = cfg.BufferCapacity
	o.OutputBuffer = cfg.OutputBuffer

	if !o.ConfigFlags.FlagSet("format") {
		o.Format = cfg.Format
	}
	if !o.ConfigFlags.FlagSet("recursive") {
		o.FilesFlags.Recursive = cfg.Recursive
	}
}

// RunWithFiles writes tokens of each file in order. Output produced before
// an error is flushed before the error is returned.
func (o *DumpOptions) RunWithFiles(filesToProcess []*files.File, ui ui.UI) error {
	var printToken func(io.Writer, amark.Token, *filepos.Position) error

	switch o.Format {
	case config.FormatDump:
		printToken = dumpToken
	case config.FormatDebug:
		printToken = debugToken
	default:
		return fmt.Errorf("Unknown format '%s' (supported: %s, %s)", o.Format, config.FormatDump, config.FormatDebug)
	}

	out := bufio.NewWriterSize(ui.OutputWriter(), o.OutputBuffer)
	buf := make([]byte, 0, o.BufferCapacity)

	for _, file := range filesToProcess {
		var err error

		buf, err = o.dumpFile(file, buf, out, printToken, ui)
		if err != nil {
			flushErr := out.Flush()
			if flushErr != nil {
				ui.Warnf("Flushing output: %s\n", flushErr)
			}
			return err
		}
	}

	return out.Flush()
}

func (o *DumpOptions) dumpFile(file *files.File, buf []byte, out io.Writer,
	printToken func(io.Writer, amark.Token, *filepos.Position) error, ui ui.UI) ([]byte, error) {

	t1 := time.Now()
	warnIfNotAmark(file, ui)
	ui.Debugf("### %s (buffer capacity %d)\n", file.RelativePath(), cap(buf))

	reader := amark.NewReaderWithBuf(buf)
	count, err := tokenizeFile(file, reader, func(tok amark.Token, pos *filepos.Position) error {
		err := printToken(out, tok, pos)
		if err != nil {
			return fmt.Errorf("Writing output: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ui.Debugf("%s: %d tokens in %s\n", file.RelativePath(), count, time.Now().Sub(t1))

	return reader.TakeBuf(), nil
}

func dumpToken(w io.Writer, tok amark.Token, _ *filepos.Position) error {
	err := tok.Dump(w)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func debugToken(w io.Writer, tok amark.Token, pos *filepos.Position) error {
	_, err := fmt.Fprintf(w, "%s | %s\n", pos.As4DigitString(), tok)
	return err
}
