// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"carvel.dev/amark/pkg/amark"
	"carvel.dev/amark/pkg/cmd"
	"carvel.dev/amark/pkg/cmd/ui"
	"carvel.dev/amark/pkg/config"
	"carvel.dev/amark/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestDumpFormat(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("doc.amark", []byte("p{hi}\nbr(1);\n"))),
	}

	stdout, stderr, err := runDump(t, cmd.NewDumpOptions(), filesToProcess)
	require.NoError(t, err)
	require.Equal(t, "", stderr)
	require.Equal(t, strings.Join([]string{
		"ItemName(p)",
		"BlockStart",
		"Text(hi)",
		"BlockEnd",
		"ItemName(br)",
		"ParamsStart",
		"Text(1)",
		"ParamsEnd",
		"ItemEnd",
		"End",
	}, "\n")+"\n", stdout)
}

func TestDumpDebugFormat(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("doc.amark", []byte("p{hi}\nbr(1);\n"))),
	}

	opts := cmd.NewDumpOptions()
	opts.Format = config.FormatDebug

	stdout, _, err := runDump(t, opts, filesToProcess)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		`   1 | ItemName("p")`,
		`   1 | BlockStart`,
		`   1 | Text("hi")`,
		`   1 | BlockEnd`,
		`   2 | ItemName("br")`,
		`   2 | ParamsStart`,
		`   2 | Text("1")`,
		`   2 | ParamsEnd`,
		`   2 | ItemEnd`,
		`   3 | End`,
	}, "\n")+"\n", stdout)
}

func TestDumpMultipleFilesReusesBuffer(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("a.amark", []byte("a;\n"))),
		files.MustNewFileFromSource(files.NewBytesSource("b.amark", []byte("b[\n  c;\n]\n"))),
	}

	opts := cmd.NewDumpOptions()
	opts.BufferCapacity = 2
	opts.OutputBuffer = 4

	stdout, stderr, err := runDumpWithDebug(t, opts, filesToProcess, true)
	require.NoError(t, err)
	require.Equal(t, "ItemName(a)\nItemEnd\nEnd\n"+
		"ItemName(b)\nContainerStart\nItemName(c)\nItemEnd\nContainerEnd\nEnd\n", stdout)

	require.Contains(t, stderr, "### a.amark (buffer capacity 2)\n")
	require.Contains(t, stderr, "a.amark: 3 tokens in ")
	require.Contains(t, stderr, "b.amark: 6 tokens in ")
}

func TestDumpFlushesOutputBeforeError(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("ok.amark", []byte("a;\n"))),
		files.MustNewFileFromSource(files.NewBytesSource("bad.amark", []byte("item{hello\n"))),
	}

	stdout, _, err := runDump(t, cmd.NewDumpOptions(), filesToProcess)
	require.EqualError(t, err, "Parsing bad.amark:2: Unexpected end of file:\nexpected: \"End of Block: }\"\ngot: End of File")
	require.Equal(t, "ItemName(a)\nItemEnd\nEnd\nItemName(item)\nBlockStart\nText(hello)\n", stdout)

	var eofErr *amark.UnexpectedEOFError
	require.True(t, errors.As(err, &eofErr))
}

func TestDumpUnexpectedInputPosition(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("doc.amark", []byte("a;\nb;\n}\n"))),
	}

	_, _, err := runDump(t, cmd.NewDumpOptions(), filesToProcess)
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "Parsing doc.amark:3: Unexpected input:"), "got %s", err)

	var inputErr *amark.UnexpectedInputError
	require.True(t, errors.As(err, &inputErr))
}

func TestDumpWarnsAboutNonAmarkFiles(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("notes.txt", []byte("a;\n"))),
	}

	stdout, stderr, err := runDump(t, cmd.NewDumpOptions(), filesToProcess)
	require.NoError(t, err)
	require.Equal(t, "ItemName(a)\nItemEnd\nEnd\n", stdout)
	require.Equal(t, "Warning: notes.txt does not have the .amark extension\n", stderr)
}

func TestDumpReportsWriteErrors(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("doc.amark", []byte("a;\n"))),
	}
	writeErr := errors.New("disk full")

	opts := cmd.NewDumpOptions()
	opts.OutputBuffer = 1

	stderr := bytes.NewBufferString("")
	err := opts.RunWithFiles(filesToProcess, ui.NewCustomWriterTTY(false, failingWriter{writeErr}, stderr))
	require.EqualError(t, err, "Writing output: disk full")
	require.True(t, errors.Is(err, writeErr))
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestDumpUnknownFormat(t *testing.T) {
	opts := cmd.NewDumpOptions()
	opts.Format = "html"

	_, _, err := runDump(t, opts, nil)
	require.EqualError(t, err, "Unknown format 'html' (supported: dump, debug)")
}

func runDump(t *testing.T, opts *cmd.DumpOptions, filesToProcess []*files.File) (string, string, error) {
	return runDumpWithDebug(t, opts, filesToProcess, false)
}

func runDumpWithDebug(t *testing.T, opts *cmd.DumpOptions, filesToProcess []*files.File, debug bool) (string, string, error) {
	t.Helper()

	stdout := bytes.NewBufferString("")
	stderr := bytes.NewBufferString("")

	err := opts.RunWithFiles(filesToProcess, ui.NewCustomWriterTTY(debug, stdout, stderr))
	return stdout.String(), stderr.String(), err
}
