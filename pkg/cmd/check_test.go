// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"testing"

	"carvel.dev/amark/pkg/cmd"
	"carvel.dev/amark/pkg/cmd/ui"
	"carvel.dev/amark/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("a.amark", []byte("a;\n"))),
		files.MustNewFileFromSource(files.NewBytesSource("b.amark", []byte("f(\\x(1))[\n  p{\n    \\y hi\n  }\n]\n"))),
	}

	stdout := bytes.NewBufferString("")
	err := cmd.NewCheckOptions().RunWithFiles(filesToProcess, ui.NewCustomWriterTTY(false, stdout, nil))
	require.NoError(t, err)
	require.Equal(t, "a.amark: ok (3 tokens)\nb.amark: ok (15 tokens)\n", stdout.String())
}

func TestCheckStopsAtFirstError(t *testing.T) {
	filesToProcess := []*files.File{
		files.MustNewFileFromSource(files.NewBytesSource("bad.amark", []byte("a[\n  b;\n"))),
		files.MustNewFileFromSource(files.NewBytesSource("a.amark", []byte("a;\n"))),
	}

	stdout := bytes.NewBufferString("")
	err := cmd.NewCheckOptions().RunWithFiles(filesToProcess, ui.NewCustomWriterTTY(false, stdout, nil))
	require.EqualError(t, err, "Parsing bad.amark:3: Unexpected end of file:\nexpected: \"End of Container: ]\"\ngot: End of File")
	require.Equal(t, "", stdout.String())
}
