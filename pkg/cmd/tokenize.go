// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"carvel.dev/amark/pkg/amark"
	"carvel.dev/amark/pkg/cmd/ui"
	"carvel.dev/amark/pkg/filepos"
	"carvel.dev/amark/pkg/files"
)

// tokenizeFile feeds every token of file to visit, up to and including End,
// and returns how many tokens were produced. Errors from visit are returned as is.
func tokenizeFile(file *files.File, reader *amark.Reader, visit func(amark.Token, *filepos.Position) error) (int, error) {
	rc, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("Opening %s: %s", file.Description(), err)
	}
	defer rc.Close()

	src := amark.NewLineSource(rc)
	count := 0

	for {
		tok, line, err := reader.NextWithLine(src)
		pos := tokenPosition(file, line)
		if err != nil {
			return count, fmt.Errorf("Parsing %s: %w", pos.AsCompactString(), err)
		}

		count++

		err = visit(tok, pos)
		if err != nil {
			return count, err
		}

		if tok.Kind == amark.TokenEnd {
			return count, nil
		}
	}
}

// warnIfNotAmark flags inputs that were selected explicitly but do not look like amark files.
func warnIfNotAmark(file *files.File, ui ui.UI) {
	if file.Type() != files.TypeAmark {
		ui.Warnf("Warning: %s does not have the .amark extension\n", file.Description())
	}
}

func tokenPosition(file *files.File, line int) *filepos.Position {
	if line > 0 {
		return filepos.NewPositionInFile(line, file.RelativePath())
	}
	return filepos.NewUnknownPositionInFile(file.RelativePath())
}
