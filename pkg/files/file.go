// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	amarkExts = []string{".amark"}
)

type Type int

const (
	TypeUnknown Type = iota
	TypeAmark
)

type File struct {
	src     Source
	relPath string
}

// NewFiles expands paths into files. Directories are walked (when recursive)
// and only amark files within them are selected.
func NewFiles(paths []string, recursive bool) ([]*File, error) {
	var fileSrcs []Source

	for _, path := range paths {
		switch {
		case path == "-":
			fileSrcs = append(fileSrcs, NewStdinSource())

		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			fileSrcs = append(fileSrcs, NewHTTPSource(path))

		default:
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %s", path, err)
			}

			if fileInfo.IsDir() {
				if !recursive {
					return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
				}

				var selectedPaths []string

				err := filepath.Walk(path, func(walkedPath string, fi os.FileInfo, err error) error {
					if err != nil || fi.IsDir() {
						return err
					}
					if matchesExt(walkedPath, amarkExts) {
						selectedPaths = append(selectedPaths, walkedPath)
					}
					return nil
				})
				if err != nil {
					return nil, fmt.Errorf("Listing files '%s': %s", path, err)
				}

				sort.Strings(selectedPaths)

				for _, selectedPath := range selectedPaths {
					fileSrcs = append(fileSrcs, NewLocalSource(selectedPath, path))
				}
			} else {
				fileSrcs = append(fileSrcs, NewLocalSource(path, ""))
			}
		}
	}

	var files []*File

	for _, fileSrc := range fileSrcs {
		file, err := NewFileFromSource(fileSrc)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}

	return &File{src: fileSrc, relPath: relPath}, nil
}

func MustNewFileFromSource(fileSrc Source) *File {
	file, err := NewFileFromSource(fileSrc)
	if err != nil {
		panic(err)
	}
	return file
}

func (r *File) Description() string  { return r.src.Description() }
func (r *File) RelativePath() string { return r.relPath }

// Open starts streaming the file's contents. Callers must close the result.
func (r *File) Open() (io.ReadCloser, error) { return r.src.Open() }

func (r *File) Type() Type {
	if matchesExt(r.RelativePath(), amarkExts) {
		return TypeAmark
	}
	return TypeUnknown
}

func matchesExt(path string, exts []string) bool {
	filename := filepath.Base(path)
	for _, ext := range exts {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
