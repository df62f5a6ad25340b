// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Source is where a File's bytes come from. Contents are streamed:
// nothing is read until Open is called.
type Source interface {
	Description() string
	RelativePath() (string, error)
	Open() (io.ReadCloser, error)
}

var _ []Source = []Source{BytesSource{}, StdinSource{}, LocalSource{}, HTTPSource{}}

type BytesSource struct {
	path string
	data []byte
}

func NewBytesSource(path string, data []byte) BytesSource { return BytesSource{path, data} }

func (s BytesSource) Description() string           { return s.path }
func (s BytesSource) RelativePath() (string, error) { return s.path, nil }

func (s BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

type StdinSource struct{}

func NewStdinSource() StdinSource { return StdinSource{} }

func (s StdinSource) Description() string           { return "stdin.amark" }
func (s StdinSource) RelativePath() (string, error) { return "stdin.amark", nil }
func (s StdinSource) Open() (io.ReadCloser, error)  { return OpenStdin() }

type LocalSource struct {
	path string
	dir  string
}

func NewLocalSource(path, dir string) LocalSource { return LocalSource{path, dir} }

func (s LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }

func (s LocalSource) RelativePath() (string, error) {
	if s.dir == "" {
		return filepath.Base(s.path), nil
	}

	cleanPath, err := filepath.Abs(filepath.Clean(s.path))
	if err != nil {
		return "", err
	}

	cleanDir, err := filepath.Abs(filepath.Clean(s.dir))
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(cleanPath, cleanDir) {
		result := strings.TrimPrefix(cleanPath, cleanDir)
		result = strings.TrimPrefix(result, string(os.PathSeparator))
		return result, nil
	}

	return "", fmt.Errorf("unknown relative path for %s", s.path)
}

func (s LocalSource) Open() (io.ReadCloser, error) { return os.Open(s.path) }

type HTTPSource struct {
	url    string
	Client *http.Client
}

func NewHTTPSource(path string) HTTPSource { return HTTPSource{path, &http.Client{}} }

func (s HTTPSource) Description() string {
	return fmt.Sprintf("HTTP URL '%s'", s.url)
}

func (s HTTPSource) RelativePath() (string, error) { return path.Base(s.url), nil }

func (s HTTPSource) Open() (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, resp.Status)
	}

	return resp.Body, nil
}
