// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/amark/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestHTTPFileSources(t *testing.T) {
	url := "http://example.com/some/path.amark"

	client := NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusOK,
			// Send response to be tested
			Body: io.NopCloser(bytes.NewBufferString("p{\nOK\n}\n")),
			// Must be set to non-nil value or it panics
			Header: make(http.Header),
		}
	})

	fileSource := files.NewHTTPSource(url)
	fileSource.Client = client
	require.Equal(t, []byte("p{\nOK\n}\n"), readAll(t, fileSource))

	relPath, err := fileSource.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "path.amark", relPath)

	// 2xx Status Codes
	client = NewTestClient(func(req *http.Request) *http.Response {
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusIMUsed,
			Body:       io.NopCloser(bytes.NewBufferString(`OK`)),
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	require.Equal(t, []byte("OK"), readAll(t, fileSource))

	// Non-OK HTTP Status Code
	status := "404 Not Found"
	client = NewTestClient(func(req *http.Request) *http.Response {
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     status,
			Body:       io.NopCloser(bytes.NewBufferString("")),
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	_, err = fileSource.Open()
	require.EqualError(t, err, fmt.Sprintf("Requesting URL '%s': %s", url, status))
}

func TestBytesSource(t *testing.T) {
	src := files.NewBytesSource("doc.amark", []byte("x;\n"))

	require.Equal(t, "doc.amark", src.Description())
	require.Equal(t, []byte("x;\n"), readAll(t, src))
	// every Open starts from the beginning
	require.Equal(t, []byte("x;\n"), readAll(t, src))
}

func TestNewFilesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.amark"), "b;\n")
	writeFile(t, filepath.Join(dir, "nested", "a.amark"), "a;\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	_, err := files.NewFiles([]string{dir}, false)
	require.EqualError(t, err, fmt.Sprintf("Expected file '%s' to not be a directory", dir))

	result, err := files.NewFiles([]string{dir}, true)
	require.NoError(t, err)
	require.Len(t, result, 2)

	require.Equal(t, "b.amark", result[0].RelativePath())
	require.Equal(t, filepath.Join("nested", "a.amark"), result[1].RelativePath())
	require.Equal(t, files.TypeAmark, result[1].Type())

	rc, err := result[1].Open()
	require.NoError(t, err)
	defer rc.Close()

	contents, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "a;\n", string(contents))
}

func TestNewFilesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	writeFile(t, path, "x;\n")

	result, err := files.NewFiles([]string{path}, false)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "plain.txt", result[0].RelativePath())
	require.Equal(t, files.TypeUnknown, result[0].Type())
	require.Equal(t, fmt.Sprintf("file '%s'", path), result[0].Description())

	missingPath := filepath.Join(dir, "missing.amark")
	_, err = files.NewFiles([]string{missingPath}, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), fmt.Sprintf("Checking file '%s': ", missingPath))
	require.Contains(t, err.Error(), "no such file or directory")
}

func TestStdinCanOnlyBeOpenedOnce(t *testing.T) {
	files.ResetStdinForTesting()
	defer files.ResetStdinForTesting()

	result, err := files.NewFiles([]string{"-"}, false)
	require.NoError(t, err)
	require.Equal(t, "stdin.amark", result[0].RelativePath())

	_, err = result[0].Open()
	require.NoError(t, err)

	_, err = result[0].Open()
	require.EqualError(t, err, "Standard input has already been read, has the '-' argument been used in more than one flag?")
}

func readAll(t *testing.T, src files.Source) []byte {
	rc, err := src.Open()
	require.NoError(t, err)
	defer rc.Close()

	contents, err := io.ReadAll(rc)
	require.NoError(t, err)
	return contents
}

func writeFile(t *testing.T, path, contents string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

// NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: RoundTripFunc(fn),
	}
}

type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}
