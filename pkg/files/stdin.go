// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	stdinLock        sync.Mutex
	hasStdinBeenRead bool
)

// OpenStdin hands out standard input for streaming. It can only be opened once.
func OpenStdin() (io.ReadCloser, error) {
	stdinLock.Lock()
	defer stdinLock.Unlock()

	if hasStdinBeenRead {
		return nil, fmt.Errorf("Standard input has already been read, has the '-' argument been used in more than one flag?")
	}
	hasStdinBeenRead = true
	// closing is left to the process
	return io.NopCloser(os.Stdin), nil
}

// ResetStdinForTesting allows standard input to be opened again.
//
// This is for testing purposes only.
func ResetStdinForTesting() {
	stdinLock.Lock()
	defer stdinLock.Unlock()
	hasStdinBeenRead = false
}
