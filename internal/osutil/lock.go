// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package osutil

import "os"

// A FileLock is an exclusive advisory lock over a file.
// Locks are acquired with [Lock] and held until [FileLock.Release] is called.
type FileLock struct {
	path string
	f    *os.File
}

// Path returns the path of the locked file.
func (l *FileLock) Path() string {
	return l.path
}
