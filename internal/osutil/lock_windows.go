// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package osutil

import (
	"fmt"
	"os"
)

// Lock acquires an exclusive lock on the named file
// by creating a sidecar ".lock" file.
// Lock does not block: if the sidecar file already exists, Lock returns an error.
func Lock(path string) (*FileLock, error) {
	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return &FileLock{path: path, f: f}, nil
}

// Release releases the lock.
// Calling Release more than once is an error.
func (l *FileLock) Release() error {
	if l.f == nil {
		return fmt.Errorf("release lock %s: already released", l.path)
	}
	err := l.f.Close()
	err2 := os.Remove(l.path + ".lock")
	l.f = nil
	if err == nil {
		err = err2
	}
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
