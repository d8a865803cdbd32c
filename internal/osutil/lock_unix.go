// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

//go:build unix

package osutil

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Lock acquires an exclusive advisory lock on the named file.
// Lock does not block: if another process holds the lock, Lock returns an error.
func Lock(path string) (*FileLock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
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
	err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	err2 := l.f.Close()
	l.f = nil
	if err == nil {
		err = err2
	}
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
