// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package main

import (
	"iter"
	"os"
	"path/filepath"
)

func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return dir
}

func defaultInstallRoot() string {
	return filepath.Join(`C:\`, "kindling")
}

// configFilePaths returns the config file search order,
// from lowest to highest precedence.
func configFilePaths() iter.Seq[string] {
	return func(yield func(string) bool) {
		dir, err := os.UserConfigDir()
		if err != nil {
			return
		}
		yield(filepath.Join(dir, "kindling", configFileName))
	}
}
