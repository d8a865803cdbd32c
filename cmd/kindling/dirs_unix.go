// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"iter"
	"path/filepath"

	"go4.org/xdgdir"
)

func cacheDir() string {
	return xdgdir.Cache.Path()
}

func defaultInstallRoot() string {
	return "/opt/kindling"
}

// configFilePaths returns the config file search order,
// from lowest to highest precedence.
func configFilePaths() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(filepath.Join("/etc", "kindling", configFileName)) {
			return
		}
		if p := xdgdir.Config.Path(); p != "" {
			yield(filepath.Join(p, "kindling", configFileName))
		}
	}
}
