// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package cxxlib

import (
	"fmt"
	"path/filepath"

	"kindling.build/pkg/internal/target"
)

// A CompileUnit pairs a catalog entry with the flags it is compiled with.
// CacheFlags affect the compiled object bit-for-bit and participate in the
// sub-build's cache key. IncludeFlags depend only on the installation root
// and are excluded from the cache key so that relocating the installation
// does not invalidate cached objects.
//
// CompileUnits are scoped to one resolver invocation. The flag slices are
// shared between units of the same invocation and must not be mutated.
type CompileUnit struct {
	Source       string   `json:"source"`
	CacheFlags   []string `json:"cacheFlags"`
	IncludeFlags []string `json:"includeFlags"`
}

// IncludePaths holds the installation-dependent header search paths
// for both libraries.
type IncludePaths struct {
	LibCXXInclude    string
	LibCXXABIInclude string
	LibCXXSource     string
}

// DefaultIncludePaths returns the include paths for the conventional layout
// under an installation root.
func DefaultIncludePaths(installRoot string) IncludePaths {
	return IncludePaths{
		LibCXXInclude:    filepath.Join(installRoot, "libcxx", "include"),
		LibCXXABIInclude: filepath.Join(installRoot, "libcxxabi", "include"),
		LibCXXSource:     filepath.Join(installRoot, "libcxx", "src"),
	}
}

func (p IncludePaths) flags() []string {
	return []string{
		"-I" + p.LibCXXInclude,
		"-I" + p.LibCXXABIInclude,
		"-I" + p.LibCXXSource,
	}
}

// Resolve filters the library's catalog against the target descriptor and
// returns the translation units to compile, in catalog order.
// An abi of zero selects [DefaultABIVersion].
//
// The returned units all share the same CacheFlags slice: for a given
// (target, threading mode, ABI version) tuple the cache-relevant flags are
// identical for every unit of the library, regardless of installation paths.
func (lib *Library) Resolve(d *target.Descriptor, abi ABIVersion, inc IncludePaths) ([]CompileUnit, error) {
	if abi == 0 {
		abi = DefaultABIVersion
	}
	if !abi.isValid() {
		return nil, fmt.Errorf("resolve lib%s sources: unknown ABI version %d", lib.Name, int(abi))
	}

	cacheFlags := lib.cacheFlags(d, abi)
	includeFlags := inc.flags()

	units := make([]CompileUnit, 0, len(lib.catalog))
entries:
	for _, src := range lib.catalog {
		for _, r := range lib.excludeRules {
			if r.when(d) && r.match(src) {
				continue entries
			}
		}
		units = append(units, CompileUnit{
			Source:       src,
			CacheFlags:   cacheFlags,
			IncludeFlags: includeFlags,
		})
	}
	return units, nil
}
