// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package cxxlib

import "kindling.build/pkg/internal/target"

// languageStandard is the C++ language standard both libraries are built with.
const languageStandard = "c++23"

// cacheFlags synthesizes the cache-relevant flags for every translation unit
// of the library. The result depends only on the target descriptor and the
// ABI version, never on installation paths, and the flag order is fixed so
// the sequence is byte-for-byte reproducible.
func (lib *Library) cacheFlags(d *target.Descriptor, abi ABIVersion) []string {
	flags := []string{
		"-DNDEBUG",
		lib.buildingMacro,
		"-D_LIBCPP_DISABLE_PRAGMA_GCC_SYSTEM_HEADER",
	}
	flags = append(flags, ABIMacros(abi)...)
	flags = append(flags, lib.fixedFlags...)
	for _, r := range lib.flagRules {
		if r.when(d) {
			flags = append(flags, r.flags...)
		}
	}
	flags = append(flags, "-std="+languageStandard)
	return flags
}
