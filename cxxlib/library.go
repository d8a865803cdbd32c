// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

// Package cxxlib resolves the set of translation units and compiler flags
// needed to build the C++ runtime support libraries for a target.
//
// Two libraries exist: the C++ standard library ("c++") and its ABI support
// library ("c++abi"). Both are described by a [Library] value holding a fixed
// source catalog plus the library's exclusion and flag rules, so a single
// generic resolver serves both.
package cxxlib

import (
	"fmt"

	"kindling.build/pkg/internal/target"
)

// ABIVersion selects the standard library ABI version macro and the
// inline namespace that both runtime libraries are compiled with.
// Both libraries in one build must use the same ABIVersion,
// otherwise their objects are not link-compatible.
type ABIVersion int

const (
	ABIVersion1 ABIVersion = 1
	ABIVersion2 ABIVersion = 2
)

// DefaultABIVersion is the ABI version used when the caller does not
// request one explicitly.
const DefaultABIVersion = ABIVersion1

func (v ABIVersion) isValid() bool {
	return v == ABIVersion1 || v == ABIVersion2
}

// Namespace returns the inline namespace name for the ABI version.
func (v ABIVersion) Namespace() string {
	return fmt.Sprintf("__%d", int(v))
}

// ABIMacros returns the macro definitions that pin the ABI version and
// namespace. The returned flags are identical for every translation unit of
// both libraries in one build.
func ABIMacros(v ABIVersion) []string {
	return []string{
		fmt.Sprintf("-D_LIBCPP_ABI_VERSION=%d", int(v)),
		"-D_LIBCPP_ABI_NAMESPACE=" + v.Namespace(),
	}
}

// An excludeRule removes catalog entries from the resolved set when its
// condition holds for the target. Rules are evaluated in order per entry and
// the first matching rule wins.
type excludeRule struct {
	when  func(*target.Descriptor) bool
	match func(src string) bool
}

// A flagRule appends flags to every resolved translation unit of a library
// when its condition holds for the target.
type flagRule struct {
	when  func(*target.Descriptor) bool
	flags []string
}

// A Library describes one runtime support library:
// its source catalog and the rules that shape the resolved compile set.
type Library struct {
	// Name is the sub-build root name ("c++" or "c++abi").
	Name string

	catalog       []string
	buildingMacro string
	fixedFlags    []string
	excludeRules  []excludeRule
	flagRules     []flagRule
}

// Catalog returns a copy of the library's full source catalog,
// independent of any target.
func (lib *Library) Catalog() []string {
	out := make([]string, len(lib.catalog))
	copy(out, lib.catalog)
	return out
}

func hasPrefix(prefix string) func(string) bool {
	return func(src string) bool {
		return len(src) >= len(prefix) && src[:len(prefix)] == prefix
	}
}

func oneOf(files ...string) func(string) bool {
	return func(src string) bool {
		for _, f := range files {
			if src == f {
				return true
			}
		}
		return false
	}
}

func noFilesystem(d *target.Descriptor) bool { return !d.Triple.OS.HasFilesystem() }
func noExceptions(d *target.Descriptor) bool { return !d.Triple.OS.HasExceptions() }
func singleThreaded(d *target.Descriptor) bool { return d.SingleThreaded }

// LibCXX describes the C++ standard library.
var LibCXX = &Library{
	Name:          "c++",
	catalog:       libcxxSources,
	buildingMacro: "-D_LIBCPP_BUILDING_LIBRARY",
	fixedFlags: []string{
		// The serial backend is the only parallel-algorithm backend with no
		// platform dependency.
		"-D_LIBCPP_PSTL_BACKEND_SERIAL",
		"-fvisibility=hidden",
		"-fvisibility-inlines-hidden",
	},
	excludeRules: []excludeRule{
		{when: noFilesystem, match: hasPrefix("src/filesystem/")},
		{when: notOS(target.OS.IsWindows), match: hasPrefix("src/support/win32/")},
		{when: notOS(target.OS.IsSolaris), match: hasPrefix("src/support/solaris/")},
		{when: notOS(target.OS.IsZOS), match: hasPrefix("src/support/ibm/")},
		{when: singleThreaded, match: oneOf("src/thread.cpp", "src/support/win32/thread_win32.cpp")},
	},
	flagRules: []flagRule{
		{when: (*target.Descriptor).RequiresPIC, flags: []string{"-fPIC"}},
		{when: isMusl, flags: []string{"-D_LIBCPP_HAS_MUSL_LIBC"}},
		{when: singleThreaded, flags: []string{"-D_LIBCPP_HAS_NO_THREADS"}},
		{when: noExceptions, flags: []string{"-fno-exceptions"}},
		// z/OS predates library support for aligned operator new.
		{when: isZOS, flags: []string{"-fno-aligned-allocation"}},
		{when: not(isZOS), flags: []string{"-faligned-allocation"}},
	},
}

// LibCXXABI describes the ABI support library.
var LibCXXABI = &Library{
	Name:          "c++abi",
	catalog:       libcxxabiSources,
	buildingMacro: "-D_LIBCXXABI_BUILDING_LIBRARY",
	fixedFlags: []string{
		"-D_LIBCXXABI_DISABLE_VISIBILITY_ANNOTATIONS",
		"-fvisibility=hidden",
		"-fvisibility-inlines-hidden",
	},
	excludeRules: []excludeRule{
		{when: singleThreaded, match: oneOf("src/cxa_thread_atexit.cpp")},
		{when: noExceptions, match: oneOf("src/cxa_exception.cpp", "src/cxa_personality.cpp")},
	},
	flagRules: []flagRule{
		{when: (*target.Descriptor).RequiresPIC, flags: []string{"-fPIC"}},
		{when: isMusl, flags: []string{"-D_LIBCPP_HAS_MUSL_LIBC"}},
		{when: singleThreaded, flags: []string{"-D_LIBCXXABI_HAS_NO_THREADS"}},
		{when: threadAtExitImpl, flags: []string{"-DHAVE___CXA_THREAD_ATEXIT_IMPL"}},
		{when: noExceptions, flags: []string{"-fno-exceptions"}},
	},
}

func isMusl(d *target.Descriptor) bool { return d.Triple.ABI.IsMusl() }
func isZOS(d *target.Descriptor) bool { return d.Triple.OS.IsZOS() }

// threadAtExitImpl reports whether the C library provides
// __cxa_thread_atexit_impl for thread-local destructor registration.
func threadAtExitImpl(d *target.Descriptor) bool {
	return !d.SingleThreaded && d.Triple.ABI.IsGNU()
}

func not(p func(*target.Descriptor) bool) func(*target.Descriptor) bool {
	return func(d *target.Descriptor) bool { return !p(d) }
}

func notOS(p func(target.OS) bool) func(*target.Descriptor) bool {
	return func(d *target.Descriptor) bool { return !p(d.Triple.OS) }
}
