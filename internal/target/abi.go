// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package target

import "strings"

// ABI is the name of an application binary interface of a [Triple].
// The empty string is treated the same as [Unknown].
type ABI string

// IsUnknown reports whether abi is the empty string or [Unknown].
func (abi ABI) IsUnknown() bool {
	return abi == "" || abi == Unknown
}

// String returns string(abi) or [Unknown] if abi is the empty string.
func (abi ABI) String() string {
	if abi == "" {
		return Unknown
	}
	return string(abi)
}

// IsGNU reports whether abi is GNU-compatible
// (e.g. gnu, gnueabi, gnueabihf).
func (abi ABI) IsGNU() bool {
	return strings.HasPrefix(string(abi), "gnu")
}

// IsMusl reports whether abi is based on musl libc
// (e.g. musl, musleabi, musleabihf).
func (abi ABI) IsMusl() bool {
	return strings.HasPrefix(string(abi), "musl")
}

// IsMSVC reports whether abi indicates the Microsoft C++ ABI.
func (abi ABI) IsMSVC() bool {
	return strings.HasPrefix(string(abi), "msvc")
}
