// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package target

import "strings"

// OS is the name of an operating system of a [Triple].
// The empty string is treated the same as [Unknown].
type OS string

// IsUnknown reports whether os is the empty string or [Unknown].
func (os OS) IsUnknown() bool {
	return os == "" || os == Unknown
}

func (os OS) isKnown() bool {
	return os.IsLinux() || os.IsWindows() || os.IsDarwin() ||
		os.IsWASI() || os.IsSolaris() || os.IsZOS() || os.IsFreestanding()
}

// String returns string(os) or [Unknown] if os is the empty string.
func (os OS) String() string {
	if os == "" {
		return Unknown
	}
	return string(os)
}

// IsDarwin reports whether os is in the Darwin family of operating systems
// (e.g. macOS, iOS, etc.).
func (os OS) IsDarwin() bool {
	return os.IsMacOS() || os.IsiOS()
}

// IsMacOS reports whether os indicates macOS.
func (os OS) IsMacOS() bool {
	return strings.HasPrefix(string(os), "darwin") || strings.HasPrefix(string(os), "macos")
}

// IsiOS reports whether os indicates iOS.
func (os OS) IsiOS() bool {
	return strings.HasPrefix(string(os), "ios")
}

// IsWindows reports whether os indicates Windows.
func (os OS) IsWindows() bool {
	return strings.HasPrefix(string(os), "windows") ||
		strings.HasPrefix(string(os), "win32")
}

// IsLinux reports whether os indicates Linux.
func (os OS) IsLinux() bool {
	return strings.HasPrefix(string(os), "linux")
}

// IsWASI reports whether os indicates a WebAssembly System Interface environment.
func (os OS) IsWASI() bool {
	return strings.HasPrefix(string(os), "wasi")
}

// IsSolaris reports whether os indicates Solaris or illumos.
func (os OS) IsSolaris() bool {
	return strings.HasPrefix(string(os), "solaris") || strings.HasPrefix(string(os), "illumos")
}

// IsZOS reports whether os indicates z/OS.
func (os OS) IsZOS() bool {
	return string(os) == "zos"
}

// IsFreestanding reports whether os indicates a bare-metal environment
// with no operating system.
func (os OS) IsFreestanding() bool {
	return string(os) == "none" || strings.HasPrefix(string(os), "freestanding")
}

// HasFilesystem reports whether the operating system provides native
// filesystem support that the standard library can be built against.
func (os OS) HasFilesystem() bool {
	return !os.IsWASI() && !os.IsFreestanding()
}

// HasExceptions reports whether the operating system environment supports
// C++ exception handling.
func (os OS) HasExceptions() bool {
	return !os.IsWASI()
}

func (os OS) defaultABI() ABI {
	switch {
	case os.IsLinux():
		return "gnu"
	case os.IsWindows():
		return "msvc"
	default:
		return Unknown
	}
}
