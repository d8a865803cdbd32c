// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

// Package target implements parsing of target triples
// and describes the build configuration for a target.
package target

import (
	"fmt"
	"runtime"
	"strings"
)

const Unknown = "unknown"

// Triple represents a platform that kindling can build runtime libraries for.
type Triple struct {
	Arch Architecture
	OS   OS
	ABI  ABI
}

// Parse parses a target triple string into a [Triple].
// Accepted forms are "arch-os", "arch-os-abi", "arch-vendor-os",
// and "arch-vendor-os-abi"; the vendor component is discarded.
// If Parse does not return an error,
// it guarantees that all of the Triple's fields will be filled in.
func Parse(s string) (Triple, error) {
	var parts [4]string
	var numParts int
	for part := range strings.SplitSeq(s, "-") {
		if numParts == cap(parts) {
			return Triple{}, fmt.Errorf("parse target %q: trailing components after %s", s, parts[numParts-1])
		}
		parts[numParts] = part
		numParts++
	}

	var archPart, osPart, abiPart string
	switch numParts {
	case 2:
		archPart, osPart = parts[0], parts[1]
	case 3:
		if OS(parts[1]).isKnown() || parts[1] == "none" {
			archPart, osPart, abiPart = parts[0], parts[1], parts[2]
		} else {
			archPart, osPart = parts[0], parts[2]
		}
	case 4:
		archPart, osPart, abiPart = parts[0], parts[2], parts[3]
	default:
		return Triple{}, fmt.Errorf("parse target %q: missing operating system", s)
	}

	t := Triple{
		Arch: Unknown,
		OS:   Unknown,
		ABI:  Unknown,
	}
	if got := Architecture(archPart); got != "" {
		t.Arch = got
	}
	if got := OS(osPart); got != "" {
		t.OS = got
	}
	if got := ABI(abiPart); got != "" {
		t.ABI = got
	} else {
		t.ABI = t.OS.defaultABI()
	}
	return t, nil
}

// Current returns a [Triple] for the current process's execution environment.
func Current() Triple {
	var t Triple
	switch runtime.GOARCH {
	case "386":
		t.Arch = "i686"
	case "amd64":
		t.Arch = "x86_64"
	case "arm":
		t.Arch = "arm"
	case "arm64":
		t.Arch = "aarch64"
	case "riscv":
		t.Arch = "riscv32"
	case "riscv64":
		t.Arch = "riscv64"
	default:
		panic("unknown GOARCH=" + runtime.GOARCH)
	}
	switch runtime.GOOS {
	case "linux":
		t.OS = "linux"
		t.ABI = "gnu"
	case "darwin":
		t.OS = "macos"
		t.ABI = Unknown
	case "windows":
		t.OS = "windows"
		t.ABI = "msvc"
	case "ios":
		t.OS = "ios"
		t.ABI = Unknown
	case "wasip1":
		t.OS = "wasi"
		t.ABI = Unknown
	default:
		panic("unknown GOOS=" + runtime.GOOS)
	}
	return t
}

// String returns t as a string that can be passed to [Parse].
func (t Triple) String() string {
	if t.ABI.IsUnknown() || ABI(t.ABI.String()) == t.OS.defaultABI() {
		return t.Arch.String() + "-" + t.OS.String()
	}
	return t.Arch.String() + "-" + t.OS.String() + "-" + t.ABI.String()
}

// LLVM returns the triple in the form understood by an LLVM-based
// compiler driver's -target option.
func (t Triple) LLVM() string {
	vendor := Unknown
	switch {
	case t.OS.IsDarwin():
		vendor = "apple"
	case t.OS.IsWindows():
		vendor = "pc"
	}
	if t.ABI.IsUnknown() {
		return t.Arch.String() + "-" + vendor + "-" + t.OS.String()
	}
	return t.Arch.String() + "-" + vendor + "-" + t.OS.String() + "-" + t.ABI.String()
}

// A Descriptor is the complete description of a build configuration
// for a single target.
// Descriptors are treated as immutable once handed to a build pipeline.
type Descriptor struct {
	Triple Triple

	// SingleThreaded indicates that the target has no thread support
	// and the runtime libraries must be built without it.
	SingleThreaded bool

	// PIC requests position-independent code.
	// PIE requests a position-independent executable
	// (which implies position-independent code for the runtime libraries).
	PIC bool
	PIE bool

	// LTO requests link-time optimization for the final program.
	LTO bool

	// SanitizeAddress and SanitizeThread record the caller's sanitizer
	// configuration. Runtime support libraries are always built without
	// instrumentation, but the settings travel with the descriptor so
	// the sub-build can key its outputs correctly.
	SanitizeAddress bool
	SanitizeThread  bool

	// Optimize selects the optimization mode for the sub-build.
	Optimize Optimize
	// StripDebugInfo omits debug information from compiled objects.
	StripDebugInfo bool

	// OmitFramePointer and NoRedZone are passed through to the sub-build
	// unchanged.
	OmitFramePointer bool
	NoRedZone        bool
}

// RequiresPIC reports whether the runtime libraries must be compiled as
// position-independent code for this configuration.
func (d *Descriptor) RequiresPIC() bool {
	return d.PIC || d.PIE
}

// Optimize is an optimization mode for a build.
type Optimize int8

//go:generate go tool stringer -type=Optimize

const (
	// OptimizeDebug compiles with no optimization and full debug information.
	OptimizeDebug Optimize = iota
	// OptimizeRelease compiles for speed.
	OptimizeRelease
	// OptimizeSmall compiles for size.
	OptimizeSmall
)
