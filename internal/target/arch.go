// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package target

// Architecture is the name of an instruction set architecture of a [Triple].
// The empty string is treated the same as [Unknown].
type Architecture string

// IsUnknown reports whether arch is the empty string or [Unknown].
func (arch Architecture) IsUnknown() bool {
	return arch == "" || arch == Unknown
}

// String returns string(arch) or [Unknown] if arch is the empty string.
func (arch Architecture) String() string {
	if arch == "" {
		return Unknown
	}
	return string(arch)
}

func (arch Architecture) pointerBitWidth() (int, bool) {
	switch {
	case arch.isX8632() || arch.isARM32() || arch.isRISCV32() || arch.isWasm32():
		return 32, true
	case arch.isX8664() || arch.isARM64() || arch.isRISCV64():
		return 64, true
	default:
		return 0, false
	}
}

// Is32Bit reports whether pointers on the architecture are 32 bits wide.
func (arch Architecture) Is32Bit() bool {
	w, _ := arch.pointerBitWidth()
	return w == 32
}

// Is64Bit reports whether pointers on the architecture are 64 bits wide.
func (arch Architecture) Is64Bit() bool {
	w, _ := arch.pointerBitWidth()
	return w == 64
}

// IsX86 reports whether arch is in the x86 family of instruction set
// architectures, including both 32-bit and 64-bit x86.
func (arch Architecture) IsX86() bool {
	return arch.isX8632() || arch.isX8664()
}

// IsARM reports whether arch is in the ARM family of instruction set
// architectures, including both 32-bit and 64-bit ARM.
func (arch Architecture) IsARM() bool {
	return arch.isARM32() || arch.isARM64()
}

// IsWasm reports whether arch is a WebAssembly architecture.
func (arch Architecture) IsWasm() bool {
	return arch.isWasm32()
}

func (arch Architecture) isX8632() bool {
	switch arch {
	case "i386", "i486", "i586", "i686":
		return true
	default:
		return false
	}
}

func (arch Architecture) isX8664() bool {
	return arch == "x86_64" || arch == "amd64"
}

func (arch Architecture) isARM32() bool {
	switch arch {
	case "arm", "armeb", "thumb", "thumbeb":
		return true
	default:
		return false
	}
}

func (arch Architecture) isARM64() bool {
	return arch == "aarch64" || arch == "aarch64_be"
}

func (arch Architecture) isRISCV32() bool {
	return arch == "riscv32"
}

func (arch Architecture) isRISCV64() bool {
	return arch == "riscv64"
}

func (arch Architecture) isWasm32() bool {
	return arch == "wasm32"
}
