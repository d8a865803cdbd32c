// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package subbuild

import (
	"crypto/sha256"
	"testing"

	"kindling.build/pkg/cxxlib"
	"kindling.build/pkg/internal/target"
)

func TestCacheKey(t *testing.T) {
	srcHash := sha256.Sum256([]byte("int main() {}\n"))
	flags := []string{"-DNDEBUG", "-D_LIBCPP_BUILDING_LIBRARY", "-std=c++23"}

	key1 := CacheKey("x86_64-unknown-linux-gnu", "src/string.cpp", flags, srcHash)
	key2 := CacheKey("x86_64-unknown-linux-gnu", "src/string.cpp", flags, srcHash)
	if key1 != key2 {
		t.Errorf("identical inputs produced different keys: %s != %s", key1, key2)
	}

	if key := CacheKey("aarch64-unknown-linux-gnu", "src/string.cpp", flags, srcHash); key == key1 {
		t.Error("changing the triple did not change the key")
	}
	if key := CacheKey("x86_64-unknown-linux-gnu", "src/vector.cpp", flags, srcHash); key == key1 {
		t.Error("changing the source identifier did not change the key")
	}
	if key := CacheKey("x86_64-unknown-linux-gnu", "src/string.cpp", []string{"-DNDEBUG"}, srcHash); key == key1 {
		t.Error("changing the flags did not change the key")
	}
	otherHash := sha256.Sum256([]byte("int main() { return 1; }\n"))
	if key := CacheKey("x86_64-unknown-linux-gnu", "src/string.cpp", flags, otherHash); key == key1 {
		t.Error("changing the source content did not change the key")
	}
}

// TestCacheKeyIgnoresInstallRoot verifies mechanically that relocating the
// installation cannot perturb object cache keys: the key is computed from a
// unit's cache-relevant flags only, so two resolutions against different
// install roots must key identically.
func TestCacheKeyIgnoresInstallRoot(t *testing.T) {
	triple, err := target.Parse("x86_64-linux")
	if err != nil {
		t.Fatal(err)
	}
	d := &target.Descriptor{Triple: triple}
	srcHash := sha256.Sum256([]byte("// placeholder\n"))

	keysFor := func(installRoot string) map[string]string {
		t.Helper()
		units, err := cxxlib.LibCXX.Resolve(d, cxxlib.DefaultABIVersion, cxxlib.DefaultIncludePaths(installRoot))
		if err != nil {
			t.Fatal(err)
		}
		keys := make(map[string]string, len(units))
		for _, u := range units {
			keys[u.Source] = CacheKey(triple.LLVM(), u.Source, u.CacheFlags, srcHash)
		}
		return keys
	}

	keys1 := keysFor("/opt/kindling")
	keys2 := keysFor("/home/build/.local/kindling")
	if len(keys1) != len(keys2) {
		t.Fatalf("resolved %d then %d units", len(keys1), len(keys2))
	}
	for src, key := range keys1 {
		if keys2[src] != key {
			t.Errorf("%s: cache key differs across install roots", src)
		}
	}
}

func TestDriverFlags(t *testing.T) {
	triple, err := target.Parse("x86_64-linux")
	if err != nil {
		t.Fatal(err)
	}
	flags := driverFlags(&target.Descriptor{
		Triple:         triple,
		Optimize:       target.OptimizeRelease,
		StripDebugInfo: true,
		NoRedZone:      true,
	})
	want := []string{"-fno-stack-protector", "-O2", "-fno-omit-frame-pointer", "-mno-red-zone"}
	if len(flags) != len(want) {
		t.Fatalf("driverFlags = %q; want %q", flags, want)
	}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("driverFlags[%d] = %q; want %q", i, flags[i], want[i])
		}
	}
}
