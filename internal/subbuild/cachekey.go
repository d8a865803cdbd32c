// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package subbuild

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// cacheKeyVersion invalidates all cached objects when the key schema changes.
const cacheKeyVersion = "kindling object v1"

// CacheKey computes the content cache key for a single translation unit.
//
// The key covers everything that determines the compiled object bit-for-bit:
// the target triple, the unit's relative source identifier, the flags that
// affect code generation, and the source file's content hash.
// Include search paths are deliberately absent: they depend only on the
// installation root, so relocating an installation must not invalidate
// previously cached objects.
func CacheKey(llvmTriple, source string, flags []string, sourceHash [sha256.Size]byte) string {
	h := sha256.New()
	io.WriteString(h, cacheKeyVersion)
	h.Write([]byte{0})
	io.WriteString(h, llvmTriple)
	h.Write([]byte{0})
	io.WriteString(h, source)
	h.Write([]byte{0})
	for _, f := range flags {
		io.WriteString(h, f)
		h.Write([]byte{0})
	}
	h.Write(sourceHash[:])
	return hex.EncodeToString(h.Sum(nil))
}
