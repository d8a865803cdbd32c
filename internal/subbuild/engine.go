// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

// Package subbuild defines the delegation protocol between the runtime
// library pipelines and an independent compilation engine,
// and provides [LocalEngine], an engine backed by a local LLVM toolchain
// with a content-addressed object cache.
package subbuild

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"kindling.build/pkg/cxxlib"
	"kindling.build/pkg/internal/osutil"
	"kindling.build/pkg/internal/target"
)

// ErrBackendUnavailable is returned when no LLVM-capable code generation
// backend is available for the requested target.
// It is reported before any source resolution work is attempted.
var ErrBackendUnavailable = errors.New("unsupported build configuration: LLVM backend unavailable")

// OutputKind is the kind of artifact a sub-build produces.
type OutputKind int8

const (
	// OutputStaticLibrary produces a static archive with no link
	// dependencies beyond libc.
	OutputStaticLibrary OutputKind = iota
)

// A Request is a self-contained description of one sub-build.
// It is constructed once per pipeline invocation and consumed exactly once.
type Request struct {
	// ID identifies the sub-build in logs and cache bookkeeping.
	ID uuid.UUID

	// RootName is the artifact's root name ("c++" or "c++abi");
	// the produced archive is named "lib" + RootName + ".a".
	RootName string

	// Target is the build configuration, borrowed read-only from the caller.
	Target *target.Descriptor

	// Units is the full list of translation units to compile.
	Units []cxxlib.CompileUnit

	// Output is the kind of artifact to produce.
	Output OutputKind

	// SourceDir is the directory that the units' relative source paths
	// are resolved against. Like include paths, it depends only on the
	// installation location and never participates in cache keys.
	SourceDir string

	// Jobs bounds the number of concurrently compiled units.
	// If non-positive, the engine picks a default.
	Jobs int
}

// NewRequest returns a Request for building the given library's resolved
// units as a static archive, with a fresh ID.
func NewRequest(lib *cxxlib.Library, d *target.Descriptor, units []cxxlib.CompileUnit, sourceDir string, jobs int) *Request {
	return &Request{
		ID:        uuid.New(),
		RootName:  lib.Name,
		Target:    d,
		Units:     units,
		Output:    OutputStaticLibrary,
		SourceDir: sourceDir,
		Jobs:      jobs,
	}
}

// An Artifact is the result of a successful sub-build:
// the produced file plus an exclusivity lock over it.
// Ownership of the lock transfers to the caller,
// which must eventually call [Artifact.Release].
type Artifact struct {
	// Path is the location of the built static library.
	Path string

	lock *osutil.FileLock
}

// NewArtifact returns an Artifact for the given path holding the given lock.
// The lock may be nil, in which case Release is a no-op.
func NewArtifact(path string, lock *osutil.FileLock) *Artifact {
	return &Artifact{Path: path, lock: lock}
}

// Release releases the artifact's lock, if any.
func (a *Artifact) Release() error {
	if a.lock == nil {
		return nil
	}
	lock := a.lock
	a.lock = nil
	return lock.Release()
}

// An Engine performs sub-builds on behalf of the runtime library pipelines.
//
// Engines may be used concurrently: two independent requests can be in
// flight at once.
type Engine interface {
	// SupportsTarget reports whether the engine can generate native code
	// for the given triple.
	SupportsTarget(t target.Triple) bool

	// BuildStaticLibrary performs the sub-build synchronously,
	// blocking until the engine reports success or failure.
	// No partial results are observable: on error, no artifact exists.
	// Errors are returned as-is; a failed library build is never retried.
	BuildStaticLibrary(ctx context.Context, req *Request) (*Artifact, error)
}
