// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

// Package kindling provisions the C++ runtime support libraries for a target.
//
// A [Session] runs one pipeline per library: it resolves the library's source
// set for the target (see [kindling.build/pkg/cxxlib]), dispatches a sub-build
// to a compilation engine (see [kindling.build/pkg/internal/subbuild]), and
// registers the resulting static library artifact for a later link step.
package kindling

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"kindling.build/pkg/cxxlib"
	"kindling.build/pkg/internal/subbuild"
	"kindling.build/pkg/internal/target"
	"zombiezen.com/go/log"
)

// ErrAlreadyRegistered is returned when a runtime library artifact is built
// a second time within the same session.
// Correct callers build each library at most once per session.
var ErrAlreadyRegistered = errors.New("runtime library artifact already registered")

// BuildOptions is the set of parameters to [NewSession].
type BuildOptions struct {
	// Engine performs the sub-builds. Required.
	Engine subbuild.Engine

	// InstallRoot is the directory holding the runtime library sources and
	// headers (conventionally with libcxx/ and libcxxabi/ subdirectories).
	// It only affects where sources are read from and which include paths
	// are passed; it never affects cache keys.
	InstallRoot string

	// ABIVersion selects the standard library ABI version for both
	// libraries. The zero value selects [cxxlib.DefaultABIVersion].
	ABIVersion cxxlib.ABIVersion

	// Jobs bounds per-sub-build compile parallelism.
	// If non-positive, the engine picks a default.
	Jobs int
}

// A Session builds runtime libraries for a single target configuration and
// records the resulting artifacts. Sessions are safe for concurrent use:
// the two library pipelines share no mutable state except the artifact slots.
type Session struct {
	descriptor  target.Descriptor
	engine      subbuild.Engine
	installRoot string
	abiVersion  cxxlib.ABIVersion
	jobs        int

	mu        sync.Mutex
	artifacts map[string]*subbuild.Artifact
}

// NewSession returns a new [Session] for the given target configuration.
// The descriptor is copied; later mutation by the caller has no effect.
// Callers are responsible for calling [Session.Close] on the returned session.
func NewSession(d *target.Descriptor, opts *BuildOptions) (*Session, error) {
	if opts == nil || opts.Engine == nil {
		return nil, errors.New("new session: no build engine")
	}
	if opts.InstallRoot == "" {
		return nil, errors.New("new session: no install root")
	}
	abi := opts.ABIVersion
	if abi == 0 {
		abi = cxxlib.DefaultABIVersion
	}
	return &Session{
		descriptor:  *d,
		engine:      opts.Engine,
		installRoot: opts.InstallRoot,
		abiVersion:  abi,
		jobs:        opts.Jobs,
		artifacts:   make(map[string]*subbuild.Artifact),
	}, nil
}

// BuildLibCXX builds the C++ standard library for the session's target
// and registers the artifact under the "c++" slot.
func (s *Session) BuildLibCXX(ctx context.Context) (*subbuild.Artifact, error) {
	return s.buildRuntime(ctx, cxxlib.LibCXX, "libcxx")
}

// BuildLibCXXABI builds the ABI support library for the session's target
// and registers the artifact under the "c++abi" slot.
func (s *Session) BuildLibCXXABI(ctx context.Context) (*subbuild.Artifact, error) {
	return s.buildRuntime(ctx, cxxlib.LibCXXABI, "libcxxabi")
}

func (s *Session) buildRuntime(ctx context.Context, lib *cxxlib.Library, sourceSubdir string) (*subbuild.Artifact, error) {
	// The capability check comes before any resolution work:
	// a missing backend fails identically regardless of target details.
	if !s.engine.SupportsTarget(s.descriptor.Triple) {
		return nil, fmt.Errorf("build lib%s: %w", lib.Name, subbuild.ErrBackendUnavailable)
	}

	units, err := lib.Resolve(&s.descriptor, s.abiVersion, cxxlib.DefaultIncludePaths(s.installRoot))
	if err != nil {
		return nil, fmt.Errorf("build lib%s: %v", lib.Name, err)
	}

	req := subbuild.NewRequest(lib, &s.descriptor, units, filepath.Join(s.installRoot, sourceSubdir), s.jobs)
	log.Debugf(ctx, "Dispatching sub-build %s: lib%s.a for %v, %d translation units",
		req.ID, lib.Name, s.descriptor.Triple, len(units))
	artifact, err := s.engine.BuildStaticLibrary(ctx, req)
	if err != nil {
		// A failed library build is fatal to the overall build;
		// the engine's error passes through unchanged.
		return nil, err
	}

	if err := s.register(lib.Name, artifact); err != nil {
		artifact.Release()
		return nil, err
	}
	return artifact, nil
}

func (s *Session) register(name string, a *subbuild.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.artifacts[name]; exists {
		return fmt.Errorf("register lib%s artifact: %w", name, ErrAlreadyRegistered)
	}
	s.artifacts[name] = a
	return nil
}

// Artifact returns the registered artifact for the given library root name
// ("c++" or "c++abi"), for pickup by the link stage.
func (s *Session) Artifact(name string) (*subbuild.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.artifacts[name]
	return a, ok
}

// Close releases the locks of all registered artifacts.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for name, a := range s.artifacts {
		if err := a.Release(); err != nil {
			errs = append(errs, err)
		}
		delete(s.artifacts, name)
	}
	return errors.Join(errs...)
}
