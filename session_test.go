// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package kindling

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
	"kindling.build/pkg/cxxlib"
	"kindling.build/pkg/internal/subbuild"
	"kindling.build/pkg/internal/target"
	"kindling.build/pkg/internal/testcontext"
)

// fakeEngine is a [subbuild.Engine] that records requests
// and produces artifacts without compiling anything.
type fakeEngine struct {
	supports bool
	err      error

	mu       sync.Mutex
	requests []*subbuild.Request
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{supports: true}
}

func (e *fakeEngine) SupportsTarget(t target.Triple) bool {
	return e.supports
}

func (e *fakeEngine) BuildStaticLibrary(ctx context.Context, req *subbuild.Request) (*subbuild.Artifact, error) {
	e.mu.Lock()
	e.requests = append(e.requests, req)
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return subbuild.NewArtifact(filepath.Join("/tmp/out", req.ID.String(), "lib"+req.RootName+".a"), nil), nil
}

func newTestSession(tb testing.TB, engine subbuild.Engine) *Session {
	tb.Helper()
	triple, err := target.Parse("x86_64-linux")
	if err != nil {
		tb.Fatal(err)
	}
	s, err := NewSession(&target.Descriptor{Triple: triple}, &BuildOptions{
		Engine:      engine,
		InstallRoot: "/opt/kindling",
	})
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		if err := s.Close(); err != nil {
			tb.Error("Close:", err)
		}
	})
	return s
}

func TestSessionBuild(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	engine := newFakeEngine()
	s := newTestSession(t, engine)

	artifact, err := s.BuildLibCXX(ctx)
	if err != nil {
		t.Fatal("BuildLibCXX:", err)
	}
	if artifact.Path == "" {
		t.Error("artifact has empty path")
	}
	got, ok := s.Artifact("c++")
	if !ok || got != artifact {
		t.Errorf("Artifact(\"c++\") = %v, %t; want %v, true", got, ok, artifact)
	}

	if len(engine.requests) != 1 {
		t.Fatalf("engine received %d requests; want 1", len(engine.requests))
	}
	req := engine.requests[0]
	if req.RootName != "c++" {
		t.Errorf("req.RootName = %q; want %q", req.RootName, "c++")
	}
	if req.Output != subbuild.OutputStaticLibrary {
		t.Errorf("req.Output = %d; want OutputStaticLibrary", req.Output)
	}
	if want := filepath.Join("/opt/kindling", "libcxx"); req.SourceDir != want {
		t.Errorf("req.SourceDir = %q; want %q", req.SourceDir, want)
	}
	if len(req.Units) == 0 {
		t.Error("request has no translation units")
	}
}

func TestSessionDoubleRegistration(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	s := newTestSession(t, newFakeEngine())
	if _, err := s.BuildLibCXX(ctx); err != nil {
		t.Fatal("first BuildLibCXX:", err)
	}
	if _, err := s.BuildLibCXX(ctx); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("second BuildLibCXX error = %v; want ErrAlreadyRegistered", err)
	}
	// The other library's slot is independent.
	if _, err := s.BuildLibCXXABI(ctx); err != nil {
		t.Error("BuildLibCXXABI:", err)
	}
}

func TestSessionBackendUnavailable(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	engine := newFakeEngine()
	engine.supports = false
	s := newTestSession(t, engine)

	if _, err := s.BuildLibCXX(ctx); !errors.Is(err, subbuild.ErrBackendUnavailable) {
		t.Errorf("BuildLibCXX error = %v; want ErrBackendUnavailable", err)
	}
	// The capability check precedes all resolution and dispatch work.
	if len(engine.requests) != 0 {
		t.Errorf("engine received %d requests; want 0", len(engine.requests))
	}
}

func TestSessionSubBuildErrorPropagates(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	buildErr := errors.New("compile src/regex.cpp: exit status 1")
	engine := newFakeEngine()
	engine.err = buildErr
	s := newTestSession(t, engine)

	if _, err := s.BuildLibCXXABI(ctx); !errors.Is(err, buildErr) {
		t.Errorf("BuildLibCXXABI error = %v; want %v", err, buildErr)
	}
	if _, ok := s.Artifact("c++abi"); ok {
		t.Error("failed build registered an artifact")
	}
}

func TestSessionConcurrentPipelines(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	engine := newFakeEngine()
	s := newTestSession(t, engine)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		_, err := s.BuildLibCXX(grpCtx)
		return err
	})
	grp.Go(func() error {
		_, err := s.BuildLibCXXABI(grpCtx)
		return err
	})
	if err := grp.Wait(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"c++", "c++abi"} {
		if _, ok := s.Artifact(name); !ok {
			t.Errorf("Artifact(%q) not registered", name)
		}
	}

	// Both pipelines must agree on the ABI macros for link compatibility.
	want := cxxlib.ABIMacros(cxxlib.DefaultABIVersion)
	for _, req := range engine.requests {
		for _, macro := range want {
			found := false
			for _, f := range req.Units[0].CacheFlags {
				if f == macro {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("lib%s unit flags missing %s", req.RootName, macro)
			}
		}
	}
}
