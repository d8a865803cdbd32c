// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"kindling.build/pkg/cxxlib"
)

func TestBuildCompilePlan(t *testing.T) {
	g := &globalConfig{InstallRoot: "/opt/kindling"}
	opts := &resolveOptions{libraries: []string{"c++", "c++abi"}}
	opts.triple = "x86_64-linux"
	opts.optimize = "release"

	plan, err := buildCompilePlan(g, opts)
	if err != nil {
		t.Fatal("buildCompilePlan:", err)
	}
	if got, want := plan.Target, "x86_64-linux"; got != want {
		t.Errorf("plan.Target = %q; want %q", got, want)
	}
	if got, want := plan.ABIVersion, int(cxxlib.DefaultABIVersion); got != want {
		t.Errorf("plan.ABIVersion = %d; want %d", got, want)
	}
	if got, want := len(plan.Libraries), 2; got != want {
		t.Fatalf("len(plan.Libraries) = %d; want %d", got, want)
	}
	for i, want := range []string{"c++", "c++abi"} {
		if got := plan.Libraries[i].Library; got != want {
			t.Errorf("plan.Libraries[%d].Library = %q; want %q", i, got, want)
		}
		if len(plan.Libraries[i].Units) == 0 {
			t.Errorf("lib%s plan has no units", want)
		}
	}
}

func TestBuildCompilePlanUnknownLibrary(t *testing.T) {
	g := &globalConfig{InstallRoot: "/opt/kindling"}
	opts := &resolveOptions{libraries: []string{"c++experimental"}}
	opts.triple = "x86_64-linux"
	opts.optimize = "release"

	if _, err := buildCompilePlan(g, opts); err == nil {
		t.Error("buildCompilePlan with unknown library did not return an error")
	}
}
