// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"kindling.build/pkg/internal/subbuild"
	"kindling.build/pkg/internal/target"
	"zombiezen.com/go/log"
)

// kindlingVersion is the version string filled in by the linker (e.g. "1.2.3").
var kindlingVersion string

func newVersionCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "version",
		Short:                 "show version information",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd.Context(), g)
	}
	return c
}

func runVersion(ctx context.Context, g *globalConfig) error {
	firstLine := "kindling"
	if kindlingVersion == "" {
		firstLine += " (version unknown)"
	} else {
		firstLine += " version " + kindlingVersion
	}
	fmt.Printf("%s\nHost:     %v\nCPUs:     %d\n", firstLine, target.Current(), runtime.NumCPU())

	compiler, archiver := g.Compiler, g.Archiver
	if compiler == "" || archiver == "" {
		detectedCompiler, detectedArchiver, err := subbuild.DetectToolchain()
		if err != nil {
			fmt.Println("Backend:  unavailable")
			return nil
		}
		if compiler == "" {
			compiler = detectedCompiler
		}
		if archiver == "" {
			archiver = detectedArchiver
		}
	}
	fmt.Printf("Compiler: %s\n", compiler)
	fmt.Printf("Archiver: %s\n", archiver)

	output, err := exec.CommandContext(ctx, compiler, "--version").Output()
	if err != nil {
		log.Errorf(ctx, "%s --version: %v", compiler, err)
		return nil
	}
	if line, _, ok := bytes.Cut(output, []byte("\n")); ok {
		fmt.Printf("Driver:   %s\n", line)
	}
	return nil
}
