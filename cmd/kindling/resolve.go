// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"kindling.build/pkg/cxxlib"
)

type resolveOptions struct {
	targetOptions
	libraries []string
}

func newResolveCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "resolve [options]",
		Short:                 "print the compile plan for a target",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(resolveOptions)
	opts.addFlags(c.Flags())
	c.Flags().StringSliceVar(&opts.libraries, "library", []string{"c++", "c++abi"}, "libraries to resolve (c++ or c++abi)")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runResolve(g, opts)
	}
	return c
}

// libraryPlan is the machine-readable resolution result for one library.
type libraryPlan struct {
	Library string               `json:"library"`
	Units   []cxxlib.CompileUnit `json:"units"`
}

type compilePlan struct {
	Target     string        `json:"target"`
	ABIVersion int           `json:"abiVersion"`
	Libraries  []libraryPlan `json:"libraries"`
}

func runResolve(g *globalConfig, opts *resolveOptions) error {
	plan, err := buildCompilePlan(g, opts)
	if err != nil {
		return err
	}

	marshalOptions := []jsonv2.Options{}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		marshalOptions = append(marshalOptions, jsontext.WithIndent("  "))
	}
	data, err := jsonv2.Marshal(plan, marshalOptions...)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = os.Stdout.Write(data)
	return err
}

func buildCompilePlan(g *globalConfig, opts *resolveOptions) (*compilePlan, error) {
	desc, err := opts.descriptor()
	if err != nil {
		return nil, err
	}
	abi := cxxlib.ABIVersion(opts.abiVersion)
	if abi == 0 {
		abi = cxxlib.ABIVersion(g.ABIVersion)
	}
	if abi == 0 {
		abi = cxxlib.DefaultABIVersion
	}
	inc := cxxlib.DefaultIncludePaths(g.InstallRoot)

	plan := &compilePlan{
		Target:     desc.Triple.String(),
		ABIVersion: int(abi),
	}
	for _, name := range opts.libraries {
		var lib *cxxlib.Library
		switch name {
		case "c++":
			lib = cxxlib.LibCXX
		case "c++abi":
			lib = cxxlib.LibCXXABI
		default:
			return nil, fmt.Errorf("unknown library %q (want c++ or c++abi)", name)
		}
		units, err := lib.Resolve(desc, abi, inc)
		if err != nil {
			return nil, err
		}
		plan.Libraries = append(plan.Libraries, libraryPlan{Library: lib.Name, Units: units})
	}
	return plan, nil
}
