// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	kindling "kindling.build/pkg"
	"kindling.build/pkg/cxxlib"
	"kindling.build/pkg/internal/subbuild"
	"zombiezen.com/go/log"
)

type buildOptions struct {
	targetOptions
	jobs int
}

func newBuildCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "build [options]",
		Short:                 "build the runtime libraries for a target",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(buildOptions)
	opts.addFlags(c.Flags())
	c.Flags().IntVarP(&opts.jobs, "jobs", "j", g.Jobs, "maximum `number` of concurrent compile processes")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), g, opts)
	}
	return c
}

func runBuild(ctx context.Context, g *globalConfig, opts *buildOptions) error {
	desc, err := opts.descriptor()
	if err != nil {
		return err
	}

	engine, err := subbuild.NewLocalEngine(g.CacheDir, &subbuild.LocalEngineOptions{
		Compiler: g.Compiler,
		Archiver: g.Archiver,
		Jobs:     opts.jobs,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Errorf(ctx, "%v", err)
		}
	}()

	abi := cxxlib.ABIVersion(opts.abiVersion)
	if abi == 0 {
		abi = cxxlib.ABIVersion(g.ABIVersion)
	}
	session, err := kindling.NewSession(desc, &kindling.BuildOptions{
		Engine:      engine,
		InstallRoot: g.InstallRoot,
		ABIVersion:  abi,
		Jobs:        opts.jobs,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Errorf(ctx, "%v", err)
		}
	}()

	// The two pipelines share no mutable state and can run concurrently.
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		_, err := session.BuildLibCXX(grpCtx)
		return err
	})
	grp.Go(func() error {
		_, err := session.BuildLibCXXABI(grpCtx)
		return err
	})
	if err := grp.Wait(); err != nil {
		return err
	}

	for _, name := range []string{"c++", "c++abi"} {
		artifact, ok := session.Artifact(name)
		if !ok {
			return fmt.Errorf("lib%s artifact missing after build", name)
		}
		fmt.Println(artifact.Path)
	}
	return nil
}
