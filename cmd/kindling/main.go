// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

// kindling builds the C++ runtime support libraries (libc++ and libc++abi)
// for a target platform and hands back cacheable static library artifacts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"kindling.build/pkg/internal/target"
	"zombiezen.com/go/bass/sigterm"
	"zombiezen.com/go/log"
)

func main() {
	rootCommand := &cobra.Command{
		Use:           "kindling",
		Short:         "build C++ runtime support libraries",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := defaultGlobalConfig()
	if err := g.mergeFiles(configFilePaths()); err != nil {
		initLogging(false)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
	g.mergeEnvironment()

	rootCommand.PersistentFlags().StringVar(&g.CacheDir, "cache", g.CacheDir, "`path` to object cache directory")
	rootCommand.PersistentFlags().StringVar(&g.InstallRoot, "install-root", g.InstallRoot, "`path` to runtime library sources and headers")
	showDebug := rootCommand.PersistentFlags().Bool("debug", g.Debug, "show debugging output")

	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(*showDebug)
		return nil
	}

	rootCommand.AddCommand(
		newResolveCommand(g),
		newBuildCommand(g),
		newVersionCommand(g),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		initLogging(*showDebug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

// targetOptions is the set of flags shared by commands
// that operate on a target configuration.
type targetOptions struct {
	triple         string
	singleThreaded bool
	pic            bool
	pie            bool
	lto            bool
	optimize       string
	strip          bool
	abiVersion     int
}

func (opts *targetOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&opts.triple, "target", target.Current().String(), "target `triple`")
	flags.BoolVar(&opts.singleThreaded, "single-threaded", false, "build without thread support")
	flags.BoolVar(&opts.pic, "pic", false, "build position-independent code")
	flags.BoolVar(&opts.pie, "pie", false, "build for a position-independent executable")
	flags.BoolVar(&opts.lto, "lto", false, "build with link-time optimization")
	flags.StringVar(&opts.optimize, "optimize", "release", "optimization `mode` (debug, release, or small)")
	flags.BoolVar(&opts.strip, "strip", false, "omit debug information")
	flags.IntVar(&opts.abiVersion, "abi-version", 0, "standard library ABI `version` (1 or 2)")
}

func (opts *targetOptions) descriptor() (*target.Descriptor, error) {
	triple, err := target.Parse(opts.triple)
	if err != nil {
		return nil, err
	}
	d := &target.Descriptor{
		Triple:         triple,
		SingleThreaded: opts.singleThreaded,
		PIC:            opts.pic,
		PIE:            opts.pie,
		LTO:            opts.lto,
		StripDebugInfo: opts.strip,
	}
	switch opts.optimize {
	case "debug":
		d.Optimize = target.OptimizeDebug
	case "release":
		d.Optimize = target.OptimizeRelease
	case "small":
		d.Optimize = target.OptimizeSmall
	default:
		return nil, fmt.Errorf("unknown optimization mode %q", opts.optimize)
	}
	return d, nil
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "kindling: ", log.StdFlags, nil),
		})
	})
}
