// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strconv"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/tailscale/hujson"
)

// globalConfig is the tool-wide configuration,
// assembled from config files, environment variables, and flags,
// in that order of increasing precedence.
type globalConfig struct {
	Debug       bool   `json:"debug"`
	CacheDir    string `json:"cacheDir"`
	InstallRoot string `json:"installRoot"`
	Compiler    string `json:"compiler"`
	Archiver    string `json:"archiver"`
	Jobs        int    `json:"jobs"`
	ABIVersion  int    `json:"abiVersion"`
}

func defaultGlobalConfig() *globalConfig {
	g := &globalConfig{
		InstallRoot: defaultInstallRoot(),
	}
	if cd := cacheDir(); cd != "" {
		g.CacheDir = filepath.Join(cd, "kindling")
	}
	return g
}

func (g *globalConfig) mergeEnvironment() {
	if dir := os.Getenv("KINDLING_CACHE_DIR"); dir != "" {
		g.CacheDir = dir
	}
	if root := os.Getenv("KINDLING_INSTALL_ROOT"); root != "" {
		g.InstallRoot = root
	}
	if compiler := os.Getenv("KINDLING_COMPILER"); compiler != "" {
		g.Compiler = compiler
	}
	if archiver := os.Getenv("KINDLING_ARCHIVER"); archiver != "" {
		g.Archiver = archiver
	}
	if jobs := os.Getenv("KINDLING_JOBS"); jobs != "" {
		if n, err := strconv.Atoi(jobs); err == nil {
			g.Jobs = n
		}
	}
}

// mergeFiles reads each present config file in order,
// later files overriding earlier ones.
// Files are HuJSON: JSON with comments and trailing commas.
func (g *globalConfig) mergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, g, jsonv2.RejectUnknownMembers(false)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}

	return nil
}

// configFileName is the base name of kindling's configuration file.
const configFileName = "kindling.jsonc"
