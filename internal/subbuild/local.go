// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package subbuild

import (
	"context"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"kindling.build/pkg/cxxlib"
	"kindling.build/pkg/internal/osutil"
	"kindling.build/pkg/internal/target"
	"zombiezen.com/go/log"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
	"zombiezen.com/go/xcontext"
)

// LocalEngineOptions is the set of optional parameters to [NewLocalEngine].
type LocalEngineOptions struct {
	// Compiler is the path to a clang-compatible compiler driver.
	// If empty, [DetectToolchain] is used.
	Compiler string
	// Archiver is the path to an ar-compatible archiver.
	// If empty, [DetectToolchain] is used.
	Archiver string

	// Jobs bounds the number of concurrent compile processes
	// when the request does not specify its own bound.
	// If non-positive, the number of CPUs is used.
	Jobs int
}

// DetectToolchain locates an LLVM compiler driver and archiver on PATH.
func DetectToolchain() (compiler, archiver string, err error) {
	for _, name := range []string{"clang++", "clang"} {
		if p, err := exec.LookPath(name); err == nil {
			compiler = p
			break
		}
	}
	if compiler == "" {
		return "", "", fmt.Errorf("detect toolchain: %w", ErrBackendUnavailable)
	}
	for _, name := range []string{"llvm-ar", "ar"} {
		if p, err := exec.LookPath(name); err == nil {
			archiver = p
			break
		}
	}
	if archiver == "" {
		return "", "", fmt.Errorf("detect toolchain: %w", ErrBackendUnavailable)
	}
	return compiler, archiver, nil
}

// LocalEngine is an [Engine] that compiles with a local LLVM toolchain.
// Compiled objects are stored in a content-addressed cache under the
// engine's cache directory, indexed by a SQLite database, so repeated
// sub-builds for the same configuration only archive cached objects.
type LocalEngine struct {
	compiler string
	archiver string
	cacheDir string
	jobs     int

	db       *sqlitemigration.Pool
	building mutexMap[string]
}

// NewLocalEngine returns a new [LocalEngine] that stores its object cache
// and built artifacts under cacheDir.
// Callers are responsible for calling [LocalEngine.Close] on the returned engine.
func NewLocalEngine(cacheDir string, opts *LocalEngineOptions) (*LocalEngine, error) {
	if opts == nil {
		opts = new(LocalEngineOptions)
	}
	compiler, archiver := opts.Compiler, opts.Archiver
	if compiler == "" || archiver == "" {
		detectedCompiler, detectedArchiver, err := DetectToolchain()
		if err != nil {
			return nil, err
		}
		if compiler == "" {
			compiler = detectedCompiler
		}
		if archiver == "" {
			archiver = detectedArchiver
		}
	}
	for _, dir := range []string{cacheDir, filepath.Join(cacheDir, "objects"), filepath.Join(cacheDir, "out")} {
		if err := osutil.MkdirPerm(dir, 0o755); err != nil {
			return nil, fmt.Errorf("new local engine: %v", err)
		}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &LocalEngine{
		compiler: compiler,
		archiver: archiver,
		cacheDir: cacheDir,
		jobs:     jobs,
		db: sqlitemigration.NewPool(filepath.Join(cacheDir, "objects.db"), loadSchema(), sqlitemigration.Options{
			Flags: sqlite.OpenCreate | sqlite.OpenReadWrite,
		}),
	}, nil
}

// Close releases the engine's cache database.
func (e *LocalEngine) Close() error {
	return e.db.Close()
}

// SupportsTarget reports whether the engine's toolchain can generate native
// code for the triple. A clang driver covers every architecture this package
// knows how to name.
func (e *LocalEngine) SupportsTarget(t target.Triple) bool {
	return e.compiler != "" && !t.Arch.IsUnknown() && !t.OS.IsUnknown()
}

// BuildStaticLibrary implements [Engine].
func (e *LocalEngine) BuildStaticLibrary(ctx context.Context, req *Request) (*Artifact, error) {
	if req.Output != OutputStaticLibrary {
		return nil, fmt.Errorf("build lib%s: unsupported output kind %d", req.RootName, req.Output)
	}
	if len(req.Units) == 0 {
		return nil, fmt.Errorf("build lib%s: no translation units", req.RootName)
	}
	log.Infof(ctx, "Building lib%s.a for %v (%d translation units)", req.RootName, req.Target.Triple, len(req.Units))

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = e.jobs
	}
	modeFlags := driverFlags(req.Target)

	objects := make([]string, len(req.Units))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(jobs)
	for i, unit := range req.Units {
		grp.Go(func() error {
			obj, err := e.compileUnit(grpCtx, req, unit, modeFlags)
			if err != nil {
				return err
			}
			objects[i] = obj
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("build lib%s: %w", req.RootName, err)
	}

	outDir := filepath.Join(e.cacheDir, "out", req.ID.String())
	if err := osutil.MkdirPerm(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("build lib%s: %v", req.RootName, err)
	}
	out := filepath.Join(outDir, "lib"+req.RootName+".a")
	arArgs := append([]string{"rcs", out}, objects...)
	if output, err := exec.CommandContext(ctx, e.archiver, arArgs...).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("build lib%s: archive: %v\n%s", req.RootName, err, output)
	}

	lock, err := osutil.Lock(out)
	if err != nil {
		return nil, fmt.Errorf("build lib%s: %v", req.RootName, err)
	}
	log.Debugf(ctx, "Built %s", out)
	return NewArtifact(out, lock), nil
}

// compileUnit compiles one translation unit,
// returning the path of the cached object file.
func (e *LocalEngine) compileUnit(ctx context.Context, req *Request, unit cxxlib.CompileUnit, modeFlags []string) (string, error) {
	srcPath := filepath.Join(req.SourceDir, filepath.FromSlash(unit.Source))
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", unit.Source, err)
	}
	key := CacheKey(req.Target.Triple.LLVM(), unit.Source, slices.Concat(modeFlags, unit.CacheFlags), sha256.Sum256(src))

	// Deduplicate concurrent compiles of the same object.
	unlock, err := e.building.lock(ctx, key)
	if err != nil {
		return "", err
	}
	defer unlock()

	obj := filepath.Join(e.cacheDir, "objects", key+".o")
	if cached, err := e.lookupObject(ctx, key); err != nil {
		return "", fmt.Errorf("compile %s: %v", unit.Source, err)
	} else if cached {
		if _, err := os.Lstat(obj); err == nil {
			log.Debugf(ctx, "Cache hit for %s (%s)", unit.Source, key)
			return obj, nil
		}
		// Index entry without a file: fall through and rebuild.
	}

	tmp := obj + ".tmp." + req.ID.String()
	args := []string{"-target", req.Target.Triple.LLVM()}
	args = append(args, modeFlags...)
	args = append(args, unit.CacheFlags...)
	args = append(args, unit.IncludeFlags...)
	args = append(args, "-c", srcPath, "-o", tmp)
	log.Debugf(ctx, "Compiling %s (%s)", unit.Source, key)
	if output, err := exec.CommandContext(ctx, e.compiler, args...).CombinedOutput(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("compile %s: %v\n%s", unit.Source, err, output)
	}
	if err := os.Rename(tmp, obj); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("compile %s: %v", unit.Source, err)
	}

	if err := e.recordObject(ctx, key, obj); err != nil {
		// The object is usable even if the index write failed.
		log.Warnf(ctx, "Failed to index object for %s: %v", unit.Source, err)
	}
	return obj, nil
}

func (e *LocalEngine) lookupObject(ctx context.Context, key string) (bool, error) {
	conn, err := e.db.Get(ctx)
	if err != nil {
		return false, err
	}
	defer e.db.Put(conn)

	found := false
	err = sqlitex.Execute(conn, `SELECT "path" FROM "object" WHERE "key" = ?;`, &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	return found, err
}

// recordObject writes a completed compile to the index.
// It uses a detached context so that a finished object is recorded
// even if the caller is going away.
func (e *LocalEngine) recordObject(ctx context.Context, key, path string) error {
	conn, err := e.db.Get(xcontext.IgnoreDeadline(ctx))
	if err != nil {
		return err
	}
	defer e.db.Put(conn)

	return sqlitex.Execute(conn, `INSERT OR REPLACE INTO "object" ("key", "path", "built_at") VALUES (?, ?, ?);`, &sqlitex.ExecOptions{
		Args: []any{key, path, time.Now().UTC().Format(time.RFC3339)},
	})
}

// driverFlags maps the descriptor's optimization, debug info, and code
// generation policies to driver arguments.
// Runtime support libraries are always compiled without sanitizer
// instrumentation and without stack protection.
func driverFlags(d *target.Descriptor) []string {
	flags := []string{"-fno-stack-protector"}
	switch d.Optimize {
	case target.OptimizeRelease:
		flags = append(flags, "-O2")
	case target.OptimizeSmall:
		flags = append(flags, "-Os")
	default:
		flags = append(flags, "-O0")
	}
	if !d.StripDebugInfo {
		flags = append(flags, "-g")
	}
	if d.OmitFramePointer {
		flags = append(flags, "-fomit-frame-pointer")
	} else {
		flags = append(flags, "-fno-omit-frame-pointer")
	}
	if d.NoRedZone && d.Triple.Arch.IsX86() {
		flags = append(flags, "-mno-red-zone")
	}
	if d.LTO {
		flags = append(flags, "-flto")
	}
	return flags
}

//go:embed sql/schema/*.sql
var rawSQLFiles embed.FS

var schemaState struct {
	init   sync.Once
	schema sqlitemigration.Schema
	err    error
}

func loadSchema() sqlitemigration.Schema {
	schemaState.init.Do(func() {
		for i := 1; ; i++ {
			migration, err := fs.ReadFile(rawSQLFiles, fmt.Sprintf("sql/schema/%02d.sql", i))
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			if err != nil {
				schemaState.err = err
				return
			}
			schemaState.schema.Migrations = append(schemaState.schema.Migrations, string(migration))
		}
	})

	if schemaState.err != nil {
		panic(schemaState.err)
	}
	return schemaState.schema
}
