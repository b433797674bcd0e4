// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package build implements the project build orchestrator: it locates the
// project root, classifies the crate, and runs the rustc invocations the
// crate's shape calls for, library before binary.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	gitpkg "github.com/petar-djukic/freight/internal/git"
	"github.com/petar-djukic/freight/internal/project"
	"github.com/petar-djukic/freight/internal/rustc"
	"github.com/petar-djukic/freight/pkg/types"
)

var (
	ErrNoRoot      = project.ErrNoRoot
	ErrUnnamedRoot = project.ErrUnnamedRoot

	// ErrNothingToCompile is returned when neither src/lib.rs nor
	// src/main.rs exists.
	ErrNothingToCompile = errors.New("there is nothing to compile")
)

// Result describes a finished or aborted build.
type Result struct {
	BuildID   string        // Unique per build, attached to every log record
	Root      string        // Discovered project root
	CrateName string        // Crate name derived from the root
	Shape     project.Shape // Project classification
	Steps     []string      // Entries compiled successfully, in order
	OutDir    string        // Shared output and search directory
	Revision  string        // VCS revision, empty if unreadable
	Success   bool          // True if every step completed
}

// Deps holds injected dependencies for the orchestrator.
type Deps struct {
	Executor  rustc.Executor // nil uses a rustc.ProcessExecutor
	Logger    *slog.Logger   // nil uses slog.Default()
	WorkDir   string         // Directory discovery starts from (empty = cwd)
	Marker    string         // Root marker (empty = project.Marker)
	Toolchain string         // Compiler executable (empty = rustc)
	Edition   rustc.Edition

	// Describe reads the VCS revision of the root. nil uses git.Describe.
	Describe func(root string) (gitpkg.Revision, error)
}

// Orchestrator runs project builds.
type Orchestrator struct {
	deps Deps
}

// New creates an Orchestrator, filling unset dependencies with defaults.
func New(deps Deps) *Orchestrator {
	if deps.Executor == nil {
		deps.Executor = &rustc.ProcessExecutor{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Marker == "" {
		deps.Marker = project.Marker
	}
	if deps.Describe == nil {
		deps.Describe = gitpkg.Describe
	}
	return &Orchestrator{deps: deps}
}

// Locate finds the project root and derives its layout.
func (o *Orchestrator) Locate() (project.Layout, error) {
	start := o.deps.WorkDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return project.Layout{}, types.NewError(types.KindIO, "reading working directory", err)
		}
		start = wd
	}

	root, err := project.FindRoot(start, o.deps.Marker)
	if err != nil {
		if errors.Is(err, project.ErrNoRoot) {
			return project.Layout{}, types.NewError(types.KindDiscovery,
				fmt.Sprintf("no %s found above %s", o.deps.Marker, start), err)
		}
		return project.Layout{}, types.NewError(types.KindIO, "locating project root", err)
	}

	layout, err := project.NewLayout(root)
	if err != nil {
		return project.Layout{}, types.NewError(types.KindDiscovery, root, err)
	}
	return layout, nil
}

// Build performs a full build of the project containing the working
// directory. The first failing step aborts the build; artifacts already
// written are left in place.
func (o *Orchestrator) Build(ctx context.Context) (*Result, error) {
	result := &Result{BuildID: uuid.NewString()}
	logger := o.deps.Logger.With("build_id", result.BuildID)

	layout, err := o.Locate()
	if err != nil {
		return result, err
	}
	result.Root = layout.Root
	result.CrateName = layout.CrateName

	result.Shape = project.Classify(layout)
	if result.Shape == project.ShapeInvalid {
		return result, types.NewError(types.KindDiscovery, layout.Root, ErrNothingToCompile)
	}

	if rev, err := o.deps.Describe(layout.Root); err != nil {
		logger.Debug("revision unavailable", "root", layout.Root, "err", err)
	} else {
		result.Revision = rev.String()
	}

	logger.Info("building",
		"crate", layout.CrateName,
		"shape", result.Shape.String(),
		"root", layout.Root,
		"revision", result.Revision)

	dir := layout.ProfileDir()
	result.OutDir = dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, types.NewError(types.KindIO, "creating "+dir, err)
	}

	steps, err := RunSteps(ctx, StepConfig{
		Executor:  o.deps.Executor,
		Logger:    logger,
		Toolchain: o.deps.Toolchain,
		Edition:   o.deps.Edition,
		Dir:       dir,
	}, project.Plan(layout, result.Shape))
	result.Steps = steps
	if err != nil {
		return result, err
	}

	result.Success = true
	return result, nil
}
