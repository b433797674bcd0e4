// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bootstrap builds the stage-1 form of a self-hosting crate: its
// library under the stage1 cfg, then its binary linked against that library,
// both into an isolated output directory.
package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"github.com/petar-djukic/freight/internal/build"
	"github.com/petar-djukic/freight/internal/project"
	"github.com/petar-djukic/freight/internal/rustc"
	"github.com/petar-djukic/freight/pkg/types"
)

const (
	// DefaultCrate is the crate bootstrapped when none is configured.
	DefaultCrate = "freight"

	// StageCfg is the cfg flag both stages are compiled with.
	StageCfg = "stage1"

	binarySuffix = "_stage1"
)

// Config configures a Sequencer.
type Config struct {
	Layout    project.Layout // Root of the crate being bootstrapped
	Crate     string         // Library crate name (default DefaultCrate)
	Executor  rustc.Executor // nil uses a rustc.ProcessExecutor
	Logger    *slog.Logger   // nil uses slog.Default()
	Toolchain string         // Compiler executable (empty = rustc)
}

// Result describes a finished or aborted bootstrap.
type Result struct {
	Dir     string   // Bootstrap output directory
	Binary  string   // Crate name of the stage-2 binary
	Stages  []string // Entries compiled successfully, in order
	Success bool
}

// Sequencer runs the fixed two-stage bootstrap plan.
type Sequencer struct {
	cfg Config
}

// New returns a Sequencer, filling unset fields with defaults.
func New(cfg Config) *Sequencer {
	if cfg.Crate == "" {
		cfg.Crate = DefaultCrate
	}
	if cfg.Executor == nil {
		cfg.Executor = &rustc.ProcessExecutor{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Sequencer{cfg: cfg}
}

// Plan returns the two bootstrap stages in order.
func Plan(l project.Layout, crate string) []project.Step {
	return []project.Step{
		{
			Entry:     project.LibEntry,
			Source:    l.LibPath(),
			CrateName: crate,
			CrateType: rustc.CrateLib,
			Cfg:       []string{StageCfg},
		},
		{
			Entry:     project.BinEntry,
			Source:    l.BinPath(),
			CrateName: crate + binarySuffix,
			CrateType: rustc.CrateBin,
			Externs:   []string{crate},
			Cfg:       []string{StageCfg},
		},
	}
}

// Run builds stage 1 and then stage 2. Stage 2 is not attempted unless
// stage 1 succeeded.
func (s *Sequencer) Run(ctx context.Context) (*Result, error) {
	dir := s.cfg.Layout.BootstrapDir()
	result := &Result{Dir: dir, Binary: s.cfg.Crate + binarySuffix}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, types.NewError(types.KindIO, "creating "+dir, err)
	}

	stages, err := build.RunSteps(ctx, build.StepConfig{
		Executor:  s.cfg.Executor,
		Logger:    s.cfg.Logger.With("bootstrap", StageCfg),
		Toolchain: s.cfg.Toolchain,
		Edition:   rustc.Edition2021,
		Dir:       dir,
	}, Plan(s.cfg.Layout, s.cfg.Crate))
	result.Stages = stages
	if err != nil {
		return result, err
	}

	s.cfg.Logger.Info("Completed Stage1 Build", "binary", result.Binary, "dir", dir)
	result.Success = true
	return result, nil
}
