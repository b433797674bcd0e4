// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package freight

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/petar-djukic/freight/internal/bootstrap"
	"github.com/petar-djukic/freight/internal/build"
	"github.com/petar-djukic/freight/internal/rustc"
)

const (
	defaultWorkDir = "."
	defaultEdition = "2021"
)

// New validates the config and returns a ready-to-use Freight. It does not
// touch the filesystem; discovery happens on each Build.
func New(cfg Config) (Freight, error) {
	applyDefaults(&cfg)

	edition, err := validateConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	executor := &rustc.ProcessExecutor{Stdout: cfg.Stdout, Stderr: cfg.Stderr}
	orch := build.New(build.Deps{
		Executor:  executor,
		Logger:    cfg.Logger,
		WorkDir:   cfg.WorkDir,
		Toolchain: cfg.Toolchain,
		Edition:   edition,
	})

	return &freightAdapter{cfg: cfg, orch: orch, executor: executor}, nil
}

// freightAdapter adapts the internal orchestrator and sequencer to the
// public Freight interface.
type freightAdapter struct {
	cfg      Config
	orch     *build.Orchestrator
	executor rustc.Executor
}

func (a *freightAdapter) Build(ctx context.Context) (*Result, error) {
	br, err := a.orch.Build(ctx)
	if br == nil {
		return &Result{}, err
	}
	return &Result{
		BuildID:   br.BuildID,
		Root:      br.Root,
		CrateName: br.CrateName,
		Shape:     br.Shape.String(),
		Steps:     br.Steps,
		Revision:  br.Revision,
		OutDir:    br.OutDir,
		Success:   br.Success,
	}, err
}

func (a *freightAdapter) Bootstrap(ctx context.Context) (*Result, error) {
	layout, err := a.orch.Locate()
	if err != nil {
		return &Result{}, err
	}

	seq := bootstrap.New(bootstrap.Config{
		Layout:    layout,
		Crate:     a.cfg.BootstrapCrate,
		Executor:  a.executor,
		Logger:    a.cfg.Logger,
		Toolchain: a.cfg.Toolchain,
	})
	br, err := seq.Run(ctx)
	return &Result{
		Root:      layout.Root,
		CrateName: br.Binary,
		Steps:     br.Stages,
		OutDir:    br.Dir,
		Success:   br.Success,
	}, err
}

// validateConfig checks the configured values and returns the parsed edition.
func validateConfig(cfg Config) (rustc.Edition, error) {
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return 0, fmt.Errorf("WorkDir %q does not exist or is not a directory", cfg.WorkDir)
	}
	return rustc.ParseEdition(cfg.Edition)
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.WorkDir == "" {
		cfg.WorkDir = defaultWorkDir
	}
	if cfg.Toolchain == "" {
		cfg.Toolchain = rustc.DefaultToolchain
	}
	if cfg.Edition == "" {
		cfg.Edition = defaultEdition
	}
	if cfg.BootstrapCrate == "" {
		cfg.BootstrapCrate = bootstrap.DefaultCrate
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}
