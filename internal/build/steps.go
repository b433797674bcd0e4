// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package build

import (
	"context"
	"log/slog"

	"github.com/petar-djukic/freight/internal/project"
	"github.com/petar-djukic/freight/internal/rustc"
)

// StepConfig holds the settings shared by every step of one plan.
type StepConfig struct {
	Executor  rustc.Executor
	Logger    *slog.Logger
	Toolchain string        // Empty selects rustc.DefaultToolchain
	Edition   rustc.Edition // Edition for every step
	Dir       string        // Output and search directory
}

// RunSteps runs steps in order, one child process at a time. Each step's
// invocation is constructed only after the previous step has finished, and
// the first failure stops the sequence. It returns the entries of the steps
// that completed.
func RunSteps(ctx context.Context, cfg StepConfig, steps []project.Step) ([]string, error) {
	var done []string
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		cfg.Logger.Info("Compiling "+step.Entry, "crate", step.CrateName, "type", step.CrateType.String())

		inv := invocation(cfg, step)
		if err := inv.Run(ctx, cfg.Executor, step.Source); err != nil {
			cfg.Logger.Error("Compiling "+step.Entry+" -- FAILED", "crate", step.CrateName, "err", err)
			return done, err
		}

		cfg.Logger.Info("Compiling "+step.Entry+" -- DONE", "crate", step.CrateName)
		done = append(done, step.Entry)
	}
	return done, nil
}

func invocation(cfg StepConfig, step project.Step) *rustc.Invocation {
	b := rustc.NewBuilder().
		Edition(cfg.Edition).
		CrateType(step.CrateType).
		CrateName(step.CrateName).
		OutDir(cfg.Dir).
		SearchDir(cfg.Dir).
		Toolchain(cfg.Toolchain)
	for _, ex := range step.Externs {
		b.Extern(ex)
	}
	for _, c := range step.Cfg {
		b.Cfg(c)
	}
	return b.Build()
}
