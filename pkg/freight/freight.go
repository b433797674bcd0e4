// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package freight is the public interface of freight, a minimal build tool
// for single-crate Rust projects.
package freight

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/petar-djukic/freight/internal/build"
	"github.com/petar-djukic/freight/pkg/types"
)

// Error values callers can match with errors.Is.
var (
	ErrInvalidConfig    = errors.New("invalid config")
	ErrNoRoot           = build.ErrNoRoot
	ErrUnnamedRoot      = build.ErrUnnamedRoot
	ErrNothingToCompile = build.ErrNothingToCompile
)

// Config configures a Freight instance.
type Config struct {
	WorkDir        string       // Directory root discovery starts from (default ".")
	Toolchain      string       // Compiler executable (default "rustc")
	Edition        string       // Rust edition for project builds (default "2021")
	BootstrapCrate string       // Crate name used by Bootstrap (default "freight")
	Stdout         io.Writer    // Compiler stdout (default os.Stdout)
	Stderr         io.Writer    // Compiler stderr (default os.Stderr)
	Logger         *slog.Logger // Progress logger (default slog.Default())
}

// Result holds the outcome of a Build or Bootstrap.
type Result struct {
	BuildID   string   // Unique build identifier
	Root      string   // Project root
	CrateName string   // Crate that was built
	Shape     string   // library-then-binary, library-only, binary-only
	Steps     []string // Entry files compiled, in order
	Revision  string   // VCS revision of the root, if readable
	OutDir    string   // Directory artifacts were written to
	Success   bool     // True if every step completed
}

// Freight builds the project containing its working directory.
type Freight interface {
	// Build compiles the library and/or binary of the project, library
	// first, and stops at the first failure.
	Build(ctx context.Context) (*Result, error)

	// Bootstrap compiles the stage-1 library and binary into
	// target/bootstrap_stage1.
	Bootstrap(ctx context.Context) (*Result, error)
}

// Kind reports the failure class of an error returned by Freight.
func Kind(err error) types.ErrorKind {
	return types.KindOf(err)
}

// Build performs a build of the project containing the current directory
// using the default configuration.
func Build(ctx context.Context) error {
	f, err := New(Config{})
	if err != nil {
		return err
	}
	_, err = f.Build(ctx)
	return err
}
