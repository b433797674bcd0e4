// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rustc describes and runs single rustc invocations. A Builder
// accumulates settings and produces an immutable Invocation, which renders a
// deterministic argument list and runs it through an Executor.
package rustc

import (
	"context"
	"fmt"

	"github.com/petar-djukic/freight/pkg/types"
)

// DefaultToolchain is the executable launched when no toolchain is set.
const DefaultToolchain = "rustc"

// Edition is a Rust language edition. Values are ordered oldest first.
type Edition int

const (
	Edition2015 Edition = iota
	Edition2018
	Edition2021
)

func (e Edition) String() string {
	switch e {
	case Edition2015:
		return "2015"
	case Edition2018:
		return "2018"
	case Edition2021:
		return "2021"
	default:
		return "unknown"
	}
}

func (e Edition) valid() bool {
	return e >= Edition2015 && e <= Edition2021
}

// ParseEdition converts an edition year to an Edition. Unknown years are
// rejected.
func ParseEdition(s string) (Edition, error) {
	switch s {
	case "2015":
		return Edition2015, nil
	case "2018":
		return Edition2018, nil
	case "2021":
		return Edition2021, nil
	default:
		return 0, fmt.Errorf("unsupported edition %q", s)
	}
}

// CrateType is the kind of artifact rustc emits. It selects the
// --crate-type value, not the file extension.
type CrateType int

const (
	CrateBin CrateType = iota
	CrateLib
	CrateRLib
	CrateDyLib
	CrateCDyLib
	CrateStaticLib
	CrateProcMacro
)

func (t CrateType) String() string {
	switch t {
	case CrateBin:
		return "bin"
	case CrateLib:
		return "lib"
	case CrateRLib:
		return "rlib"
	case CrateDyLib:
		return "dylib"
	case CrateCDyLib:
		return "cdylib"
	case CrateStaticLib:
		return "staticlib"
	case CrateProcMacro:
		return "proc-macro"
	default:
		return "unknown"
	}
}

func (t CrateType) valid() bool {
	return t >= CrateBin && t <= CrateProcMacro
}

// Builder accumulates the settings of one invocation. The zero value is
// ready to use. Setters only store their argument.
type Builder struct {
	edition   *Edition
	crateType *CrateType
	crateName *string
	outDir    *string
	searchDir *string
	toolchain string
	cfg       []string
	externs   []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Edition(e Edition) *Builder {
	b.edition = &e
	return b
}

func (b *Builder) CrateType(t CrateType) *Builder {
	b.crateType = &t
	return b
}

func (b *Builder) CrateName(name string) *Builder {
	b.crateName = &name
	return b
}

func (b *Builder) OutDir(dir string) *Builder {
	b.outDir = &dir
	return b
}

// SearchDir sets the -L directory rustc resolves extern crates from.
func (b *Builder) SearchDir(dir string) *Builder {
	b.searchDir = &dir
	return b
}

// Cfg appends one --cfg flag. Duplicates are kept.
func (b *Builder) Cfg(flag string) *Builder {
	b.cfg = append(b.cfg, flag)
	return b
}

// Extern appends one --extern link.
func (b *Builder) Extern(name string) *Builder {
	b.externs = append(b.externs, name)
	return b
}

// Toolchain overrides the executable name (default rustc).
func (b *Builder) Toolchain(name string) *Builder {
	b.toolchain = name
	return b
}

// Build finalizes the Invocation. Edition defaults to 2015 and crate type to
// bin. Build panics with a KindPrecondition *types.BuildError when the crate
// name, output directory, or search directory was never set; there is no
// safe default for any of them.
func (b *Builder) Build() *Invocation {
	inv := &Invocation{
		edition:   Edition2015,
		crateType: CrateBin,
		toolchain: DefaultToolchain,
		cfg:       append([]string(nil), b.cfg...),
		externs:   append([]string(nil), b.externs...),
	}

	if b.edition != nil {
		inv.edition = *b.edition
	}
	if b.crateType != nil {
		inv.crateType = *b.crateType
	}
	if b.toolchain != "" {
		inv.toolchain = b.toolchain
	}

	switch {
	case b.crateName == nil || *b.crateName == "":
		panic(types.NewError(types.KindPrecondition, "rustc: crate name not given", nil))
	case b.outDir == nil:
		panic(types.NewError(types.KindPrecondition, "rustc: out dir not given", nil))
	case b.searchDir == nil:
		panic(types.NewError(types.KindPrecondition, "rustc: search dir not given", nil))
	case !inv.edition.valid():
		panic(types.NewError(types.KindPrecondition, fmt.Sprintf("rustc: unknown edition %d", int(inv.edition)), nil))
	case !inv.crateType.valid():
		panic(types.NewError(types.KindPrecondition, fmt.Sprintf("rustc: unknown crate type %d", int(inv.crateType)), nil))
	}

	inv.crateName = *b.crateName
	inv.outDir = *b.outDir
	inv.searchDir = *b.searchDir
	return inv
}

// Invocation is a finalized, immutable rustc invocation.
type Invocation struct {
	edition   Edition
	crateType CrateType
	crateName string
	outDir    string
	searchDir string
	toolchain string
	cfg       []string
	externs   []string
}

func (inv *Invocation) Edition() Edition     { return inv.edition }
func (inv *Invocation) CrateType() CrateType { return inv.crateType }
func (inv *Invocation) CrateName() string    { return inv.crateName }
func (inv *Invocation) OutDir() string       { return inv.outDir }
func (inv *Invocation) SearchDir() string    { return inv.searchDir }
func (inv *Invocation) Toolchain() string    { return inv.toolchain }

// Cfg returns a copy of the cfg flags in insertion order.
func (inv *Invocation) Cfg() []string { return append([]string(nil), inv.cfg...) }

// Externs returns a copy of the extern links in insertion order.
func (inv *Invocation) Externs() []string { return append([]string(nil), inv.externs...) }

// Args renders the toolchain argument list for compiling source. The order
// is fixed: source, edition, crate type, crate name, out dir, search dir,
// externs, then cfg flags.
func (inv *Invocation) Args(source string) []string {
	args := make([]string, 0, 11+len(inv.externs)+len(inv.cfg))
	args = append(args,
		source,
		"--edition", inv.edition.String(),
		"--crate-type", inv.crateType.String(),
		"--crate-name", inv.crateName,
		"--out-dir", inv.outDir,
		"-L", inv.searchDir,
	)
	for _, ex := range inv.externs {
		args = append(args, "--extern="+ex)
	}
	for _, c := range inv.cfg {
		args = append(args, "--cfg="+c)
	}
	return args
}

// Run compiles source and blocks until the toolchain exits. Launch failures
// and unsuccessful exits are both reported as a KindToolchain error.
func (inv *Invocation) Run(ctx context.Context, x Executor, source string) error {
	if err := x.Execute(ctx, inv.toolchain, inv.Args(source)...); err != nil {
		return types.NewError(types.KindToolchain,
			fmt.Sprintf("%s %s (crate %s)", inv.toolchain, source, inv.crateName), err)
	}
	return nil
}
