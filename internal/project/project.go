// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project locates a crate's root directory, derives its layout, and
// classifies it by which entry points exist.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/petar-djukic/freight/internal/rustc"
)

// Marker is the version-control entry that identifies a project root.
const Marker = ".git"

// Conventional paths relative to the project root.
const (
	SourceDir    = "src"
	LibEntry     = "lib.rs"
	BinEntry     = "main.rs"
	TargetDir    = "target"
	DebugProfile = "debug"
	BootstrapDir = "bootstrap_stage1"
)

var (
	// ErrNoRoot is returned when no ancestor contains the marker.
	ErrNoRoot = errors.New("no root dir")

	// ErrUnnamedRoot is returned when the root has no usable base name.
	ErrUnnamedRoot = errors.New("freight run in directory without a name")
)

// FindRoot walks from start upward and returns the first directory that
// contains marker. start itself is checked first.
func FindRoot(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoRoot
		}
		dir = parent
	}
}

// CrateName derives a crate name from the root directory's base name.
// Hyphens become underscores because rustc rejects them in --crate-name.
func CrateName(root string) (string, error) {
	base := filepath.Base(filepath.Clean(root))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return "", ErrUnnamedRoot
	}
	return strings.ReplaceAll(base, "-", "_"), nil
}

// Layout holds the conventional paths of a project.
type Layout struct {
	Root      string
	CrateName string
}

// NewLayout returns the layout of the project rooted at root.
func NewLayout(root string) (Layout, error) {
	name, err := CrateName(root)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Root: root, CrateName: name}, nil
}

func (l Layout) LibPath() string { return filepath.Join(l.Root, SourceDir, LibEntry) }
func (l Layout) BinPath() string { return filepath.Join(l.Root, SourceDir, BinEntry) }

// ProfileDir is the shared output and search directory of a normal build.
func (l Layout) ProfileDir() string { return filepath.Join(l.Root, TargetDir, DebugProfile) }

// BootstrapDir is the isolated output and search directory of a bootstrap.
func (l Layout) BootstrapDir() string { return filepath.Join(l.Root, TargetDir, BootstrapDir) }

// Shape is a project's classification by entry point.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeLibraryOnly
	ShapeBinaryOnly
	ShapeLibraryThenBinary
)

func (s Shape) String() string {
	switch s {
	case ShapeLibraryOnly:
		return "library-only"
	case ShapeBinaryOnly:
		return "binary-only"
	case ShapeLibraryThenBinary:
		return "library-then-binary"
	default:
		return "invalid"
	}
}

// Classify reports the shape of the project described by l.
func Classify(l Layout) Shape {
	return shapeOf(exists(l.LibPath()), exists(l.BinPath()))
}

func shapeOf(hasLib, hasBin bool) Shape {
	switch {
	case hasLib && hasBin:
		return ShapeLibraryThenBinary
	case hasLib:
		return ShapeLibraryOnly
	case hasBin:
		return ShapeBinaryOnly
	default:
		return ShapeInvalid
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Step is one entry of a build plan. It describes an invocation without
// constructing it; descriptors are built only when the step runs.
type Step struct {
	Entry     string          // Entry file name, e.g. lib.rs
	Source    string          // Absolute source path
	CrateName string          // --crate-name value
	CrateType rustc.CrateType // Artifact kind
	Externs   []string        // Crates built by earlier steps
	Cfg       []string        // --cfg flags
}

// Plan returns the ordered steps for shape. An invalid shape has no steps.
func Plan(l Layout, shape Shape) []Step {
	lib := Step{Entry: LibEntry, Source: l.LibPath(), CrateName: l.CrateName, CrateType: rustc.CrateLib}
	bin := Step{Entry: BinEntry, Source: l.BinPath(), CrateName: l.CrateName, CrateType: rustc.CrateBin}

	switch shape {
	case ShapeLibraryThenBinary:
		bin.Externs = []string{l.CrateName}
		return []Step{lib, bin}
	case ShapeLibraryOnly:
		return []Step{lib}
	case ShapeBinaryOnly:
		return []Step{bin}
	default:
		return nil
	}
}
