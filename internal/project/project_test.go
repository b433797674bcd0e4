// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/freight/internal/rustc"
)

// testMarker avoids picking up a real .git above the temp directory.
const testMarker = ".freight-test-root"

func TestFindRoot_DistantAncestor(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, testMarker), 0o755))

	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, err := FindRoot(deep, testMarker)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_NearestWins(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "nested")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, testMarker), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(outer, testMarker), 0o755))

	got, err := FindRoot(filepath.Join(inner, "src"), testMarker)
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestFindRoot_StartIsRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, testMarker), 0o755))

	got, err := FindRoot(root, testMarker)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_NoMarker(t *testing.T) {
	deep := filepath.Join(t.TempDir(), "x", "y")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	_, err := FindRoot(deep, testMarker)
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestCrateName(t *testing.T) {
	tests := []struct {
		root    string
		want    string
		wantErr bool
	}{
		{"/home/me/freight", "freight", false},
		{"/home/me/my-crate", "my_crate", false},
		{"/home/me/freight/", "freight", false},
		{"/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			got, err := CrateName(tt.root)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnnamedRoot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout_Paths(t *testing.T) {
	l, err := NewLayout("/work/demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", l.CrateName)
	assert.Equal(t, filepath.Join("/work/demo", "src", "lib.rs"), l.LibPath())
	assert.Equal(t, filepath.Join("/work/demo", "src", "main.rs"), l.BinPath())
	assert.Equal(t, filepath.Join("/work/demo", "target", "debug"), l.ProfileDir())
	assert.Equal(t, filepath.Join("/work/demo", "target", "bootstrap_stage1"), l.BootstrapDir())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		lib    bool
		bin    bool
		want   Shape
		steps  []string
		binExt []string
	}{
		{"both", true, true, ShapeLibraryThenBinary, []string{LibEntry, BinEntry}, []string{"demo"}},
		{"library only", true, false, ShapeLibraryOnly, []string{LibEntry}, nil},
		{"binary only", false, true, ShapeBinaryOnly, []string{BinEntry}, nil},
		{"neither", false, false, ShapeInvalid, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "demo")
			require.NoError(t, os.MkdirAll(filepath.Join(root, SourceDir), 0o755))
			if tt.lib {
				writeFile(t, filepath.Join(root, SourceDir, LibEntry))
			}
			if tt.bin {
				writeFile(t, filepath.Join(root, SourceDir, BinEntry))
			}

			l, err := NewLayout(root)
			require.NoError(t, err)

			shape := Classify(l)
			assert.Equal(t, tt.want, shape)

			plan := Plan(l, shape)
			var entries []string
			for _, s := range plan {
				entries = append(entries, s.Entry)
				assert.Equal(t, "demo", s.CrateName)
				assert.Empty(t, s.Cfg)
				if s.CrateType == rustc.CrateBin {
					assert.Equal(t, tt.binExt, s.Externs)
				} else {
					assert.Equal(t, rustc.CrateLib, s.CrateType)
					assert.Empty(t, s.Externs)
				}
			}
			assert.Equal(t, tt.steps, entries)
		})
	}
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "library-then-binary", ShapeLibraryThenBinary.String())
	assert.Equal(t, "library-only", ShapeLibraryOnly.String())
	assert.Equal(t, "binary-only", ShapeBinaryOnly.String())
	assert.Equal(t, "invalid", ShapeInvalid.String())
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("// rust\n"), 0o644))
}
