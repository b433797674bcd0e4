// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package freight

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/freight/internal/logging"
	"github.com/petar-djukic/freight/pkg/types"
)

// fakeToolchain writes a shell script that appends its arguments to a log
// file and exits with code. It returns the script path and the log path.
func fakeToolchain(t *testing.T, code int) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain is a shell script")
	}
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	script := filepath.Join(dir, "rustc")
	body := "#!/bin/sh\necho \"$@\" >> " + logPath + "\nexit " + strconv.Itoa(code) + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script, logPath
}

func setupProject(t *testing.T, entries ...string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "hello-world")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	for _, e := range entries {
		require.NoError(t, os.WriteFile(filepath.Join(root, "src", e), []byte("// rust\n"), 0o644))
	}
	return root
}

func readCalls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestNew_Defaults(t *testing.T) {
	f, err := New(Config{})
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestNew_InvalidEdition(t *testing.T) {
	_, err := New(Config{Edition: "2030"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_MissingWorkDir(t *testing.T) {
	_, err := New(Config{WorkDir: filepath.Join(t.TempDir(), "absent")})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuild_EndToEnd(t *testing.T) {
	toolchain, logPath := fakeToolchain(t, 0)
	root := setupProject(t, "lib.rs", "main.rs")

	f, err := New(Config{
		WorkDir:   root,
		Toolchain: toolchain,
		Logger:    logging.Discard(),
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	})
	require.NoError(t, err)

	result, err := f.Build(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "hello_world", result.CrateName)
	assert.Equal(t, "library-then-binary", result.Shape)
	assert.Equal(t, filepath.Join(root, "target", "debug"), result.OutDir)

	calls := readCalls(t, logPath)
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0], "--crate-type lib")
	assert.Contains(t, calls[0], "--edition 2021")
	assert.NotContains(t, calls[0], "--extern")
	assert.Contains(t, calls[1], "--crate-type bin")
	assert.Contains(t, calls[1], "--extern=hello_world")
}

func TestBuild_ToolchainFailure(t *testing.T) {
	toolchain, logPath := fakeToolchain(t, 1)
	root := setupProject(t, "lib.rs", "main.rs")

	f, err := New(Config{WorkDir: root, Toolchain: toolchain, Logger: logging.Discard()})
	require.NoError(t, err)

	result, err := f.Build(context.Background())
	require.Error(t, err)

	assert.Equal(t, types.KindToolchain, Kind(err))
	assert.False(t, result.Success)
	assert.Len(t, readCalls(t, logPath), 1)
}

func TestBuild_MissingToolchain(t *testing.T) {
	root := setupProject(t, "main.rs")

	f, err := New(Config{WorkDir: root, Toolchain: "freight-no-such-rustc", Logger: logging.Discard()})
	require.NoError(t, err)

	_, err = f.Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.KindToolchain, Kind(err))
}

func TestBuild_NothingToCompile(t *testing.T) {
	toolchain, logPath := fakeToolchain(t, 0)
	root := setupProject(t)

	f, err := New(Config{WorkDir: root, Toolchain: toolchain, Logger: logging.Discard()})
	require.NoError(t, err)

	_, err = f.Build(context.Background())
	assert.ErrorIs(t, err, ErrNothingToCompile)
	assert.Equal(t, types.KindDiscovery, Kind(err))
	assert.Empty(t, readCalls(t, logPath))
}

func TestBootstrap_EndToEnd(t *testing.T) {
	toolchain, logPath := fakeToolchain(t, 0)
	root := setupProject(t, "lib.rs", "main.rs")

	f, err := New(Config{WorkDir: root, Toolchain: toolchain, Logger: logging.Discard()})
	require.NoError(t, err)

	result, err := f.Bootstrap(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "freight_stage1", result.CrateName)
	assert.Equal(t, filepath.Join(root, "target", "bootstrap_stage1"), result.OutDir)

	calls := readCalls(t, logPath)
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0], "--crate-name freight ")
	assert.Contains(t, calls[0], "--cfg=stage1")
	assert.Contains(t, calls[1], "--crate-name freight_stage1")
	assert.Contains(t, calls[1], "--extern=freight --cfg=stage1")
}

func TestBootstrap_Stage1Failure(t *testing.T) {
	toolchain, logPath := fakeToolchain(t, 2)
	root := setupProject(t, "lib.rs", "main.rs")

	f, err := New(Config{WorkDir: root, Toolchain: toolchain, Logger: logging.Discard()})
	require.NoError(t, err)

	result, err := f.Bootstrap(context.Background())
	require.Error(t, err)
	assert.False(t, result.Success)
	assert.Len(t, readCalls(t, logPath), 1)
}
