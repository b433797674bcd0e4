// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rustc

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Executor launches an external program and waits for it to exit.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) error
}

// ProcessExecutor runs programs as child processes. Output streams to
// Stdout and Stderr, which default to the current process's streams.
type ProcessExecutor struct {
	Dir    string    // Working directory (empty = current)
	Stdout io.Writer // Child stdout (nil = os.Stdout)
	Stderr io.Writer // Child stderr (nil = os.Stderr)
}

// Execute starts name with args and blocks until it exits. It returns an
// error if the program could not be started or did not exit successfully.
func (p *ProcessExecutor) Execute(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = p.Dir

	cmd.Stdout = p.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = p.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return cmd.Run()
}
