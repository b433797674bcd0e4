// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
)

// stage1 is the FREIGHT_STAGE value selecting the reduced stage-1 binary.
const stage1 = "stage1"

const stage1Help = `Alternative for Cargo

Usage: freight [COMMAND] [OPTION]

Commands:
    help    Print out this message`

var errUnsupportedCommand = errors.New("unsupported command")

// runStage1 is the whole command surface of a stage-1 binary: it knows
// "help" and rejects everything else.
func runStage1(args []string, out io.Writer) error {
	if len(args) > 0 && args[0] == "help" {
		fmt.Fprintln(out, stage1Help)
		return nil
	}
	fmt.Fprintln(out, "Unsupported command")
	fmt.Fprintln(out, stage1Help)
	return errUnsupportedCommand
}
