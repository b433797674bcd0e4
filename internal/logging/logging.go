// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logging builds the slog.Logger used across freight. Records are
// rendered by charmbracelet/log for readable terminal output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const prefix = "freight"

// Config configures the logger.
type Config struct {
	Level      string    // debug, info, warn, error (default info)
	Output     io.Writer // Destination (default os.Stderr)
	Timestamps bool      // Prefix records with the time
}

// ParseLevel converts a level name to a charmbracelet/log level.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a slog.Logger backed by a charmbracelet/log handler.
func New(cfg Config) (*slog.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	handler := log.NewWithOptions(out, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: cfg.Timestamps,
	})
	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
