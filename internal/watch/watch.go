// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch re-runs a build when Rust sources change.
//
// Events are coalesced over a debounce window and the callback runs on the
// event loop itself, so at most one build is in flight at a time.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Config holds the parameters for a Watcher.
type Config struct {
	// Dir is the directory tree to watch, typically <root>/src.
	Dir string

	// Debounce is the quiet period after the last event before OnChange
	// fires. Zero or negative values fall back to defaultDebounce.
	Debounce time.Duration

	// OnChange receives the sorted, deduplicated changed paths relative to
	// Dir. Its error is logged and watching continues.
	OnChange func(ctx context.Context, changed []string) error

	Logger *slog.Logger // nil uses slog.Default()
}

// Watcher monitors a source tree. Run must be called exactly once.
type Watcher struct {
	cfg     Config
	fsw     *fsnotify.Watcher
	logger  *slog.Logger
	dir     string
	started atomic.Bool
}

// New creates a Watcher and registers every directory under cfg.Dir.
func New(cfg Config) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{cfg: cfg, fsw: fsw, logger: logger, dir: dir}
	if err := w.addTree(dir); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled. It returns nil on cancellation and an
// error if the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}
	defer w.fsw.Close() //nolint:errcheck // nothing to do on close failure

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.addTree(evt.Name); err != nil {
						w.logger.Warn("watch: cannot watch new directory", "dir", evt.Name, "err", err)
					}
				}
			}
			if !relevant(evt.Name) {
				continue
			}

			rel, err := filepath.Rel(w.dir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			pending[rel] = struct{}{}
			timer.Reset(w.cfg.Debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := slices.Sorted(maps.Keys(pending))
			clear(pending)

			w.logger.Info("sources changed", "files", changed)
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("rebuild failed", "err", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch: event queue overflowed", "err", err)
				continue
			}
			return fmt.Errorf("watch: fsnotify error: %w", err)
		}
	}
}

// addTree registers dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch: walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether a change to path should trigger a rebuild.
func relevant(path string) bool {
	return filepath.Ext(path) == ".rs"
}
