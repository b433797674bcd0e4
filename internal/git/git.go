// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git reads the revision of the repository a build runs in, so build
// reports and logs can name what was compiled.
package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

const shortHashLength = 7

// ErrNoGit is returned when the directory is not a readable git repository.
var ErrNoGit = errors.New("not a git repository")

// ErrNoCommits is returned when the repository has no HEAD commit yet.
var ErrNoCommits = errors.New("repository has no commits")

// Revision identifies the source state of a build.
type Revision struct {
	Hash  string // Full HEAD commit hash
	Dirty bool   // Worktree has uncommitted changes
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Hash) <= shortHashLength {
		return r.Hash
	}
	return r.Hash[:shortHashLength]
}

func (r Revision) String() string {
	if r.Dirty {
		return r.Short() + "-dirty"
	}
	return r.Short()
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
}

// Open opens the repository whose worktree is root.
func Open(root string) (*Repo, error) {
	r, err := gogit.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r}, nil
}

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged).
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return !status.IsClean(), nil
}

// Revision returns the HEAD commit and worktree state.
func (r *Repo) Revision() (Revision, error) {
	head, err := r.repo.Head()
	if err != nil {
		return Revision{}, fmt.Errorf("%w: %v", ErrNoCommits, err)
	}

	dirty, err := r.IsDirty()
	if err != nil {
		return Revision{}, err
	}

	return Revision{Hash: head.Hash().String(), Dirty: dirty}, nil
}

// Describe opens the repository at root and returns its revision.
func Describe(root string) (Revision, error) {
	repo, err := Open(root)
	if err != nil {
		return Revision{}, err
	}
	return repo.Revision()
}
