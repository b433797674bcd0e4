// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types holds the types shared between freight's internal packages
// and its public API.
package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a build failure.
type ErrorKind int

const (
	KindIO           ErrorKind = iota // Opaque I/O-class failure (catch-all)
	KindPrecondition                  // Programming error: descriptor finalized without required fields
	KindDiscovery                     // Project layout problem: no root, unnamed root, nothing to compile
	KindToolchain                     // Toolchain could not be launched or did not succeed
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindPrecondition:
		return "precondition"
	case KindDiscovery:
		return "discovery"
	case KindToolchain:
		return "toolchain"
	default:
		return "unknown"
	}
}

// BuildError is the error returned by every freight operation.
type BuildError struct {
	Kind    ErrorKind // Failure class
	Message string    // Human-readable description
	Err     error     // Underlying cause, may be nil
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// NewError returns a BuildError of the given kind.
func NewError(kind ErrorKind, message string, cause error) *BuildError {
	return &BuildError{Kind: kind, Message: message, Err: cause}
}

// KindOf reports the kind of err. Errors that are not a BuildError are
// treated as KindIO.
func KindOf(err error) ErrorKind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindIO
}
