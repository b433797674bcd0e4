// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildError_Error(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		e := NewError(KindToolchain, "rustc failed", errors.New("exit status 1"))
		assert.Equal(t, "rustc failed: exit status 1", e.Error())
	})

	t.Run("without cause", func(t *testing.T) {
		e := NewError(KindDiscovery, "no root dir", nil)
		assert.Equal(t, "no root dir", e.Error())
	})
}

func TestBuildError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	e := NewError(KindDiscovery, "wrapped", sentinel)

	assert.ErrorIs(t, e, sentinel)
	assert.ErrorIs(t, fmt.Errorf("outer: %w", e), sentinel)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"build error", NewError(KindDiscovery, "x", nil), KindDiscovery},
		{"wrapped build error", fmt.Errorf("ctx: %w", NewError(KindToolchain, "x", nil)), KindToolchain},
		{"plain error", errors.New("boom"), KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "io", KindIO.String())
	assert.Equal(t, "precondition", KindPrecondition.String())
	assert.Equal(t, "discovery", KindDiscovery.String())
	assert.Equal(t, "toolchain", KindToolchain.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}
