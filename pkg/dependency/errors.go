// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"errors"
	"fmt"

	"github.com/m-renaud/cabal/pkg/specversion"
)

var (
	ErrSyntax            = errors.New("invalid dependency syntax")
	ErrSpecVersionTooOld = errors.New("library syntax requires a newer specification version")
)

// SyntaxError reports text that does not match the dependency grammar. The
// byte offset lets a file-level parser position the error within a larger
// report, or backtrack to another grammar alternative.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid dependency syntax at offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// SpecificationGateError reports syntactically valid colon-qualified
// dependency text under a declared specification version that predates the
// syntax.
type SpecificationGateError struct {
	Offset   int
	Declared specversion.Version
	Required specversion.Version
}

func (e *SpecificationGateError) Error() string {
	return fmt.Sprintf(
		"colon-qualified library dependencies require specification version %s or later, but the enclosing package declares %s; "+
			"raise the declared specification version to at least %s, or depend on the internal library directly by its own name",
		e.Required, e.Declared, e.Required)
}

func (e *SpecificationGateError) Unwrap() error { return ErrSpecVersionTooOld }
