// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"fmt"
	"strings"

	"github.com/m-renaud/cabal/pkg/diagnostics"
	"github.com/m-renaud/cabal/pkg/pkgname"
	"github.com/m-renaud/cabal/pkg/specversion"
	"github.com/m-renaud/cabal/pkg/verrange"
)

// Parse reads one dependency declaration:
//
//	dependency   := package-name [ library-spec ] [ SP+ version-range ]
//	library-spec := ':' ( sub-lib-name | '{' SP* lib-list SP* '}' )
//	lib-list     := sub-lib-name (SP* ',' SP* sub-lib-name)*
//
// No whitespace is permitted on either side of the ':'. Whitespace is
// permitted around commas, inside braces, and before the version range.
// A missing library-spec means the main-library default; a missing range
// means "matches anything". spec is the specification version declared by
// the enclosing package: library-spec syntax is rejected below
// specversion.LibrarySyntaxMin with a SpecificationGateError. Successfully
// parsing the colon syntax records an experimental-feature advisory on
// diags (nil is fine).
//
// The result is built through New, so the self-reference coercion applies
// to parsed text exactly as to directly constructed values.
func Parse(text string, spec specversion.Version, diags *diagnostics.Collector) (Dependency, error) {
	end := scanName(text, 0)
	if end == 0 {
		return Dependency{}, &SyntaxError{Offset: 0, Msg: "expected a package name"}
	}
	name, err := pkgname.Parse(text[:end])
	if err != nil {
		return Dependency{}, &SyntaxError{Offset: 0, Msg: err.Error()}
	}

	pos := end
	libs := MainOnly()
	if pos < len(text) && text[pos] == ':' {
		if !spec.SupportsLibrarySpec() {
			return Dependency{}, &SpecificationGateError{
				Offset:   pos,
				Declared: spec,
				Required: specversion.LibrarySyntaxMin,
			}
		}
		libs, pos, err = parseLibrarySpec(text, pos+1)
		if err != nil {
			return Dependency{}, err
		}
		diags.Add(diagnostics.Advisory{
			Code:    diagnostics.CodeExperimentalLibrarySyntax,
			Message: fmt.Sprintf("%q uses colon-qualified library syntax, which is experimental and may change in a later specification revision", text),
		})
	}

	rest := text[pos:]
	if strings.HasPrefix(rest, ":") {
		return Dependency{}, &SyntaxError{Offset: pos, Msg: "unexpected ':': a dependency takes at most one library spec"}
	}
	rangeText := strings.Trim(rest, " \t")
	if strings.HasPrefix(rangeText, ":") {
		return Dependency{}, &SyntaxError{Offset: pos, Msg: "whitespace is not allowed before ':'"}
	}

	rng := verrange.Any()
	if rangeText != "" {
		rng, err = verrange.Parse(rangeText)
		if err != nil {
			return Dependency{}, &SyntaxError{Offset: pos, Msg: err.Error()}
		}
	}
	return New(name, rng, libs), nil
}

// parseLibrarySpec reads what follows the ':', returning the selector set
// and the offset of the first byte after the spec.
func parseLibrarySpec(text string, pos int) (LibrarySet, int, error) {
	if pos >= len(text) {
		return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: "expected a library name or '{' after ':'"}
	}
	if isSpace(text[pos]) {
		return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: "whitespace is not allowed after ':'"}
	}
	if text[pos] == '{' {
		return parseLibraryList(text, pos+1)
	}

	end := scanName(text, pos)
	if end == pos {
		return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: "expected a library name or '{' after ':'"}
	}
	sub, err := pkgname.ParseComponent(text[pos:end])
	if err != nil {
		return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: err.Error()}
	}
	return NewLibrarySet(SubLibrary(sub)), end, nil
}

// parseLibraryList reads a brace list from just after the '{'. Zero names
// are legal and yield the empty set.
func parseLibraryList(text string, pos int) (LibrarySet, int, error) {
	var sels []LibrarySelector
	pos = skipSpaces(text, pos)
	if pos < len(text) && text[pos] == '}' {
		return NewLibrarySet(), pos + 1, nil
	}
	for {
		end := scanName(text, pos)
		if end == pos {
			return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: "expected a library name"}
		}
		sub, err := pkgname.ParseComponent(text[pos:end])
		if err != nil {
			return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: err.Error()}
		}
		sels = append(sels, SubLibrary(sub))

		pos = skipSpaces(text, end)
		if pos >= len(text) {
			return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: "unbalanced '{': expected ',' or '}'"}
		}
		switch text[pos] {
		case '}':
			return NewLibrarySet(sels...), pos + 1, nil
		case ',':
			pos = skipSpaces(text, pos+1)
		default:
			return LibrarySet{}, 0, &SyntaxError{Offset: pos, Msg: fmt.Sprintf("expected ',' or '}', found %q", text[pos])}
		}
	}
}

func scanName(s string, pos int) int {
	for pos < len(s) && pkgname.IsNameByte(s[pos]) {
		pos++
	}
	return pos
}

func skipSpaces(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }
