// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pkgname holds the two lexical atoms of the dependency grammar:
// package names and unqualified component names. Both share the same
// lexical class: hyphen-separated words of ASCII letters and digits, where
// every word contains at least one letter so a name can never swallow a
// trailing version number.
package pkgname

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidName = errors.New("invalid name")

// PackageName identifies a package. The zero value is not a valid name.
type PackageName struct {
	name string
}

// UnqualifiedComponentName identifies a component (library, executable)
// within a single package, without package qualification.
type UnqualifiedComponentName struct {
	name string
}

func Parse(s string) (PackageName, error) {
	if err := validate(s); err != nil {
		return PackageName{}, err
	}
	return PackageName{name: s}, nil
}

func MustParse(s string) PackageName {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n PackageName) String() string { return n.name }

func (n PackageName) IsZero() bool { return n.name == "" }

func (n PackageName) Compare(o PackageName) int { return strings.Compare(n.name, o.name) }

func (n PackageName) Equal(o PackageName) bool { return n.name == o.name }

// ComponentName converts the package name into the unqualified name of the
// package's own main library. Total: every valid package name is also a
// valid component name.
func (n PackageName) ComponentName() UnqualifiedComponentName {
	return UnqualifiedComponentName{name: n.name}
}

func ParseComponent(s string) (UnqualifiedComponentName, error) {
	if err := validate(s); err != nil {
		return UnqualifiedComponentName{}, err
	}
	return UnqualifiedComponentName{name: s}, nil
}

func MustParseComponent(s string) UnqualifiedComponentName {
	n, err := ParseComponent(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n UnqualifiedComponentName) String() string { return n.name }

func (n UnqualifiedComponentName) IsZero() bool { return n.name == "" }

func (n UnqualifiedComponentName) Compare(o UnqualifiedComponentName) int {
	return strings.Compare(n.name, o.name)
}

func (n UnqualifiedComponentName) Equal(o UnqualifiedComponentName) bool {
	return n.name == o.name
}

// IsNameByte reports whether b may appear anywhere in a name.
func IsNameByte(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '-'
}

// ValidPrefixLengths returns every byte offset i such that s[:i] is a
// lexically valid name, in ascending order. Multi-candidate parsers use it
// to backtrack over name boundaries.
func ValidPrefixLengths(s string) []int {
	end := 0
	for end < len(s) && IsNameByte(s[end]) {
		end++
	}
	var out []int
	for i := 1; i <= end; i++ {
		if validate(s[:i]) == nil {
			out = append(out, i)
		}
	}
	return out
}

func validate(s string) error {
	if s == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	for _, word := range strings.Split(s, "-") {
		if word == "" {
			return fmt.Errorf("%w: %q has an empty hyphen-separated segment", ErrInvalidName, s)
		}
		hasLetter := false
		for i := 0; i < len(word); i++ {
			switch {
			case isLetter(word[i]):
				hasLetter = true
			case isDigit(word[i]):
			default:
				return fmt.Errorf("%w: %q contains illegal character %q", ErrInvalidName, s, word[i])
			}
		}
		if !hasLetter {
			return fmt.Errorf("%w: segment %q of %q contains no letter", ErrInvalidName, word, s)
		}
	}
	return nil
}

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
