// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package specversion models the specification version a package declares,
// an ordered token that gates which dependency syntax forms are legal for
// that package.
package specversion

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

var ErrInvalidSpecVersion = errors.New("invalid specification version")

// Version is a two-component specification version such as "3.4".
type Version struct {
	Major uint64
	Minor uint64
}

// LibrarySyntaxMin is the first specification version in which
// colon-qualified library dependencies (pkg:lib, pkg:{a,b}) are legal.
var LibrarySyntaxMin = Version{Major: 3, Minor: 0}

func Parse(s string) (Version, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, fmt.Errorf("%w: %q: expected <major>.<minor>", ErrInvalidSpecVersion, s)
	}
	majorNum, err := strconv.ParseUint(major, 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidSpecVersion, s, err)
	}
	minorNum, err := strconv.ParseUint(minor, 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidSpecVersion, s, err)
	}
	return Version{Major: majorNum, Minor: minorNum}, nil
}

func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return strconv.FormatUint(v.Major, 10) + "." + strconv.FormatUint(v.Minor, 10)
}

func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	return cmp.Compare(v.Minor, o.Minor)
}

func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

// SupportsLibrarySpec reports whether colon-qualified library dependencies
// are legal under this specification version.
func (v Version) SupportsLibrarySpec() bool { return v.AtLeast(LibrarySyntaxMin) }

// UnmarshalYAML reads the version from a scalar string, so project files
// can write `spec-version: "3.4"`.
func (v *Version) UnmarshalYAML(bytes []byte) error {
	var raw string
	if err := yaml.Unmarshal(bytes, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Version) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}
