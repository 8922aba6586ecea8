// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package verrange wraps semver constraints as the opaque version-range
// capability consumed by the dependency layer. Callers get parse, pretty,
// the trivial "matches anything" range, union/intersection, and a
// simplification pass; they never see the constraint internals.
package verrange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

var ErrInvalidRange = errors.New("invalid version range")

const unionSep = " || "

// Range is an immutable version constraint. The zero value behaves as Any.
type Range struct {
	c   *semver.Constraints
	str string
}

// Parse accepts semver constraint syntax: "*", "^4.13.0", ">=1.2.3 <2.0.0",
// "!=2.0.0", and "||" unions of those.
func Parse(s string) (Range, error) {
	c, err := semver.NewConstraint(s)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	return Range{c: c, str: c.String()}, nil
}

func MustParse(s string) Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Any matches every version.
func Any() Range { return MustParse("*") }

// Exactly matches only v.
func Exactly(v *semver.Version) Range { return MustParse("=" + v.String()) }

// Excluding matches every version except v.
func Excluding(v *semver.Version) Range { return MustParse("!=" + v.String()) }

// String returns the canonical text of the range. The canonical form is a
// fixed point: Parse(r.String()).String() == r.String().
func (r Range) String() string {
	if r.c == nil {
		return "*"
	}
	return r.str
}

func (r Range) IsAny() bool { return r.String() == "*" }

func (r Range) Matches(v *semver.Version) bool {
	if r.c == nil {
		return true
	}
	return r.c.Check(v)
}

// Simplify returns an equivalent range with duplicate union branches
// removed. Idempotent. The result may have a different shape than the
// input; equality between ranges is defined over simplified canonical text,
// not structure.
func (r Range) Simplify() Range {
	branches := lo.Uniq(lo.Map(strings.Split(r.String(), unionSep), func(b string, _ int) string {
		return strings.TrimSpace(b)
	}))
	return MustParse(strings.Join(branches, unionSep))
}

// Equal compares two ranges up to simplification.
func (r Range) Equal(o Range) bool {
	return r.Simplify().String() == o.Simplify().String()
}

// Union matches any version matched by either range.
func Union(a, b Range) Range {
	return MustParse(a.String() + unionSep + b.String()).Simplify()
}

// Intersect matches only versions matched by both ranges. Unions are
// distributed pairwise so the result stays in disjunctive form.
func Intersect(a, b Range) Range {
	var groups []string
	for _, ga := range strings.Split(a.String(), unionSep) {
		for _, gb := range strings.Split(b.String(), unionSep) {
			groups = append(groups, ga+" "+gb)
		}
	}
	return MustParse(strings.Join(groups, unionSep)).Simplify()
}
