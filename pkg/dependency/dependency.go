// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package dependency holds the core value of the build tool: one declared
// dependency on a package, comprising the package name, a version range,
// and the set of the package's libraries being depended on. The package
// also owns the three coupled views of that value: parsing it from text,
// rendering it back, and describing its textual shapes as a grammar.
package dependency

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"

	"github.com/m-renaud/cabal/pkg/pkgname"
	"github.com/m-renaud/cabal/pkg/verrange"
)

// Dependency is immutable once constructed. Every constructor path routes
// through New, which is the single place the self-reference invariant is
// established: the library set never contains a sub-library selector named
// after the package itself.
type Dependency struct {
	pkg  pkgname.PackageName
	rng  verrange.Range
	libs LibrarySet
}

// New builds a Dependency from its parts. Total: any selector equal to
// SubLibrary(name.ComponentName()) is coerced to MainLibrary, since
// depending on a sub-library literally named like its package means
// depending on the package's main library. Duplicates left by the coercion
// collapse.
func New(name pkgname.PackageName, rng verrange.Range, libs LibrarySet) Dependency {
	self := name.ComponentName()
	sels := lo.Map(libs.Selectors(), func(sel LibrarySelector, _ int) LibrarySelector {
		if sub, ok := sel.Sub(); ok && sub.Equal(self) {
			return MainLibrary()
		}
		return sel
	})
	return Dependency{pkg: name, rng: rng, libs: NewLibrarySet(sels...)}
}

// ThisPackageVersion constrains name to exactly v, with an empty library
// set: a version pin, not a library import.
func ThisPackageVersion(name pkgname.PackageName, v *semver.Version) Dependency {
	return New(name, verrange.Exactly(v), LibrarySet{})
}

// NotThisPackageVersion constrains name to anything but v, with an empty
// library set.
func NotThisPackageVersion(name pkgname.PackageName, v *semver.Version) Dependency {
	return New(name, verrange.Excluding(v), LibrarySet{})
}

func (d Dependency) Package() pkgname.PackageName { return d.pkg }

func (d Dependency) Range() verrange.Range { return d.rng }

func (d Dependency) Libraries() LibrarySet { return d.libs }

// Simplify returns a Dependency with the same package and libraries and a
// simplified range. Idempotent under the range algebra's own idempotence.
func (d Dependency) Simplify() Dependency {
	return New(d.pkg, d.rng.Simplify(), d.libs)
}

// Equal compares field-wise; ranges compare up to simplification.
func (d Dependency) Equal(o Dependency) bool {
	return d.pkg.Equal(o.pkg) && d.libs.Equal(o.libs) && d.rng.Equal(o.rng)
}

// Compare gives a total order for use in sorted containers: package name,
// then libraries, then simplified canonical range text.
func (d Dependency) Compare(o Dependency) int {
	if c := d.pkg.Compare(o.pkg); c != 0 {
		return c
	}
	if c := d.libs.compare(o.libs); c != 0 {
		return c
	}
	return strings.Compare(d.rng.Simplify().String(), o.rng.Simplify().String())
}

// String renders the dependency in the textual wire format. It is the left
// inverse of Parse up to constructor normalization and range equivalence.
// The main-library-only set renders with no library spec regardless of how
// it was built; every other set renders inside ":{...}", with MainLibrary
// shown as the package's own name. The range is always appended after a
// single space, even when it is trivial.
func (d Dependency) String() string {
	var sb strings.Builder
	sb.WriteString(d.pkg.String())
	if !d.libs.IsMainOnly() {
		names := lo.Map(d.libs.Selectors(), func(sel LibrarySelector, _ int) string {
			if sub, ok := sel.Sub(); ok {
				return sub.String()
			}
			return d.pkg.String()
		})
		sb.WriteString(":{")
		sb.WriteString(strings.Join(names, ","))
		sb.WriteString("}")
	}
	sb.WriteString(" ")
	sb.WriteString(d.rng.String())
	return sb.String()
}
