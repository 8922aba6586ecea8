// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"

	"github.com/m-renaud/cabal/pkg/pkgname"
	"github.com/m-renaud/cabal/pkg/verrange"
)

func sub(name string) LibrarySelector {
	return SubLibrary(pkgname.MustParseComponent(name))
}

func TestNewCoercesSelfReference(t *testing.T) {
	d := New(pkgname.MustParse("mylib"), verrange.Any(),
		NewLibrarySet(sub("mylib"), sub("sublib")))

	assert.Equal(t, 2, d.Libraries().Len())
	assert.True(t, d.Libraries().Contains(MainLibrary()))
	assert.True(t, d.Libraries().Contains(sub("sublib")))
	assert.False(t, d.Libraries().Contains(sub("mylib")))
}

func TestNewCollapsesDuplicatesAfterCoercion(t *testing.T) {
	// MainLibrary and the coerced self-reference collapse to one element
	d := New(pkgname.MustParse("mylib"), verrange.Any(),
		NewLibrarySet(MainLibrary(), sub("mylib")))

	assert.Equal(t, 1, d.Libraries().Len())
	assert.True(t, d.Libraries().IsMainOnly())
}

func TestNewIsIdempotent(t *testing.T) {
	d := New(pkgname.MustParse("mylib"), verrange.MustParse("^1.0.0"),
		NewLibrarySet(sub("mylib"), sub("a"), sub("a")))
	again := New(d.Package(), d.Range(), d.Libraries())
	assert.True(t, d.Equal(again))
	assert.Equal(t, d.String(), again.String())
}

func TestLibrarySetCanonicalOrder(t *testing.T) {
	s := NewLibrarySet(sub("zeta"), sub("alpha"), MainLibrary(), sub("alpha"))
	sels := s.Selectors()

	assert.Equal(t, 3, len(sels))
	assert.True(t, sels[0].IsMain())
	name1, _ := sels[1].Sub()
	name2, _ := sels[2].Sub()
	assert.Equal(t, "alpha", name1.String())
	assert.Equal(t, "zeta", name2.String())
}

func TestEmptyLibrarySetIsLegal(t *testing.T) {
	d := New(pkgname.MustParse("base"), verrange.Any(), LibrarySet{})
	assert.True(t, d.Libraries().IsEmpty())
	assert.Equal(t, "base:{} *", d.String())
}

func TestThisPackageVersion(t *testing.T) {
	v := semver.MustParse("4.13.0")

	pin := ThisPackageVersion(pkgname.MustParse("base"), v)
	assert.True(t, pin.Libraries().IsEmpty())
	assert.True(t, pin.Range().Matches(v))
	assert.False(t, pin.Range().Matches(semver.MustParse("4.13.1")))

	not := NotThisPackageVersion(pkgname.MustParse("base"), v)
	assert.True(t, not.Libraries().IsEmpty())
	assert.False(t, not.Range().Matches(v))
	assert.True(t, not.Range().Matches(semver.MustParse("4.13.1")))
}

func TestRenderOmitsMainOnly(t *testing.T) {
	rng := verrange.MustParse("^4.13.0")
	name := pkgname.MustParse("base")

	// implicit default and explicit singleton render identically
	viaDefault := New(name, rng, MainOnly())
	viaExplicit := New(name, rng, NewLibrarySet(MainLibrary()))
	assert.Equal(t, "base ^4.13.0", viaDefault.String())
	assert.Equal(t, "base ^4.13.0", viaExplicit.String())
}

func TestRenderSelectors(t *testing.T) {
	name := pkgname.MustParse("mylib")

	multi := New(name, verrange.Any(), NewLibrarySet(MainLibrary(), sub("sublib")))
	assert.Equal(t, "mylib:{mylib,sublib} *", multi.String())

	single := New(name, verrange.MustParse(">=1.2.3"), NewLibrarySet(sub("sublib")))
	assert.Equal(t, "mylib:{sublib} >=1.2.3", single.String())
}

func TestSimplify(t *testing.T) {
	d := New(pkgname.MustParse("mylib"), verrange.MustParse("^1.0.0 || ^1.0.0"),
		NewLibrarySet(sub("a")))
	s := d.Simplify()

	assert.Equal(t, "^1.0.0", s.Range().String())
	assert.True(t, d.Package().Equal(s.Package()))
	assert.True(t, d.Libraries().Equal(s.Libraries()))
	assert.True(t, s.Equal(s.Simplify()), "simplify is idempotent")
	assert.True(t, d.Equal(s), "simplification preserves equality")
}

func TestCompare(t *testing.T) {
	a := New(pkgname.MustParse("aeson"), verrange.Any(), MainOnly())
	b := New(pkgname.MustParse("base"), verrange.Any(), MainOnly())
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))

	// same package: main-only sorts before a sub-library set
	bSub := New(pkgname.MustParse("base"), verrange.Any(), NewLibrarySet(sub("x")))
	assert.Negative(t, b.Compare(bSub))

	// equal up to range simplification compares as equal
	b2 := New(pkgname.MustParse("base"), verrange.MustParse("* || *"), MainOnly())
	assert.Zero(t, b.Compare(b2))
	assert.True(t, b.Equal(b2))
}
