// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-renaud/cabal/pkg/grammar"
	"github.com/m-renaud/cabal/pkg/pkgname"
	"github.com/m-renaud/cabal/pkg/specversion"
	"github.com/m-renaud/cabal/pkg/verrange"
)

func TestDescribeIsHumanReadable(t *testing.T) {
	s := Describe().String()
	assert.Contains(t, s, "<package-name>")
	assert.Contains(t, s, "<unqualified-component-name>")
	assert.Contains(t, s, "<version-range>")
	assert.Contains(t, s, `":"`)
}

func TestDescribeMatchesWireFormatExamples(t *testing.T) {
	g := Describe()
	for _, s := range []string{
		"base ^4.13.0",
		"mylib:sub",
		"mylib:{sub1,sub2}",
		"mylib:{ sub1 , sub2 } ^42",
		"mylib:{}",
		"base",
	} {
		assert.True(t, grammar.Matches(g, s), s)
	}
	for _, s := range []string{
		"mylib: sub",
		"mylib :sub",
		"mylib: {sub1,sub2}",
		"mylib :{sub1,sub2}",
		"mylib:",
		"mylib:{sub1",
	} {
		assert.False(t, grammar.Matches(g, s), s)
	}
}

func TestGeneratedStringsParse(t *testing.T) {
	g := Describe()
	r := rand.New(rand.NewSource(1))
	spec := specversion.MustParse("3.4")

	for i := 0; i < 300; i++ {
		s := grammar.Generate(g, r)
		d, err := Parse(s, spec, nil)
		require.NoError(t, err, "generated %q failed to parse", s)

		// the rendered canonical form stays inside the grammar and parses
		// back to an equal value
		rendered := d.String()
		assert.True(t, grammar.Matches(g, rendered), "render of %q produced %q, outside the grammar", s, rendered)
		back, err := Parse(rendered, spec, nil)
		require.NoError(t, err, rendered)
		assert.True(t, d.Equal(back), "round trip of %q: %q != %q", s, rendered, back.String())
	}
}

func TestConstructedValuesRoundTrip(t *testing.T) {
	spec := specversion.MustParse("3.4")
	for _, d := range []Dependency{
		New(pkgname.MustParse("base"), verrange.MustParse("^4.13.0"), MainOnly()),
		New(pkgname.MustParse("mylib"), verrange.Any(), NewLibrarySet(sub("a"), sub("b"))),
		New(pkgname.MustParse("mylib"), verrange.MustParse(">=1.2.3 <2.0.0"), LibrarySet{}),
		New(pkgname.MustParse("mylib"), verrange.MustParse("^0.4.2 || ^1.0.0"),
			NewLibrarySet(MainLibrary(), sub("internal"))),
	} {
		back, err := Parse(d.String(), spec, nil)
		require.NoError(t, err, d.String())
		assert.True(t, d.Equal(back), d.String())
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	orig := New(pkgname.MustParse("mylib"), verrange.MustParse("^1.2.3"),
		NewLibrarySet(MainLibrary(), sub("sublib")))

	encoded, err := orig.MarshalBinary()
	require.NoError(t, err)

	var back Dependency
	require.NoError(t, back.UnmarshalBinary(encoded))
	assert.True(t, orig.Equal(back))
	assert.Equal(t, orig.String(), back.String())
}

func TestUnmarshalBinaryRejectsCorruptData(t *testing.T) {
	var d Dependency
	assert.ErrorIs(t, d.UnmarshalBinary(nil), ErrCorruptEncoding)
	assert.ErrorIs(t, d.UnmarshalBinary([]byte{99}), ErrCorruptEncoding)

	valid, err := New(pkgname.MustParse("base"), verrange.Any(), MainOnly()).MarshalBinary()
	require.NoError(t, err)
	assert.ErrorIs(t, d.UnmarshalBinary(valid[:len(valid)-1]), ErrCorruptEncoding)
	assert.ErrorIs(t, d.UnmarshalBinary(append(valid, 0)), ErrCorruptEncoding)
}

func TestHash(t *testing.T) {
	base := New(pkgname.MustParse("base"), verrange.MustParse("^4.13.0"), MainOnly())
	same := New(pkgname.MustParse("base"), verrange.MustParse("^4.13.0"), NewLibrarySet(MainLibrary()))
	assert.Equal(t, base.Hash(), same.Hash())

	otherName := New(pkgname.MustParse("text"), verrange.MustParse("^4.13.0"), MainOnly())
	otherRange := New(pkgname.MustParse("base"), verrange.MustParse("^4.14.0"), MainOnly())
	otherLibs := New(pkgname.MustParse("base"), verrange.MustParse("^4.13.0"), NewLibrarySet(sub("x")))
	assert.NotEqual(t, base.Hash(), otherName.Hash())
	assert.NotEqual(t, base.Hash(), otherRange.Hash())
	assert.NotEqual(t, base.Hash(), otherLibs.Hash())
}
