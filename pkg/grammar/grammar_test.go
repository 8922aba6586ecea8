// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLit(t *testing.T) {
	p := Lit("abc")
	assert.True(t, Matches(p, "abc"))
	assert.False(t, Matches(p, "ab"))
	assert.False(t, Matches(p, "abcd"))
	assert.Equal(t, `"abc"`, p.String())
}

func TestSeqBacktracks(t *testing.T) {
	// the first element can consume "a" or "aa"; only the "a" split leaves
	// "ab" for the second element
	first := Choice(Lit("a"), Lit("aa"))
	p := Seq(first, Lit("ab"))
	assert.True(t, Matches(p, "aab"))
	assert.False(t, Matches(p, "aa"))
}

func TestChoice(t *testing.T) {
	p := Choice(Lit("x"), Lit("yy"))
	assert.True(t, Matches(p, "x"))
	assert.True(t, Matches(p, "yy"))
	assert.False(t, Matches(p, "y"))
	assert.Equal(t, `( "x" | "yy" )`, p.String())
}

func TestOpt(t *testing.T) {
	p := Seq(Opt(Lit("a")), Lit("b"))
	assert.True(t, Matches(p, "b"))
	assert.True(t, Matches(p, "ab"))
	assert.False(t, Matches(p, "aab"))
}

func TestStarAndPlus(t *testing.T) {
	star := Star(Lit("ab"))
	for _, s := range []string{"", "ab", "abab", "ababab"} {
		assert.True(t, Matches(star, s), s)
	}
	assert.False(t, Matches(star, "aba"))

	plus := Plus(Lit("a"))
	assert.False(t, Matches(plus, ""))
	assert.True(t, Matches(plus, "a"))
	assert.True(t, Matches(plus, "aaaa"))
}

func TestRef(t *testing.T) {
	digits := Ref("digits",
		func(r *rand.Rand) string { return strings.Repeat("7", 1+r.Intn(3)) },
		func(s string) []int {
			var out []int
			for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
				out = append(out, i+1)
			}
			return out
		})

	p := Seq(digits, Lit("!"))
	assert.True(t, Matches(p, "123!"))
	assert.False(t, Matches(p, "!"))
	assert.Equal(t, `<digits> "!"`, p.String())
}

func TestGenerateConforms(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	p := Seq(
		Lit("("),
		Opt(Plus(Lit("x"))),
		Star(Seq(Lit(","), Choice(Lit("y"), Lit("z")))),
		Lit(")"),
	)
	for i := 0; i < 200; i++ {
		s := Generate(p, r)
		require.True(t, Matches(p, s), "generated %q does not match its own grammar", s)
	}
}
