// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/m-renaud/cabal/pkg/grammar"
	"github.com/m-renaud/cabal/pkg/pkgname"
	"github.com/m-renaud/cabal/pkg/verrange"
)

// Describe returns the grammar of dependency text: everything String can
// produce and Parse can accept. It describes the permissive grammar: the
// specification-version gate is a parse-time context check, not a shape.
// The same value prints as EBNF, generates round-trip fixtures, and
// validates renderer output.
func Describe() grammar.Pattern {
	name := grammar.Ref("package-name", generateName, matchName)
	sub := grammar.Ref("unqualified-component-name", generateName, matchName)
	rng := grammar.Ref("version-range", generateRange, matchRange)
	sp := grammar.Star(grammar.Lit(" "))

	libList := grammar.Seq(sub, grammar.Star(grammar.Seq(sp, grammar.Lit(","), sp, sub)))
	braced := grammar.Seq(grammar.Lit("{"), sp, grammar.Opt(libList), sp, grammar.Lit("}"))
	librarySpec := grammar.Seq(grammar.Lit(":"), grammar.Choice(sub, braced))

	return grammar.Seq(
		name,
		grammar.Opt(librarySpec),
		grammar.Opt(grammar.Seq(grammar.Plus(grammar.Lit(" ")), rng)),
	)
}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz"

func generateName(r *rand.Rand) string {
	words := make([]string, 1+r.Intn(3))
	for i := range words {
		var w strings.Builder
		w.WriteByte(nameAlphabet[r.Intn(len(nameAlphabet))])
		for j, n := 0, r.Intn(5); j < n; j++ {
			if r.Intn(4) == 0 {
				w.WriteByte(byte('0' + r.Intn(10)))
			} else {
				w.WriteByte(nameAlphabet[r.Intn(len(nameAlphabet))])
			}
		}
		words[i] = w.String()
	}
	return strings.Join(words, "-")
}

func matchName(s string) []int { return pkgname.ValidPrefixLengths(s) }

func generateRange(r *rand.Rand) string {
	v := func() string {
		return fmt.Sprintf("%d.%d.%d", r.Intn(10), r.Intn(20), r.Intn(20))
	}
	switch r.Intn(7) {
	case 0:
		return "*"
	case 1:
		return "^" + v()
	case 2:
		return ">=" + v()
	case 3:
		return "<" + v()
	case 4:
		return "!=" + v()
	case 5:
		return ">=" + v() + " <" + v()
	default:
		return "^" + v() + " || ^" + v()
	}
}

// matchRange only ever sees the tail of the input (the range is the final
// grammar element), so it either consumes everything or nothing.
func matchRange(s string) []int {
	if s == "" || s != strings.TrimSpace(s) {
		return nil
	}
	if _, err := verrange.Parse(s); err != nil {
		return nil
	}
	return []int{len(s)}
}
