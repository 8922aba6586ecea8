// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package grammar is a small pattern algebra with three interpretations
// over the same value: an EBNF-style rendering for humans, a random
// generator of conforming strings, and a backtracking matcher. One pattern
// value therefore documents a textual form, drives property-test input
// generation, and validates pretty-printer output against the grammar.
package grammar

import (
	"math/rand"
	"slices"
	"strconv"
	"strings"
)

// Pattern describes a set of strings. Values are static and stateless.
type Pattern interface {
	// String renders the pattern in EBNF-like notation.
	String() string
	// generate appends one conforming string to sb.
	generate(r *rand.Rand, sb *strings.Builder)
	// match returns, in ascending order, every prefix length of s this
	// pattern can consume. Empty means no match at all.
	match(s string) []int
}

// Generate produces a random string conforming to p.
func Generate(p Pattern, r *rand.Rand) string {
	var sb strings.Builder
	p.generate(r, &sb)
	return sb.String()
}

// Matches reports whether p can consume all of s.
func Matches(p Pattern, s string) bool {
	return slices.Contains(p.match(s), len(s))
}

func Lit(s string) Pattern { return lit(s) }

func Seq(ps ...Pattern) Pattern { return seq(ps) }

func Choice(ps ...Pattern) Pattern { return choice(ps) }

func Opt(p Pattern) Pattern { return opt{p} }

// Star matches zero or more repetitions of p. Generation is bounded to a
// few repetitions.
func Star(p Pattern) Pattern { return star{p} }

// Plus matches one or more repetitions of p.
func Plus(p Pattern) Pattern { return Seq(p, Star(p)) }

// Ref names an externally-defined pattern (an atom of the grammar) by its
// own generator and matcher. The matcher follows the same contract as
// Pattern.match.
func Ref(name string, generate func(*rand.Rand) string, match func(string) []int) Pattern {
	return ref{name: name, gen: generate, matchFn: match}
}

type lit string

func (l lit) String() string { return strconv.Quote(string(l)) }

func (l lit) generate(_ *rand.Rand, sb *strings.Builder) { sb.WriteString(string(l)) }

func (l lit) match(s string) []int {
	if strings.HasPrefix(s, string(l)) {
		return []int{len(l)}
	}
	return nil
}

type seq []Pattern

func (q seq) String() string {
	parts := make([]string, len(q))
	for i, p := range q {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func (q seq) generate(r *rand.Rand, sb *strings.Builder) {
	for _, p := range q {
		p.generate(r, sb)
	}
}

func (q seq) match(s string) []int {
	offsets := []int{0}
	for _, p := range q {
		var next []int
		for _, o := range offsets {
			for _, n := range p.match(s[o:]) {
				next = append(next, o+n)
			}
		}
		offsets = dedupe(next)
		if len(offsets) == 0 {
			return nil
		}
	}
	return offsets
}

type choice []Pattern

func (c choice) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.String()
	}
	return "( " + strings.Join(parts, " | ") + " )"
}

func (c choice) generate(r *rand.Rand, sb *strings.Builder) {
	c[r.Intn(len(c))].generate(r, sb)
}

func (c choice) match(s string) []int {
	var out []int
	for _, p := range c {
		out = append(out, p.match(s)...)
	}
	return dedupe(out)
}

type opt struct {
	p Pattern
}

func (o opt) String() string { return "[ " + o.p.String() + " ]" }

func (o opt) generate(r *rand.Rand, sb *strings.Builder) {
	if r.Intn(2) == 0 {
		o.p.generate(r, sb)
	}
}

func (o opt) match(s string) []int {
	return dedupe(append([]int{0}, o.p.match(s)...))
}

type star struct {
	p Pattern
}

func (t star) String() string { return "{ " + t.p.String() + " }" }

func (t star) generate(r *rand.Rand, sb *strings.Builder) {
	for i, n := 0, r.Intn(3); i < n; i++ {
		t.p.generate(r, sb)
	}
}

// match grows the reachable-offset set to a fixed point. Only non-empty
// consumptions extend an offset, so the loop terminates.
func (t star) match(s string) []int {
	reached := map[int]bool{0: true}
	frontier := []int{0}
	for len(frontier) > 0 {
		var next []int
		for _, o := range frontier {
			for _, n := range t.p.match(s[o:]) {
				if n > 0 && !reached[o+n] {
					reached[o+n] = true
					next = append(next, o+n)
				}
			}
		}
		frontier = next
	}
	out := make([]int, 0, len(reached))
	for o := range reached {
		out = append(out, o)
	}
	slices.Sort(out)
	return out
}

type ref struct {
	name    string
	gen     func(*rand.Rand) string
	matchFn func(string) []int
}

func (f ref) String() string { return "<" + f.name + ">" }

func (f ref) generate(r *rand.Rand, sb *strings.Builder) { sb.WriteString(f.gen(r)) }

func (f ref) match(s string) []int { return dedupe(f.matchFn(s)) }

func dedupe(offsets []int) []int {
	slices.Sort(offsets)
	return slices.Compact(offsets)
}
