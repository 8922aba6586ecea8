// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diagnostics carries non-fatal advisories out of band. Parsers
// append to a Collector without ever failing or blocking on it; callers
// decide whether to surface the collected notices.
package diagnostics

import (
	"slices"
	"sync"
)

// Advisory codes emitted by the dependency grammar.
const (
	CodeExperimentalLibrarySyntax = "experimental-library-syntax"
)

type Advisory struct {
	Code    string
	Message string
}

// Collector accumulates advisories. Safe for concurrent use. A nil
// *Collector discards everything, so callers that don't care may pass nil.
type Collector struct {
	mu         sync.Mutex
	advisories []Advisory
}

func (c *Collector) Add(a Advisory) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advisories = append(c.advisories, a)
}

func (c *Collector) All() []Advisory {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.advisories)
}
