// Copyright (c) 2024-2026 the cabal-go authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"slices"

	"github.com/m-renaud/cabal/pkg/pkgname"
)

// LibrarySelector picks one library out of a package: either the package's
// own main library or a named sub-library. The zero value is MainLibrary.
type LibrarySelector struct {
	sub   pkgname.UnqualifiedComponentName
	isSub bool
}

// MainLibrary selects the package's default, unqualified library.
func MainLibrary() LibrarySelector { return LibrarySelector{} }

// SubLibrary selects the named internal library of the package.
func SubLibrary(name pkgname.UnqualifiedComponentName) LibrarySelector {
	return LibrarySelector{sub: name, isSub: true}
}

func (s LibrarySelector) IsMain() bool { return !s.isSub }

// Sub returns the sub-library name; ok is false for MainLibrary.
func (s LibrarySelector) Sub() (pkgname.UnqualifiedComponentName, bool) {
	return s.sub, s.isSub
}

// Compare orders MainLibrary before every sub-library, then sub-libraries
// by name. This is the canonical rendering and hashing order.
func (s LibrarySelector) Compare(o LibrarySelector) int {
	switch {
	case !s.isSub && !o.isSub:
		return 0
	case !s.isSub:
		return -1
	case !o.isSub:
		return 1
	default:
		return s.sub.Compare(o.sub)
	}
}

func (s LibrarySelector) Equal(o LibrarySelector) bool { return s.Compare(o) == 0 }

// LibrarySet is an immutable set of selectors held in canonical sorted
// order with unique elements. The zero value is the empty set, which is
// legal and means "version constraint only, no library import".
type LibrarySet struct {
	sels []LibrarySelector
}

// NewLibrarySet builds a set from any selectors, deduplicating and sorting.
func NewLibrarySet(sels ...LibrarySelector) LibrarySet {
	sorted := slices.Clone(sels)
	slices.SortFunc(sorted, LibrarySelector.Compare)
	sorted = slices.CompactFunc(sorted, LibrarySelector.Equal)
	return LibrarySet{sels: sorted}
}

// MainOnly is the implicit default whenever no library selector is written
// in source text.
func MainOnly() LibrarySet { return NewLibrarySet(MainLibrary()) }

func (s LibrarySet) Len() int { return len(s.sels) }

func (s LibrarySet) IsEmpty() bool { return len(s.sels) == 0 }

// IsMainOnly reports whether the set is exactly {MainLibrary}, however it
// was built. Such sets render with no library spec at all.
func (s LibrarySet) IsMainOnly() bool {
	return len(s.sels) == 1 && s.sels[0].IsMain()
}

func (s LibrarySet) Contains(sel LibrarySelector) bool {
	_, ok := slices.BinarySearchFunc(s.sels, sel, LibrarySelector.Compare)
	return ok
}

// Selectors returns the elements in canonical order. The slice is a copy.
func (s LibrarySet) Selectors() []LibrarySelector { return slices.Clone(s.sels) }

func (s LibrarySet) Equal(o LibrarySet) bool {
	return slices.EqualFunc(s.sels, o.sels, LibrarySelector.Equal)
}

func (s LibrarySet) compare(o LibrarySet) int {
	return slices.CompareFunc(s.sels, o.sels, LibrarySelector.Compare)
}
