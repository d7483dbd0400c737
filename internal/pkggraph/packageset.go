// SPDX-License-Identifier: MPL-2.0

package pkggraph

import (
	"iter"
	"slices"
)

// PackageSet is a name-keyed mapping of Package nodes that iterates in key
// insertion order. Dependency edges use it because addon aggregation
// depends on mapping-valued sources iterating in declaration order, which
// a plain map cannot guarantee.
type PackageSet struct {
	names  []string
	byName map[string]*Package
}

// NewPackageSet returns an empty set.
func NewPackageSet() *PackageSet {
	return &PackageSet{byName: make(map[string]*Package)}
}

// Add inserts or replaces the package keyed by name. A replaced name keeps
// its original position.
func (s *PackageSet) Add(name string, p *Package) {
	if _, ok := s.byName[name]; !ok {
		s.names = append(s.names, name)
	}
	s.byName[name] = p
}

// Get returns the package keyed by name. Safe on a nil receiver.
func (s *PackageSet) Get(name string) (*Package, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.byName[name]
	return p, ok
}

// Len returns the number of entries. Safe on a nil receiver.
func (s *PackageSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the keys in insertion order. Safe on a nil receiver.
func (s *PackageSet) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.names)
}

// All iterates entries in insertion order. Safe on a nil receiver.
func (s *PackageSet) All() iter.Seq2[string, *Package] {
	return func(yield func(string, *Package) bool) {
		if s == nil {
			return
		}
		for _, name := range s.names {
			if !yield(name, s.byName[name]) {
				return
			}
		}
	}
}
