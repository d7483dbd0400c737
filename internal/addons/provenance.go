// SPDX-License-Identifier: MPL-2.0

package addons

import "faros-cli/internal/pkggraph"

type (
	provenanceKind int

	// Provenance is one source of candidate addon packages: either an
	// ordered list or a name-keyed mapping. Mapping-valued provenances
	// iterate in key insertion order, never sorted. A provenance may carry
	// an exclusion predicate evaluated per candidate.
	Provenance struct {
		kind    provenanceKind
		list    []*pkggraph.Package
		mapping *pkggraph.PackageSet
		exclude func(*pkggraph.Package) bool
	}
)

const (
	kindList provenanceKind = iota
	kindMapping
)

// FromList makes a provenance from an ordered candidate list.
func FromList(pkgs []*pkggraph.Package) Provenance {
	return Provenance{kind: kindList, list: pkgs}
}

// FromMapping makes a provenance from a name-keyed candidate mapping.
// A nil set behaves as an empty provenance.
func FromMapping(set *pkggraph.PackageSet) Provenance {
	return Provenance{kind: kindMapping, mapping: set}
}

// WithExclude returns a copy of the provenance that drops candidates for
// which fn returns true.
func (p Provenance) WithExclude(fn func(*pkggraph.Package) bool) Provenance {
	p.exclude = fn
	return p
}

// appendTo appends the provenance's surviving candidates to dst in order.
func (p Provenance) appendTo(dst []*pkggraph.Package) []*pkggraph.Package {
	keep := func(pkg *pkggraph.Package) bool {
		return p.exclude == nil || !p.exclude(pkg)
	}

	switch p.kind {
	case kindList:
		for _, pkg := range p.list {
			if keep(pkg) {
				dst = append(dst, pkg)
			}
		}
	case kindMapping:
		for _, pkg := range p.mapping.All() {
			if keep(pkg) {
				dst = append(dst, pkg)
			}
		}
	}
	return dst
}

// Collect merges candidate packages from the given provenances into one
// flat ordered list, preserving provenance order. The result may contain
// the same package twice when two provenances reach it; de-duplication is
// deferred to the name-keyed map-building step.
func Collect(provenances ...Provenance) []*pkggraph.Package {
	var out []*pkggraph.Package
	for _, p := range provenances {
		out = p.appendTo(out)
	}
	return out
}
