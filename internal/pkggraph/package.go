// SPDX-License-Identifier: MPL-2.0

package pkggraph

type (
	// Package is the in-memory node for one on-disk package. RealPath and
	// Manifest are immutable after materialization; the remaining fields
	// are set exactly once by the store (edges, addon bookkeeping) or by
	// the addon constructor loader (the memo slot).
	Package struct {
		// Manifest is the parsed package.json. Never nil: nodes with a
		// missing or malformed manifest carry an empty placeholder.
		Manifest *Manifest
		// RealPath is the canonical absolute path of the package directory,
		// unique per node within one graph. Dependency resolution walks
		// directories upward from here.
		RealPath string
		// Name is the manifest name, falling back to the directory base
		// name. Not unique across the graph; uniqueness is only enforced
		// within a single addon map.
		Name string
		// Valid is false when the manifest is malformed or an addon entry
		// file is missing. Missing dependencies never clear it.
		Valid bool
		// Errors accumulates (kind, data) pairs local to this node.
		Errors ErrorList
		// AddonMainPath is the absolute path of the addon entry file. Set
		// only for addon-shaped packages whose entry file exists.
		AddonMainPath string
		// InRepoAddons are addons declared as siblings inside this
		// package's own source tree (faros-addon.paths).
		InRepoAddons []*Package
		// InternalAddons are addons bundled by convention inside a project.
		// Projects only.
		InternalAddons []*Package
		// CLIInfo references the node for the host build tool itself, used
		// as an extra source of in-repo addons. Projects only.
		CLIInfo *Package
		// DependencyPackages maps declared runtime dependency names to
		// resolved nodes. Populated exactly once, after every reachable
		// node has been materialized. Nil when the package declares none.
		DependencyPackages *PackageSet
		// DevDependencyPackages is the devDependencies counterpart.
		// Resolved for the project node only: installers never materialize
		// dev dependencies of transitive packages.
		DevDependencyPackages *PackageSet
		// NodeModulesIndex indexes this package's own node_modules
		// directory. Nil when the package has none.
		NodeModulesIndex *NodeModulesIndex

		constructorMemo Memo
		isProject       bool
		edgesResolved   bool
		invalidReported bool
	}

	// Memo is a cache slot that starts empty and is filled at most once.
	// It makes lazy per-node memoization explicit and testable instead of
	// hiding it behind field mutation. Single-threaded by the graph's
	// execution model; no locking.
	Memo struct {
		filled bool
		value  any
	}
)

// IsProject reports whether this node is the project root of its graph.
func (p *Package) IsProject() bool {
	return p.isProject
}

// IsAddonShaped reports whether the package's manifest declares the addon
// keyword.
func (p *Package) IsAddonShaped() bool {
	return p.Manifest.IsAddonShaped()
}

// ConstructorMemo returns the node's lazy constructor slot.
func (p *Package) ConstructorMemo() *Memo {
	return &p.constructorMemo
}

// MarkInvalidAddonsReported flips the one-time invalid-addon reporting
// guard and reports whether this call was the first.
func (p *Package) MarkInvalidAddonsReported() bool {
	if p.invalidReported {
		return false
	}
	p.invalidReported = true
	return true
}

// Get returns the memoized value if the slot has been filled.
func (m *Memo) Get() (any, bool) {
	return m.value, m.filled
}

// Fill stores v if the slot is still empty and reports whether it did.
func (m *Memo) Fill(v any) bool {
	if m.filled {
		return false
	}
	m.filled = true
	m.value = v
	return true
}
