// SPDX-License-Identifier: MPL-2.0

package pkggraph

import "path/filepath"

// resolveEdges populates a node's dependency maps. Guarded so edges are
// populated exactly once per node, and only called after phase one has
// materialized every reachable node.
func (s *Store) resolveEdges(p *Package) {
	if p.edgesResolved {
		return
	}
	p.edgesResolved = true

	p.DependencyPackages = s.resolveDependencies(p, p.Manifest.Dependencies)
	if p.isProject {
		// Installers only materialize dev dependencies for the root
		// package; resolving them on transitive nodes would report phantom
		// missing names.
		p.DevDependencyPackages = s.resolveDependencies(p, p.Manifest.DevDependencies)
	}
}

// resolveDependencies maps each declared name in spec to the Package the
// module lookup algorithm would select: the node's own node_modules index
// first, then node_modules directories of ancestor directories starting at
// the parent of the node's real path.
//
// An absent or empty spec yields nil (no map, not an empty map). Names
// that resolve are keyed by their declared name, which may differ from the
// resolved package's own name in aliased installs. Names that fail to
// resolve are collected into a single ErrDependenciesMissing entry on the
// node; they never mark it invalid.
func (s *Store) resolveDependencies(p *Package, spec *DependencySpec) *PackageSet {
	if spec.Len() == 0 {
		return nil
	}

	resolved := NewPackageSet()
	var missing []string

	for _, name := range spec.Names() {
		dep := p.NodeModulesIndex.FindPackage(name)
		if dep == nil {
			dep = s.findPackage(name, filepath.Dir(p.RealPath))
		}
		if dep == nil {
			missing = append(missing, name)
			continue
		}
		resolved.Add(name, dep)
	}

	if len(missing) > 0 {
		p.Errors.Add(ErrDependenciesMissing, missing)
	}
	return resolved
}
