// SPDX-License-Identifier: MPL-2.0

package pkggraph

// NodeModulesIndex is the lookup structure over one package's own embedded
// node_modules directory. It is consulted before the ascending-directory
// search because most installed dependencies are nested directly under the
// depending package.
type NodeModulesIndex struct {
	// Dir is the absolute path of the indexed node_modules directory.
	Dir string

	entries map[string]*Package
}

func newNodeModulesIndex(dir string) *NodeModulesIndex {
	return &NodeModulesIndex{Dir: dir, entries: make(map[string]*Package)}
}

func (i *NodeModulesIndex) add(name string, p *Package) {
	i.entries[name] = p
}

// FindPackage returns the indexed package for a declared dependency name
// (scoped names use their full "@scope/name" form), or nil. Safe on a nil
// receiver so callers need not special-case packages without node_modules.
func (i *NodeModulesIndex) FindPackage(name string) *Package {
	if i == nil {
		return nil
	}
	return i.entries[name]
}

// Len returns the number of indexed packages. Safe on a nil receiver.
func (i *NodeModulesIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}
