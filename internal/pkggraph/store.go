// SPDX-License-Identifier: MPL-2.0

package pkggraph

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ManifestFileName is the package descriptor file name.
	ManifestFileName = "package.json"

	// NodeModulesDirName is the embedded dependency directory name.
	NodeModulesDirName = "node_modules"
)

type (
	// LoadOptions configures graph construction.
	LoadOptions struct {
		// CLIPath optionally points at the installed host build tool
		// package. When set (and the directory holds a manifest), the
		// project node's CLIInfo references it, making the tool's in-repo
		// addons discoverable.
		CLIPath string
		// InternalAddonPaths lists directories of addons bundled with the
		// project by convention, absolute or project-relative. Each path is
		// materialized as one addon node; missing or malformed entries
		// become invalid nodes and surface through the usual warning path.
		InternalAddonPaths []string
	}

	// Store owns the Package nodes of one graph: exactly one node per
	// distinct real path, created while walking the project tree.
	Store struct {
		byRealPath map[string]*Package
		// order records materialization order so edge resolution can drain
		// nodes appended mid-resolution by the ascending-directory search.
		order []*Package
	}

	// Graph is a fully resolved package graph: every reachable node is
	// materialized and every node's dependency edges are populated. It is
	// the only handle LoadProject returns, so partially resolved graphs
	// cannot escape.
	Graph struct {
		project *Package
		store   *Store
	}
)

// LoadProject builds and resolves the package graph rooted at the project
// directory root. The project directory must contain a parseable
// package.json; every other defect (malformed nested manifests, missing
// addon entry files, unresolvable dependencies) is recorded on the
// affected node without failing the load.
func LoadProject(root string, opts LoadOptions) (*Graph, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	manifestPath := filepath.Join(absRoot, ManifestFileName)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, fmt.Errorf("no %s found in %s: %w", ManifestFileName, absRoot, err)
	}

	s := &Store{byRealPath: make(map[string]*Package)}

	// Phase one: materialize every reachable node.
	project := s.materialize(absRoot)
	project.isProject = true
	if !project.Valid {
		return nil, fmt.Errorf("project %s is malformed: %s", ManifestFileName, firstErrorData(project))
	}

	for _, dir := range opts.InternalAddonPaths {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(absRoot, dir)
		}
		project.InternalAddons = append(project.InternalAddons, s.materialize(dir))
	}

	if opts.CLIPath != "" {
		if hasManifest(opts.CLIPath) {
			project.CLIInfo = s.materialize(opts.CLIPath)
		}
	}

	// Phase two: resolve edges for every node. An index loop, not a range:
	// the ascending-directory search may materialize nodes above the
	// project root mid-phase, and those must be resolved too.
	for i := 0; i < len(s.order); i++ {
		s.resolveEdges(s.order[i])
	}

	return &Graph{project: project, store: s}, nil
}

// Project returns the graph's project node.
func (g *Graph) Project() *Package {
	return g.project
}

// Packages returns every node in materialization order.
func (g *Graph) Packages() []*Package {
	out := make([]*Package, len(g.store.order))
	copy(out, g.store.order)
	return out
}

// Lookup returns the node for a canonical directory path, if materialized.
func (g *Graph) Lookup(dir string) (*Package, bool) {
	p, ok := g.store.byRealPath[canonicalPath(dir)]
	return p, ok
}

// FindPackage resolves a dependency name the way the module lookup
// algorithm would, searching node_modules directories upward from
// fromDir. Nodes materialized by the search get their edges resolved
// before the call returns, preserving the graph's resolved state.
func (g *Graph) FindPackage(name, fromDir string) *Package {
	p := g.store.findPackage(name, fromDir)
	for i := 0; i < len(g.store.order); i++ {
		g.store.resolveEdges(g.store.order[i])
	}
	return p
}

// materialize returns the node for dir, creating it on first sight. The
// node is registered before its manifest is read so that cyclic in-repo
// addon declarations cannot recurse forever.
func (s *Store) materialize(dir string) *Package {
	real := canonicalPath(dir)
	if existing, ok := s.byRealPath[real]; ok {
		return existing
	}

	p := &Package{
		Manifest: emptyManifest(),
		RealPath: real,
		Name:     filepath.Base(real),
		Valid:    true,
	}
	s.byRealPath[real] = p
	s.order = append(s.order, p)

	data, err := os.ReadFile(filepath.Join(real, ManifestFileName))
	if err != nil {
		p.Valid = false
		p.Errors.Add(ErrManifestParse, err.Error())
		return p
	}
	m, err := ParseManifest(data)
	if err != nil {
		p.Valid = false
		p.Errors.Add(ErrManifestParse, err.Error())
		return p
	}

	p.Manifest = m
	if m.Name != "" {
		p.Name = m.Name
	}

	if m.IsAddonShaped() {
		if mainPath := resolveEntryFile(real, m.EntryPoint()); mainPath != "" {
			p.AddonMainPath = mainPath
		} else {
			p.Valid = false
			p.Errors.Add(ErrAddonMainMissing, m.EntryPoint())
		}
	}

	nmDir := filepath.Join(real, NodeModulesDirName)
	if isDir(nmDir) {
		p.NodeModulesIndex = s.indexNodeModules(nmDir)
	}

	for _, rel := range m.Addon.Paths {
		addonDir := rel
		if !filepath.IsAbs(addonDir) {
			addonDir = filepath.Join(real, rel)
		}
		p.InRepoAddons = append(p.InRepoAddons, s.materialize(addonDir))
	}

	return p
}

// indexNodeModules materializes every package directly under a node_modules
// directory. os.ReadDir returns sorted entries, so index construction (and
// with it node materialization order) is deterministic. Dot entries such
// as .bin are skipped; scope directories (@scope) are descended one level.
func (s *Store) indexNodeModules(nmDir string) *NodeModulesIndex {
	idx := newNodeModulesIndex(nmDir)
	entries, err := os.ReadDir(nmDir)
	if err != nil {
		return idx
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if strings.HasPrefix(name, "@") {
			scopeDir := filepath.Join(nmDir, name)
			scoped, err := os.ReadDir(scopeDir)
			if err != nil {
				continue
			}
			for _, se := range scoped {
				if strings.HasPrefix(se.Name(), ".") {
					continue
				}
				pkgDir := filepath.Join(scopeDir, se.Name())
				if !hasManifest(pkgDir) {
					continue
				}
				idx.add(name+"/"+se.Name(), s.materialize(pkgDir))
			}
			continue
		}

		pkgDir := filepath.Join(nmDir, name)
		if !hasManifest(pkgDir) {
			continue
		}
		idx.add(name, s.materialize(pkgDir))
	}

	return idx
}

// findPackage searches node_modules directories upward from fromDir until
// a package named name is found or the filesystem root is reached.
func (s *Store) findPackage(name, fromDir string) *Package {
	dir := fromDir
	for {
		candidate := filepath.Join(dir, NodeModulesDirName, filepath.FromSlash(name))
		if hasManifest(candidate) {
			return s.materialize(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

// resolveEntryFile resolves an addon entry declaration to an existing file,
// trying the literal path, then with a .js suffix, then as a directory
// index. Returns "" when nothing exists.
func resolveEntryFile(pkgDir, entry string) string {
	base := filepath.Join(pkgDir, filepath.FromSlash(entry))
	for _, candidate := range []string{base, base + ".js", filepath.Join(base, "index.js")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// canonicalPath returns the symlink-free absolute form of dir, used as the
// node identity key so the same package reached through different links
// materializes once.
func canonicalPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFileName))
	return err == nil && !info.IsDir()
}

func firstErrorData(p *Package) any {
	entries := p.Errors.Entries()
	if len(entries) == 0 {
		return "unknown error"
	}
	return entries[0].Data
}
