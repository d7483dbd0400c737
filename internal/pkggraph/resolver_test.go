// SPDX-License-Identifier: MPL-2.0

package pkggraph

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestResolveDependencies_PartiallyMissing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, `{"name": "app", "dependencies": {"here": "*", "gone": "*", "also-gone": "*"}}`)
	writeManifest(t, filepath.Join(root, "node_modules", "here"), `{"name": "here"}`)

	g, err := LoadProject(root, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	project := g.Project()
	if _, ok := project.DependencyPackages.Get("here"); !ok {
		t.Error("resolvable name should still resolve")
	}
	if project.DependencyPackages.Len() != 1 {
		t.Errorf("resolved count = %d, want 1", project.DependencyPackages.Len())
	}

	// Missing names never invalidate the node and are collected into a
	// single entry carrying the full list.
	if !project.Valid {
		t.Error("missing dependencies must not invalidate the node")
	}
	var missingEntries []ErrorEntry
	for _, e := range project.Errors.Entries() {
		if e.Kind == ErrDependenciesMissing {
			missingEntries = append(missingEntries, e)
		}
	}
	if len(missingEntries) != 1 {
		t.Fatalf("expected exactly 1 missing-dependencies entry, got %d", len(missingEntries))
	}
	names, ok := missingEntries[0].Data.([]string)
	if !ok {
		t.Fatalf("entry data should be []string, got %T", missingEntries[0].Data)
	}
	if !slices.Equal(names, []string{"gone", "also-gone"}) {
		t.Errorf("missing names = %v, want [gone also-gone]", names)
	}
}

func TestResolveDependencies_DevDependenciesProjectOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, `{"name": "app", "dependencies": {"mid": "*"}, "devDependencies": {"tool": "*"}}`)
	writeManifest(t, filepath.Join(root, "node_modules", "mid"),
		`{"name": "mid", "devDependencies": {"phantom": "*"}}`)
	writeManifest(t, filepath.Join(root, "node_modules", "tool"), `{"name": "tool"}`)

	g, err := LoadProject(root, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	project := g.Project()
	if _, ok := project.DevDependencyPackages.Get("tool"); !ok {
		t.Error("project dev dependency should resolve")
	}

	// Installers never materialize dev dependencies of transitive
	// packages, so resolving them would only produce phantom errors.
	mid, _ := project.DependencyPackages.Get("mid")
	if mid.DevDependencyPackages != nil {
		t.Error("transitive node must not resolve devDependencies")
	}
	if mid.Errors.HasKind(ErrDependenciesMissing) {
		t.Errorf("transitive node must not report phantom missing dev deps: %v", mid.Errors.Entries())
	}
}

func TestResolveDependencies_AliasedNameKeying(t *testing.T) {
	t.Parallel()

	// The install directory name is the declared name even when the
	// package's own manifest says otherwise; edges key by declared name.
	root := t.TempDir()
	writeManifest(t, root, `{"name": "app", "dependencies": {"alias": "*"}}`)
	writeManifest(t, filepath.Join(root, "node_modules", "alias"), `{"name": "actual-package"}`)

	g, err := LoadProject(root, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dep, ok := g.Project().DependencyPackages.Get("alias")
	if !ok {
		t.Fatal("aliased dependency not resolved under its declared name")
	}
	if dep.Name != "actual-package" {
		t.Errorf("resolved package keeps its own name, got %q", dep.Name)
	}
}
