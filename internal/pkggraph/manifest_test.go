// SPDX-License-Identifier: MPL-2.0

package pkggraph

import (
	"slices"
	"testing"
)

func TestParseManifest_Basic(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(`{
		"name": "my-addon",
		"version": "2.1.0",
		"main": "lib/entry.js",
		"keywords": ["faros-addon", "build"]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Name != "my-addon" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Version != "2.1.0" {
		t.Errorf("Version = %q", m.Version)
	}
	if m.Main != "lib/entry.js" {
		t.Errorf("Main = %q", m.Main)
	}
	if !m.IsAddonShaped() {
		t.Error("manifest with addon keyword should be addon shaped")
	}
	if m.Addon == nil {
		t.Fatal("Addon must never be nil after parsing")
	}
	if m.Dependencies != nil {
		t.Errorf("absent dependencies should be nil, got %v", m.Dependencies.Names())
	}
}

func TestParseManifest_InvalidJSON(t *testing.T) {
	t.Parallel()

	if _, err := ParseManifest([]byte(`{"name": }`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseManifest_AddonConfig(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(`{
		"name": "a",
		"faros-addon": {
			"main": "addon.js",
			"paths": ["lib/inner"],
			"before": ["b"],
			"after": ["c"]
		}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Addon.Main != "addon.js" {
		t.Errorf("Addon.Main = %q", m.Addon.Main)
	}
	if !slices.Equal(m.Addon.Paths, []string{"lib/inner"}) {
		t.Errorf("Addon.Paths = %v", m.Addon.Paths)
	}
	if !slices.Equal(m.Addon.Before, []string{"b"}) {
		t.Errorf("Addon.Before = %v", m.Addon.Before)
	}
	if !slices.Equal(m.Addon.After, []string{"c"}) {
		t.Errorf("Addon.After = %v", m.Addon.After)
	}
}

func TestParseManifest_DependencyOrder(t *testing.T) {
	t.Parallel()

	// Deliberately not alphabetical: declaration order must be preserved.
	m, err := ParseManifest([]byte(`{
		"name": "a",
		"dependencies": {"zeta": "^1.0.0", "alpha": "~2.0.0", "mid": "3.x"}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	if !slices.Equal(m.Dependencies.Names(), want) {
		t.Errorf("Names() = %v, want %v", m.Dependencies.Names(), want)
	}

	rng, ok := m.Dependencies.Range("alpha")
	if !ok || rng != "~2.0.0" {
		t.Errorf("Range(alpha) = %q, %v", rng, ok)
	}
	if _, ok := m.Dependencies.Range("missing"); ok {
		t.Error("Range(missing) should report false")
	}
}

func TestParseManifest_EmptyAndNullDependencySections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{"absent", `{"name": "a"}`},
		{"empty object", `{"name": "a", "dependencies": {}}`},
		{"null", `{"name": "a", "dependencies": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := ParseManifest([]byte(tt.json))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Dependencies != nil {
				t.Errorf("Dependencies should be nil, got %v", m.Dependencies.Names())
			}
			if m.Dependencies.Len() != 0 {
				t.Errorf("nil spec Len() should be 0")
			}
		})
	}
}

func TestParseManifest_DuplicateDependencyKeys(t *testing.T) {
	t.Parallel()

	// Later duplicate wins the range but the name is recorded once.
	m, err := ParseManifest([]byte(`{
		"name": "a",
		"dependencies": {"x": "^1.0.0", "x": "^2.0.0"}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(m.Dependencies.Names(), []string{"x"}) {
		t.Errorf("Names() = %v, want [x]", m.Dependencies.Names())
	}
	if rng, _ := m.Dependencies.Range("x"); rng != "^2.0.0" {
		t.Errorf("Range(x) = %q, want ^2.0.0", rng)
	}
}

func TestParseManifest_NonObjectDependencySection(t *testing.T) {
	t.Parallel()

	if _, err := ParseManifest([]byte(`{"name": "a", "dependencies": ["x"]}`)); err == nil {
		t.Fatal("expected error for array-valued dependencies")
	}
}

func TestManifest_EntryPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    *Manifest
		want string
	}{
		{
			"addon config main wins",
			&Manifest{Main: "lib/main.js", Addon: &AddonConfig{Main: "addon.js"}},
			"addon.js",
		},
		{
			"manifest main second",
			&Manifest{Main: "lib/main.js", Addon: &AddonConfig{}},
			"lib/main.js",
		},
		{
			"default last",
			&Manifest{Addon: &AddonConfig{}},
			DefaultEntryPoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.m.EntryPoint(); got != tt.want {
				t.Errorf("EntryPoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestManifest_IsAddonShaped(t *testing.T) {
	t.Parallel()

	shaped := &Manifest{Keywords: []string{"build", AddonKeyword}, Addon: &AddonConfig{}}
	if !shaped.IsAddonShaped() {
		t.Error("expected addon shaped")
	}

	plain := &Manifest{Keywords: []string{"build"}, Addon: &AddonConfig{}}
	if plain.IsAddonShaped() {
		t.Error("expected not addon shaped")
	}
}
