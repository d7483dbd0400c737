// SPDX-License-Identifier: MPL-2.0

package pkggraph

import (
	"slices"
	"testing"
)

func TestPackageSet_InsertionOrder(t *testing.T) {
	t.Parallel()

	s := NewPackageSet()
	s.Add("zeta", &Package{Name: "zeta"})
	s.Add("alpha", &Package{Name: "alpha"})
	s.Add("mid", &Package{Name: "mid"})

	want := []string{"zeta", "alpha", "mid"}
	if !slices.Equal(s.Names(), want) {
		t.Errorf("Names() = %v, want %v", s.Names(), want)
	}

	var iterated []string
	for name := range s.All() {
		iterated = append(iterated, name)
	}
	if !slices.Equal(iterated, want) {
		t.Errorf("All() order = %v, want %v", iterated, want)
	}
}

func TestPackageSet_ReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	s := NewPackageSet()
	s.Add("a", &Package{Name: "first"})
	s.Add("b", &Package{Name: "b"})
	s.Add("a", &Package{Name: "second"})

	if !slices.Equal(s.Names(), []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", s.Names())
	}
	p, ok := s.Get("a")
	if !ok || p.Name != "second" {
		t.Errorf("Get(a) = %v, %v; want replacement package", p, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestPackageSet_NilReceiver(t *testing.T) {
	t.Parallel()

	var s *PackageSet
	if s.Len() != 0 {
		t.Error("nil set Len() should be 0")
	}
	if s.Names() != nil {
		t.Error("nil set Names() should be nil")
	}
	if _, ok := s.Get("x"); ok {
		t.Error("nil set Get() should report false")
	}
	for range s.All() {
		t.Fatal("nil set All() should not yield")
	}
}

func TestNodeModulesIndex_NilReceiver(t *testing.T) {
	t.Parallel()

	var idx *NodeModulesIndex
	if idx.FindPackage("x") != nil {
		t.Error("nil index FindPackage() should return nil")
	}
	if idx.Len() != 0 {
		t.Error("nil index Len() should be 0")
	}
}

func TestMemo_FillOnce(t *testing.T) {
	t.Parallel()

	var m Memo
	if _, ok := m.Get(); ok {
		t.Error("empty memo should report not filled")
	}
	if !m.Fill("first") {
		t.Error("first Fill() should succeed")
	}
	if m.Fill("second") {
		t.Error("second Fill() should be rejected")
	}
	v, ok := m.Get()
	if !ok || v != "first" {
		t.Errorf("Get() = %v, %v; want first, true", v, ok)
	}
}

func TestPackage_MarkInvalidAddonsReported(t *testing.T) {
	t.Parallel()

	p := &Package{}
	if !p.MarkInvalidAddonsReported() {
		t.Error("first call should report true")
	}
	if p.MarkInvalidAddonsReported() {
		t.Error("second call should report false")
	}
}

func TestErrorList(t *testing.T) {
	t.Parallel()

	var l ErrorList
	if l.Len() != 0 {
		t.Errorf("empty list Len() = %d", l.Len())
	}
	if l.HasKind(ErrManifestParse) {
		t.Error("empty list should have no kinds")
	}

	l.Add(ErrDependenciesMissing, []string{"a", "b"})
	l.Add(ErrManifestParse, "boom")

	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	if !l.HasKind(ErrDependenciesMissing) {
		t.Error("HasKind(ErrDependenciesMissing) should be true")
	}
	entries := l.Entries()
	if entries[0].Kind != ErrDependenciesMissing || entries[1].Kind != ErrManifestParse {
		t.Errorf("Entries() order wrong: %v", entries)
	}

	// Entries returns a copy.
	entries[0].Kind = ErrAddonMainMissing
	if l.Entries()[0].Kind != ErrDependenciesMissing {
		t.Error("Entries() must return a copy")
	}
}
