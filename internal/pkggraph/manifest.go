// SPDX-License-Identifier: MPL-2.0

package pkggraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

const (
	// AddonKeyword marks a package as a Faros addon when present in the
	// manifest's keywords list.
	AddonKeyword = "faros-addon"

	// AddonConfigKey is the manifest key holding addon-specific configuration.
	AddonConfigKey = "faros-addon"

	// DefaultEntryPoint is the addon entry file used when neither the addon
	// config nor the manifest declares one.
	DefaultEntryPoint = "index.js"
)

type (
	// AddonConfig is the addon-specific sub-object of a manifest (the
	// "faros-addon" key). It is guaranteed to be non-nil on every parsed
	// Manifest, created empty when absent, so callers can probe addon
	// fields without nil checks.
	AddonConfig struct {
		// Main overrides the addon entry file relative to the package root.
		Main string `json:"main,omitempty"`
		// Paths lists package-relative directories of in-repo sibling addons.
		Paths []string `json:"paths,omitempty"`
		// Before names addons this addon must load before.
		Before []string `json:"before,omitempty"`
		// After names addons this addon must load after.
		After []string `json:"after,omitempty"`
	}

	// DependencySpec is one raw dependency section of a manifest
	// ("dependencies" or "devDependencies"): declared names mapped to
	// version ranges, preserving the declaration order of the JSON object.
	// A nil *DependencySpec means the section was absent, null, or empty.
	DependencySpec struct {
		names  []string
		ranges map[string]string
	}

	// Manifest is one parsed package.json.
	Manifest struct {
		Name     string
		Version  string
		Main     string
		Keywords []string
		// Dependencies and DevDependencies are nil when the corresponding
		// section is absent or empty.
		Dependencies    *DependencySpec
		DevDependencies *DependencySpec
		// Addon is never nil after ParseManifest.
		Addon *AddonConfig
	}
)

// Len returns the number of declared names. Safe on a nil receiver.
func (s *DependencySpec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the declared names in declaration order. Safe on a nil receiver.
func (s *DependencySpec) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.names)
}

// Range returns the declared version range for name.
func (s *DependencySpec) Range(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	r, ok := s.ranges[name]
	return r, ok
}

// ParseManifest parses raw package.json bytes. The returned manifest always
// carries a non-nil Addon config.
func ParseManifest(data []byte) (*Manifest, error) {
	var aux struct {
		Name            string          `json:"name"`
		Version         string          `json:"version"`
		Main            string          `json:"main"`
		Keywords        []string        `json:"keywords"`
		Dependencies    json.RawMessage `json:"dependencies"`
		DevDependencies json.RawMessage `json:"devDependencies"`
		Addon           *AddonConfig    `json:"faros-addon"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFileName, err)
	}

	deps, err := decodeDependencySpec(aux.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("parsing %s dependencies: %w", ManifestFileName, err)
	}
	devDeps, err := decodeDependencySpec(aux.DevDependencies)
	if err != nil {
		return nil, fmt.Errorf("parsing %s devDependencies: %w", ManifestFileName, err)
	}

	m := &Manifest{
		Name:            aux.Name,
		Version:         aux.Version,
		Main:            aux.Main,
		Keywords:        aux.Keywords,
		Dependencies:    deps,
		DevDependencies: devDeps,
		Addon:           aux.Addon,
	}
	if m.Addon == nil {
		m.Addon = &AddonConfig{}
	}
	return m, nil
}

// emptyManifest returns the placeholder manifest attached to nodes whose
// package.json is missing or malformed, so that downstream code never sees
// a nil manifest or a nil addon config.
func emptyManifest() *Manifest {
	return &Manifest{Addon: &AddonConfig{}}
}

// IsAddonShaped reports whether the manifest declares the addon keyword.
func (m *Manifest) IsAddonShaped() bool {
	return slices.Contains(m.Keywords, AddonKeyword)
}

// EntryPoint returns the package-relative addon entry file: the addon
// config's main, then the manifest main, then DefaultEntryPoint.
func (m *Manifest) EntryPoint() string {
	if m.Addon.Main != "" {
		return m.Addon.Main
	}
	if m.Main != "" {
		return m.Main
	}
	return DefaultEntryPoint
}

// decodeDependencySpec decodes a raw dependency section while preserving the
// declaration order of its keys. encoding/json's map decoding discards key
// order, so the section is walked token by token instead. Absent, null, and
// empty sections all decode to nil.
func decodeDependencySpec(raw json.RawMessage) (*DependencySpec, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil // JSON null
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("dependency section must be an object, got %v", tok)
	}

	spec := &DependencySpec{ranges: make(map[string]string)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("dependency name must be a string, got %v", keyTok)
		}
		var rng string
		if err := dec.Decode(&rng); err != nil {
			return nil, fmt.Errorf("dependency %q: %w", name, err)
		}
		if _, dup := spec.ranges[name]; !dup {
			spec.names = append(spec.names, name)
		}
		spec.ranges[name] = rng
	}

	if spec.Len() == 0 {
		return nil, nil
	}
	return spec, nil
}
