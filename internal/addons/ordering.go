// SPDX-License-Identifier: MPL-2.0

package addons

import (
	"slices"

	"faros-cli/internal/dag"

	"golang.org/x/exp/maps"
)

// LoadOrder computes the order in which the addons of a map should be
// initialized, honoring each addon's before/after declarations. Names
// referenced by before/after that are not present in the map are ignored.
// Addons without ordering constraints keep lexicographic order. Returns a
// *dag.CycleError when the declarations contradict each other.
func LoadOrder(m map[string]AddonRecord) ([]string, error) {
	names := maps.Keys(m)
	slices.Sort(names)

	g := dag.New()
	for _, name := range names {
		g.AddNode(name)
	}
	for _, name := range names {
		cfg := m[name].Manifest.Addon
		for _, other := range cfg.Before {
			if _, ok := m[other]; ok {
				g.AddEdge(name, other)
			}
		}
		for _, other := range cfg.After {
			if _, ok := m[other]; ok {
				g.AddEdge(other, name)
			}
		}
	}

	return g.TopologicalSort()
}
