// SPDX-License-Identifier: MPL-2.0

package addons

import "faros-cli/internal/pkggraph"

// HostToolName is the npm package name of the Faros build tool itself. It
// appears in addon dependency sections (addons build against it) but must
// never be discovered as an addon.
const HostToolName = "faros-cli"

// notAddonShaped is the exclusion predicate for dependency-valued
// provenances: anything without the addon keyword is not a candidate.
// In-repo and internal provenances are addon-shaped by construction and
// are not filtered.
func notAddonShaped(p *pkggraph.Package) bool {
	return !p.IsAddonShaped()
}

// DiscoverAddonAddons collects the child addon candidates of an addon's
// own node, in fixed order: runtime dependencies that are addons (the host
// tool excluded by name), then in-repo sibling addons.
func DiscoverAddonAddons(addon *pkggraph.Package) []*pkggraph.Package {
	deps := FromMapping(addon.DependencyPackages).WithExclude(func(p *pkggraph.Package) bool {
		return p.Name == HostToolName || notAddonShaped(p)
	})
	return Collect(deps, FromList(addon.InRepoAddons))
}

// DiscoverProjectAddons collects a project's top-level addon candidates,
// in fixed order: the project itself when its own manifest is
// addon-shaped, the host tool's in-repo addons, internally bundled addons,
// runtime dependencies that are addons, dev dependencies that are addons,
// and in-repo sibling addons. Later provenances win name conflicts once
// the candidates are keyed into a map.
func DiscoverProjectAddons(project *pkggraph.Package) []*pkggraph.Package {
	var provenances []Provenance

	if project.IsAddonShaped() {
		provenances = append(provenances, FromList([]*pkggraph.Package{project}))
	}
	if project.CLIInfo != nil {
		provenances = append(provenances, FromList(project.CLIInfo.InRepoAddons))
	}
	provenances = append(provenances,
		FromList(project.InternalAddons),
		FromMapping(project.DependencyPackages).WithExclude(notAddonShaped),
		FromMapping(project.DevDependencyPackages).WithExclude(notAddonShaped),
		FromList(project.InRepoAddons),
	)

	return Collect(provenances...)
}
