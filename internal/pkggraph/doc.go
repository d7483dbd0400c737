// SPDX-License-Identifier: MPL-2.0

// Package pkggraph resolves the directed graph of installed npm-style
// packages rooted at a Faros project directory.
//
// The graph is built in two strictly separated phases. Phase one
// materializes a Package node for every distinct real path reachable from
// the project (the project itself, everything under node_modules trees,
// in-repo addons, internal addons, and the host tool). Phase two resolves
// declared dependency names to the concrete Package instances a Node-style
// module lookup would select. Only a fully resolved graph is ever handed
// to callers: [LoadProject] runs both phases and returns a [Graph], and
// the edge resolver is unexported, so resolving against an
// un-materialized graph is a construction-level impossibility rather than
// a caller obligation.
//
// File organization:
//   - manifest.go: package.json parsing ([Manifest], [DependencySpec])
//   - package.go: the [Package] node and its memo slot
//   - packageset.go: insertion-ordered name-to-package mapping
//   - nodemodules.go: per-package node_modules index
//   - store.go: node materialization and the ascending-directory lookup
//   - resolver.go: dependency edge resolution
package pkggraph
