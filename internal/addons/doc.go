// SPDX-License-Identifier: MPL-2.0

// Package addons discovers Faros addons in a resolved package graph and
// turns them into loadable addon metadata.
//
// Discovery and map building are deliberately two steps. Aggregation
// ([DiscoverProjectAddons], [DiscoverAddonAddons]) merges candidate
// packages from several provenances into one ordered list, duplicates
// included. Map building ([BuildAddonMap]) then filters to the valid
// subset, keys records by name so that the last occurrence of a duplicate
// name wins, and reports invalid candidates exactly once per owning
// package through the warning sink.
//
// File organization:
//   - provenance.go: the tagged list/mapping candidate source variant
//   - discover.go: the two fixed discovery orderings
//   - map.go: addon records, map building, invalid-addon warnings
//   - loader.go: lazy, memoized addon constructor loading
//   - ordering.go: before/after load-order computation
package addons
