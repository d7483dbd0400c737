// SPDX-License-Identifier: MPL-2.0

package addons

import (
	"fmt"
	"io"
	"path/filepath"

	"faros-cli/internal/pkggraph"
)

const (
	// RoleProject identifies a project node as the owner of a candidate list.
	RoleProject Role = "project"
	// RoleAddon identifies an addon node as the owner of a candidate list.
	RoleAddon Role = "addon"
)

type (
	// Role names the owner of a candidate list in invalid-addon warnings.
	Role string

	// AddonRecord is one immutable entry of an addon map: a resolved,
	// valid addon described by name, location, and manifest.
	AddonRecord struct {
		Name     string
		RealPath string
		Manifest *pkggraph.Manifest
	}

	// WarningSink receives human-readable warning lines. Optional
	// everywhere it appears; a nil sink discards.
	WarningSink interface {
		Line(s string)
	}

	// WriterSink adapts an io.Writer into a WarningSink.
	WriterSink struct {
		W io.Writer
	}
)

// Line writes one warning line followed by a newline.
func (s WriterSink) Line(line string) {
	fmt.Fprintln(s.W, line)
}

// BuildAddonMap converts the valid subset of candidates into an addon map
// keyed by name. Later candidates overwrite earlier ones holding the same
// name; that is the conflict-resolution policy, not an error. A supplied
// exclude predicate sees the derived record, not the raw package, and
// drops the entry when it returns true.
//
// Invalid candidates never enter the map. The first call per owner reports
// them through warnings (when non-nil), identifying the owner by role and
// each invalid candidate by its path relative to the owner; repeated calls
// are no-ops.
func BuildAddonMap(owner *pkggraph.Package, role Role, candidates []*pkggraph.Package, exclude func(AddonRecord) bool, warnings WarningSink) map[string]AddonRecord {
	out := make(map[string]AddonRecord)
	var invalid []*pkggraph.Package

	for _, candidate := range candidates {
		if !candidate.Valid {
			invalid = append(invalid, candidate)
			continue
		}
		rec := AddonRecord{
			Name:     candidate.Name,
			RealPath: candidate.RealPath,
			Manifest: candidate.Manifest,
		}
		if exclude != nil && exclude(rec) {
			continue
		}
		out[rec.Name] = rec
	}

	if len(invalid) > 0 && owner.MarkInvalidAddonsReported() && warnings != nil {
		warnings.Line(fmt.Sprintf("For %s at path %s:", role, owner.RealPath))
		for _, p := range invalid {
			warnings.Line(fmt.Sprintf("   Excluding invalid/malformed/missing addon at relative path '%s'", relativeTo(owner.RealPath, p.RealPath)))
		}
	}

	return out
}

func relativeTo(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}
