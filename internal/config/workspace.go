// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"faros-cli/internal/issue"

	"github.com/pelletier/go-toml/v2"
)

// WorkspaceFileName is the name of the per-project workspace file, placed
// next to the project's package.json.
const WorkspaceFileName = "faros.toml"

type (
	// WorkspaceConfig holds per-project settings read from faros.toml.
	// The zero value is a valid, empty workspace configuration.
	WorkspaceConfig struct {
		// Addons configures addon selection for this project.
		Addons WorkspaceAddons `toml:"addons"`
	}

	// WorkspaceAddons configures addon selection for a project.
	WorkspaceAddons struct {
		// Exclude lists addon names to drop from the project's addon map.
		Exclude []string `toml:"exclude"`
		// Internal lists project-relative directories of addons that are
		// part of the project itself rather than installed dependencies.
		Internal []string `toml:"internal"`
	}
)

// Excludes reports whether the workspace excludes the addon with the given name.
func (w *WorkspaceConfig) Excludes(name string) bool {
	for _, n := range w.Addons.Exclude {
		if n == name {
			return true
		}
	}
	return false
}

// InternalPaths returns the workspace's internal addon directories resolved
// against the project root.
func (w *WorkspaceConfig) InternalPaths(root string) []string {
	if len(w.Addons.Internal) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.Addons.Internal))
	for _, dir := range w.Addons.Internal {
		if filepath.IsAbs(dir) {
			paths = append(paths, dir)
			continue
		}
		paths = append(paths, filepath.Join(root, dir))
	}
	return paths
}

// LoadWorkspace reads the faros.toml file from the given project root.
// A missing file is not an error; the zero-value configuration is returned.
func LoadWorkspace(root string) (*WorkspaceConfig, error) {
	path := filepath.Join(root, WorkspaceFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &WorkspaceConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}

	var ws WorkspaceConfig
	if err := toml.Unmarshal(data, &ws); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse workspace file").
			WithResource(path).
			WithSuggestion("Check that the file contains valid TOML syntax").
			WithSuggestion("See 'faros config --help' for the workspace file schema").
			Wrap(err).
			BuildError()
	}

	return &ws, nil
}
