// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"faros-cli/internal/addons"
	"faros-cli/internal/dag"
	"faros-cli/internal/issue"
	"faros-cli/internal/pkggraph"

	"github.com/spf13/cobra"
)

// addonListEntry is the JSON shape of one addon in `faros addons list --json`.
type addonListEntry struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Path    string `json:"path"`
}

// newAddonsCommand creates the `faros addons` command tree.
func newAddonsCommand(app *App) *cobra.Command {
	addonsCmd := &cobra.Command{
		Use:   "addons",
		Short: "Inspect the project's Faros addons",
		Long: `Inspect the project's Faros addons.

Addons are npm packages carrying the 'faros-addon' keyword. They are
discovered from the project's dependencies, from directories bundled
inside other addons, and from the project itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var (
		ordered  bool
		jsonMode bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the project's resolved addons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAddons(app, cmd, ordered, jsonMode)
		},
	}
	listCmd.Flags().BoolVar(&ordered, "ordered", false, "list addons in initialization order (honors before/after)")
	listCmd.Flags().BoolVar(&jsonMode, "json", false, "output as JSON")
	addonsCmd.AddCommand(listCmd)

	addonsCmd.AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Show the addon hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return treeAddons(app, cmd)
		},
	})

	return addonsCmd
}

// buildProjectAddonMap discovers and validates the project's top-level
// addons, applying workspace excludes and the configured warning policy.
func buildProjectAddonMap(app *App, session *projectSession) map[string]addons.AddonRecord {
	var sink addons.WarningSink
	if session.Cfg.Discovery.ShowInvalidAddons {
		sink = addons.WriterSink{W: app.Stderr()}
	}

	project := session.Graph.Project()
	candidates := addons.DiscoverProjectAddons(project)
	return addons.BuildAddonMap(project, addons.RoleProject, candidates, func(rec addons.AddonRecord) bool {
		return session.Workspace.Excludes(rec.Name)
	}, sink)
}

func listAddons(app *App, cmd *cobra.Command, ordered, jsonMode bool) error {
	session, err := app.openProject(cmd.Context(), projectDir)
	if err != nil {
		return err
	}

	m := buildProjectAddonMap(app, session)

	var names []string
	if ordered {
		names, err = addons.LoadOrder(m)
		if err != nil {
			var cycleErr *dag.CycleError
			if errors.As(err, &cycleErr) {
				rendered, _ := issue.Get(issue.AddonOrderingCycleId).Render("dark")
				fmt.Fprint(os.Stderr, rendered)
			}
			return err
		}
	} else {
		names = make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	if jsonMode {
		entries := make([]addonListEntry, 0, len(names))
		for _, name := range names {
			rec := m[name]
			entries = append(entries, addonListEntry{
				Name:    rec.Name,
				Version: rec.Manifest.Version,
				Path:    rec.RealPath,
			})
		}
		enc := json.NewEncoder(app.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(names) == 0 {
		fmt.Fprintln(app.Stdout(), SubtitleStyle.Render("No addons found."))
		return nil
	}

	header := "Addons"
	if ordered {
		header = "Addons (initialization order)"
	}
	fmt.Fprintln(app.Stdout(), TitleStyle.Render(header))
	for _, name := range names {
		rec := m[name]
		line := "  " + AddonStyle.Render(rec.Name)
		if rec.Manifest.Version != "" {
			line += " " + SuccessStyle.Render(rec.Manifest.Version)
		}
		line += " " + SubtitleStyle.Render(relativeOrAbs(session.Root, rec.RealPath))
		fmt.Fprintln(app.Stdout(), line)
	}
	return nil
}

func treeAddons(app *App, cmd *cobra.Command) error {
	session, err := app.openProject(cmd.Context(), projectDir)
	if err != nil {
		return err
	}

	project := session.Graph.Project()
	fmt.Fprintln(app.Stdout(), TitleStyle.Render(project.Name))

	m := buildProjectAddonMap(app, session)
	visited := map[string]bool{project.RealPath: true}
	printAddonSubtree(app, session, m, 1, visited)
	return nil
}

// printAddonSubtree renders one level of the addon hierarchy and recurses
// into each addon's own child addons. A visited set keyed by real path
// stops cyclic in-repo addon declarations.
func printAddonSubtree(app *App, session *projectSession, m map[string]addons.AddonRecord, depth int, visited map[string]bool) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	for _, name := range names {
		rec := m[name]
		line := indent + AddonStyle.Render(rec.Name)
		if rec.Manifest.Version != "" {
			line += " " + SubtitleStyle.Render(rec.Manifest.Version)
		}
		fmt.Fprintln(app.Stdout(), line)

		if visited[rec.RealPath] {
			continue
		}
		visited[rec.RealPath] = true

		node, ok := session.Graph.Lookup(rec.RealPath)
		if !ok {
			continue
		}
		children := childAddonMap(app, session, node)
		printAddonSubtree(app, session, children, depth+1, visited)
	}
}

// childAddonMap builds the validated addon map of a single addon node.
func childAddonMap(app *App, session *projectSession, addon *pkggraph.Package) map[string]addons.AddonRecord {
	var sink addons.WarningSink
	if session.Cfg.Discovery.ShowInvalidAddons {
		sink = addons.WriterSink{W: app.Stderr()}
	}
	candidates := addons.DiscoverAddonAddons(addon)
	return addons.BuildAddonMap(addon, addons.RoleAddon, candidates, nil, sink)
}

// relativeOrAbs renders target relative to base when possible.
func relativeOrAbs(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}
