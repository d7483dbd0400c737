// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"faros-cli/internal/addons"
	"faros-cli/internal/dag"
	"faros-cli/internal/issue"
	"faros-cli/internal/pkggraph"

	"github.com/spf13/cobra"
)

// newDoctorCommand creates the `faros doctor` command.
func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose dependency and addon problems",
		Long: `Diagnose dependency and addon problems.

doctor resolves the full package graph and reports every defect it finds:
unparseable manifests, addons with missing entry files, dependencies that
cannot be resolved, and contradictory addon ordering declarations.

Exits with status 1 when any problem is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(app, cmd)
		},
	}
}

func runDoctor(app *App, cmd *cobra.Command) error {
	session, err := app.openProject(cmd.Context(), projectDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.Stdout(), TitleStyle.Render("Checking project at ")+AddonStyle.Render(session.Root))
	fmt.Fprintln(app.Stdout())

	problems := 0
	for _, p := range session.Graph.Packages() {
		problems += reportNodeProblems(app, session, p)
	}

	// Ordering contradictions only surface when the map is topologically
	// sorted, so check it explicitly.
	m := buildProjectAddonMap(app, session)
	if _, err := addons.LoadOrder(m); err != nil {
		problems++
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			rendered, _ := issue.Get(issue.AddonOrderingCycleId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
		}
		fmt.Fprintln(app.Stdout(), ErrorStyle.Render("✗ ")+err.Error())
	}

	fmt.Fprintln(app.Stdout())
	if problems == 0 {
		fmt.Fprintf(app.Stdout(), "%s No problems found (%d packages checked, %d addons).\n",
			SuccessStyle.Render("✓"), len(session.Graph.Packages()), len(m))
		return nil
	}

	fmt.Fprintf(app.Stdout(), "%s %d problem(s) found.\n", ErrorStyle.Render("✗"), problems)
	return &ExitError{Code: 1, Err: fmt.Errorf("%d problem(s) found", problems)}
}

// reportNodeProblems prints each error recorded on a node and returns the
// number of problems reported.
func reportNodeProblems(app *App, session *projectSession, p *pkggraph.Package) int {
	entries := p.Errors.Entries()
	if len(entries) == 0 {
		return 0
	}

	location := relativeOrAbs(session.Root, p.RealPath)
	for _, entry := range entries {
		switch entry.Kind {
		case pkggraph.ErrDependenciesMissing:
			names, _ := entry.Data.([]string)
			fmt.Fprintf(app.Stdout(), "%s %s: missing dependencies: %s\n",
				ErrorStyle.Render("✗"), AddonStyle.Render(p.Name), strings.Join(names, ", "))
			fmt.Fprintf(app.Stdout(), "  %s\n", SubtitleStyle.Render("at "+location))
		case pkggraph.ErrAddonMainMissing:
			fmt.Fprintf(app.Stdout(), "%s %s: addon entry file %v not found\n",
				ErrorStyle.Render("✗"), AddonStyle.Render(p.Name), entry.Data)
			fmt.Fprintf(app.Stdout(), "  %s\n", SubtitleStyle.Render("at "+location))
		case pkggraph.ErrManifestParse:
			fmt.Fprintf(app.Stdout(), "%s %s: unparseable package.json: %v\n",
				ErrorStyle.Render("✗"), AddonStyle.Render(p.Name), entry.Data)
			fmt.Fprintf(app.Stdout(), "  %s\n", SubtitleStyle.Render("at "+location))
		default:
			fmt.Fprintf(app.Stdout(), "%s %s: %s: %v\n",
				ErrorStyle.Render("✗"), AddonStyle.Render(p.Name), entry.Kind, entry.Data)
		}
	}
	return len(entries)
}
