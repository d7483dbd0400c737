// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"faros-cli/internal/config"
	"faros-cli/internal/issue"
	"faros-cli/internal/pkggraph"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer — all Cobra command handlers receive an App
	// reference and delegate loading through its service interfaces.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply mock implementations to isolate specific service behavior.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
		Logger *log.Logger
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// projectSession bundles everything a project-scoped command needs:
	// the effective configuration, the workspace file, the project root,
	// and the resolved package graph.
	projectSession struct {
		Cfg       *config.Config
		Workspace *config.WorkspaceConfig
		Root      string
		Graph     *pkggraph.Graph
	}
)

// NewApp builds an App, substituting production defaults for nil dependencies.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		logger: deps.Logger,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.logger == nil {
		app.logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	}
	return app
}

// Stdout returns the writer for normal command output.
func (a *App) Stdout() io.Writer { return a.stdout }

// Stderr returns the writer for warnings and diagnostics.
func (a *App) Stderr() io.Writer { return a.stderr }

// Logger returns the application logger.
func (a *App) Logger() *log.Logger { return a.logger }

// openProject loads configuration, the workspace file, and the package
// graph for the project rooted at dir (or the working directory when dir
// is empty).
func (a *App) openProject(ctx context.Context, dir string) (*projectSession, error) {
	cfg, err := a.Config.Load(ctx, configLoadOptions())
	if err != nil {
		return nil, err
	}

	root := dir
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(filepath.Join(root, pkggraph.ManifestFileName)); statErr != nil {
		rendered, _ := issue.Get(issue.ProjectNotFoundId).Render("dark")
		fmt.Fprint(a.stderr, rendered)
		return nil, fmt.Errorf("no %s found in %s", pkggraph.ManifestFileName, root)
	}

	ws, err := config.LoadWorkspace(root)
	if err != nil {
		return nil, err
	}

	internal := make([]string, 0, len(cfg.Discovery.InternalAddonPaths))
	for _, p := range cfg.Discovery.InternalAddonPaths {
		internal = append(internal, string(p))
	}
	internal = append(internal, ws.InternalPaths(root)...)

	a.logger.Debug("loading package graph", "root", root, "internal_addons", len(internal))

	graph, err := pkggraph.LoadProject(root, pkggraph.LoadOptions{
		CLIPath:            string(cfg.Discovery.CLIPath),
		InternalAddonPaths: internal,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("package graph loaded", "packages", len(graph.Packages()))

	return &projectSession{
		Cfg:       cfg,
		Workspace: ws,
		Root:      root,
		Graph:     graph,
	}, nil
}
