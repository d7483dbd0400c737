// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"faros-cli/internal/config"
	"faros-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// projectDir overrides the project root (default: working directory)
	projectDir string

	// app is the production composition root shared by all command handlers.
	app = NewApp(Dependencies{})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "faros",
		Short: "The build tool for the Faros web framework",
		Long: TitleStyle.Render("faros") + SubtitleStyle.Render(" - The build tool for the Faros web framework") + `

faros resolves your project's installed packages into a dependency graph,
discovers Faros addons among them, and orchestrates builds with the
addons applied in a deterministic order.

Addons are npm packages carrying the 'faros-addon' keyword. They can come
from your dependencies, from directories bundled inside other addons, or
from the project itself.

` + SubtitleStyle.Render("Examples:") + `
  faros addons list           List the project's resolved addons
  faros addons list --ordered List addons in initialization order
  faros addons tree           Show the addon hierarchy
  faros doctor                Diagnose dependency and addon problems
  faros config show           Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/faros/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "project root directory (default is the working directory)")

	// Add subcommands
	rootCmd.AddCommand(newAddonsCommand(app))
	rootCmd.AddCommand(newDoctorCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, err := app.Config.Load(context.Background(), configLoadOptions())
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	if verbose {
		app.Logger().SetLevel(log.DebugLevel)
	}
}

// configLoadOptions translates the global --config flag into load options.
func configLoadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: cfgFile}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
