// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"faros-cli/internal/config"
	"faros-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `faros config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage faros configuration",
		Long: `Manage faros configuration.

Configuration is stored in:
  - Linux: ~/.config/faros/config.yaml
  - macOS: ~/Library/Application Support/faros/config.yaml
  - Windows: %APPDATA%\faros\config.yaml

Per-project settings live in a faros.toml file next to package.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), configLoadOptions())
			if err != nil {
				return err
			}

			fmt.Fprint(app.Stdout(), config.GenerateYAML(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, configLoadOptions())
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := AddonStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.Stdout(), headerStyle.Render("Current Configuration"))
	fmt.Fprintln(app.Stdout())

	// Derive config file path from the standard config directory since the provider
	// does not cache resolved paths; each call derives from the standard config directory.
	cfgDir, dirErr := config.ConfigDir()
	if dirErr == nil {
		cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		if fileExistsCheck(cfgPath) {
			fmt.Fprintf(app.Stdout(), "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Fprintf(app.Stdout(), "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	} else {
		fmt.Fprintf(app.Stdout(), "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.Stdout())

	// Show values
	fmt.Fprintf(app.Stdout(), "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.Stdout(), "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(app.Stdout(), "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(app.Stdout())
	fmt.Fprintf(app.Stdout(), "%s:\n", keyStyle.Render("discovery"))
	fmt.Fprintf(app.Stdout(), "  show_invalid_addons: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Discovery.ShowInvalidAddons)))

	fmt.Fprintf(app.Stdout(), "  internal_addon_paths:\n")
	if len(cfg.Discovery.InternalAddonPaths) == 0 {
		fmt.Fprintf(app.Stdout(), "    %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range cfg.Discovery.InternalAddonPaths {
			fmt.Fprintf(app.Stdout(), "    - %s\n", valueStyle.Render(string(p)))
		}
	}

	if cfg.Discovery.CLIPath != "" {
		fmt.Fprintf(app.Stdout(), "  cli_path: %s\n", valueStyle.Render(string(cfg.Discovery.CLIPath)))
	} else {
		fmt.Fprintf(app.Stdout(), "  cli_path: %s\n", SubtitleStyle.Render("(auto-detected)"))
	}

	return nil
}

func initConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"),
		filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
