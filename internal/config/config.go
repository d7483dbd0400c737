// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"faros-cli/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "faros"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
)

// ConfigDir returns the faros configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("discovery.show_invalid_addons", defaults.Discovery.ShowInvalidAddons)
	v.SetDefault("discovery.internal_addon_paths", defaults.Discovery.InternalAddonPaths)
	v.SetDefault("discovery.cli_path", defaults.Discovery.CLIPath)

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'faros config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadYAMLIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid YAML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'faros config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		// Get config directory
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		// Try to load the config file from the config directory
		yamlPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(yamlPath) {
			if err := loadYAMLIntoViper(v, yamlPath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(yamlPath).
					WithSuggestion("Check that the file contains valid YAML syntax").
					WithSuggestion("Verify the configuration values match the expected schema").
					WithSuggestion("See 'faros config --help' for configuration options").
					Wrap(err).
					BuildError()
			}
			resolvedPath = yamlPath
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate path constraints the YAML schema cannot express:
	// internal addon paths must be unique after normalization.
	if err := validateInternalAddonPaths(cfg.Discovery.InternalAddonPaths); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Remove the duplicate entry from discovery.internal_addon_paths").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadYAMLIntoViper reads a YAML file and merges its contents into Viper.
func loadYAMLIntoViper(v *viper.Viper, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	v.SetConfigType(ConfigFileExt)
	if err := v.MergeConfig(f); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// validateInternalAddonPaths checks that internal addon path entries are
// unique (normalized via filepath.Clean).
func validateInternalAddonPaths(paths []AddonDirPath) error {
	seen := make(map[string]int) // cleaned path -> index of first occurrence
	for i, p := range paths {
		cleanPath := filepath.Clean(string(p))
		if firstIdx, exists := seen[cleanPath]; exists {
			return fmt.Errorf("discovery.internal_addon_paths[%d]: duplicate path %q (same as discovery.internal_addon_paths[%d])", i, p, firstIdx)
		}
		seen[cleanPath] = i
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	defaults := DefaultConfig()
	yamlContent := GenerateYAML(defaults)

	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	yamlContent := GenerateYAML(cfg)

	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateYAML generates a YAML representation of the configuration
func GenerateYAML(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("# Faros Configuration File\n\n")

	// UI config
	sb.WriteString("ui:\n")
	sb.WriteString(fmt.Sprintf("  color_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("  verbose: %v\n", cfg.UI.Verbose))

	// Discovery config
	sb.WriteString("\ndiscovery:\n")
	sb.WriteString(fmt.Sprintf("  show_invalid_addons: %v\n", cfg.Discovery.ShowInvalidAddons))
	if len(cfg.Discovery.InternalAddonPaths) > 0 {
		sb.WriteString("  internal_addon_paths:\n")
		for _, p := range cfg.Discovery.InternalAddonPaths {
			sb.WriteString(fmt.Sprintf("    - %q\n", p))
		}
	}
	if cfg.Discovery.CLIPath != "" {
		sb.WriteString(fmt.Sprintf("  cli_path: %q\n", cfg.Discovery.CLIPath))
	}

	return sb.String()
}
