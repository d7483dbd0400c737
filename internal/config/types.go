// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidAddonDirPath is the sentinel error wrapped by InvalidAddonDirPathError.
	ErrInvalidAddonDirPath = errors.New("invalid addon dir path")
	// ErrInvalidBinaryFilePath is returned when a BinaryFilePath value is whitespace-only.
	ErrInvalidBinaryFilePath = errors.New("invalid binary file path")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidDiscoveryConfig is the sentinel error wrapped by InvalidDiscoveryConfigError.
	ErrInvalidDiscoveryConfig = errors.New("invalid discovery config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// AddonDirPath represents a filesystem path to an addon package directory.
	// A valid path must be non-empty and not whitespace-only.
	AddonDirPath string

	// InvalidAddonDirPathError is returned when an AddonDirPath value is
	// empty or whitespace-only. It wraps ErrInvalidAddonDirPath for errors.Is().
	InvalidAddonDirPathError struct {
		Value AddonDirPath
	}

	// BinaryFilePath represents a filesystem path to a binary executable.
	// The zero value ("") is valid and means "use auto-detected binary".
	// Non-zero values must not be whitespace-only.
	BinaryFilePath string

	// InvalidBinaryFilePathError is returned when a BinaryFilePath value is
	// non-empty but whitespace-only.
	InvalidBinaryFilePathError struct {
		Value BinaryFilePath
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidDiscoveryConfigError is returned when a DiscoveryConfig has invalid fields.
	// It wraps ErrInvalidDiscoveryConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidDiscoveryConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Discovery configures addon discovery behavior
		Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// DiscoveryConfig configures how addon packages are discovered.
	DiscoveryConfig struct {
		// ShowInvalidAddons controls whether invalid-addon warnings are printed
		// when building addon maps (default: true).
		ShowInvalidAddons bool `json:"show_invalid_addons" mapstructure:"show_invalid_addons"`
		// InternalAddonPaths lists directories of addons shipped with the host
		// tool itself, resolved ahead of any dependency-declared addon.
		InternalAddonPaths []AddonDirPath `json:"internal_addon_paths" mapstructure:"internal_addon_paths"`
		// CLIPath overrides the location of the globally installed CLI package
		CLIPath BinaryFilePath `json:"cli_path" mapstructure:"cli_path"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the DiscoveryConfig has valid fields.
// It delegates to each InternalAddonPaths entry's IsValid() and to
// CLIPath.IsValid(). Bool fields need no validation.
func (c DiscoveryConfig) IsValid() (bool, []error) {
	var errs []error
	for _, p := range c.InternalAddonPaths {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.CLIPath.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidDiscoveryConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDiscoveryConfigError.
func (e *InvalidDiscoveryConfigError) Error() string {
	return fmt.Sprintf("invalid discovery config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidDiscoveryConfig for errors.Is() compatibility.
func (e *InvalidDiscoveryConfigError) Unwrap() error { return ErrInvalidDiscoveryConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to UI.IsValid() and Discovery.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Discovery.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the AddonDirPath.
func (p AddonDirPath) String() string { return string(p) }

// IsValid returns whether the AddonDirPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p AddonDirPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidAddonDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidAddonDirPathError.
func (e *InvalidAddonDirPathError) Error() string {
	return fmt.Sprintf("invalid addon dir path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidAddonDirPath for errors.Is() compatibility.
func (e *InvalidAddonDirPathError) Unwrap() error { return ErrInvalidAddonDirPath }

// String returns the string representation of the BinaryFilePath.
func (p BinaryFilePath) String() string { return string(p) }

// IsValid returns whether the BinaryFilePath is valid.
// The zero value ("") is valid (means "use auto-detected binary").
// Non-zero values must not be whitespace-only.
func (p BinaryFilePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidBinaryFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBinaryFilePathError.
func (e *InvalidBinaryFilePathError) Error() string {
	return fmt.Sprintf("invalid binary file path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidBinaryFilePath for errors.Is() compatibility.
func (e *InvalidBinaryFilePathError) Unwrap() error { return ErrInvalidBinaryFilePath }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Discovery: DiscoveryConfig{
			ShowInvalidAddons:  true,
			InternalAddonPaths: []AddonDirPath{},
			CLIPath:            "", // Will look up the CLI from the project's node_modules if empty
		},
	}
}
