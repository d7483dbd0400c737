// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with YAML as the file format.
//
// Configuration is loaded from ~/.config/faros/config.yaml (or XDG equivalent on Linux,
// ~/Library/Application Support/faros/config.yaml on macOS, %APPDATA%\faros\config.yaml
// on Windows). The package provides type-safe configuration access covering UI settings
// and addon discovery behavior.
//
// Per-project settings live in a faros.toml workspace file next to the project's
// package.json; see LoadWorkspace.
package config
