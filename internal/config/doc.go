// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is loaded from ~/.config/rnplug/config.toml (or the XDG
// equivalent on Linux, ~/Library/Application Support/rnplug/config.toml on
// macOS, %APPDATA%\rnplug\config.toml on Windows). Built-in defaults cover
// every key, so the file is optional; when present it is decoded with
// go-toml and merged over the defaults. Settings cover the release output
// directory, archive layout, the collected script extension, and UI
// verbosity.
package config
