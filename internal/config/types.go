// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// LayoutWrapped nests archive entries under a single top-level directory
	// named after the archive. The directory-wrapped form matches what the
	// Renoise tool browser expects when an .xrnx is unpacked by hand.
	LayoutWrapped Layout = "wrapped"
	// LayoutFlat places archive entries at the archive root.
	LayoutFlat Layout = "flat"
)

var (
	// ErrInvalidLayout is returned when a Layout value is not recognized.
	ErrInvalidLayout = errors.New("invalid archive layout")
	// ErrInvalidScriptExt is returned when a ScriptExt value is malformed.
	ErrInvalidScriptExt = errors.New("invalid script extension")
)

type (
	// Layout specifies the archive's internal structure. Defined locally to
	// avoid coupling config to pkg/release; the command layer casts to
	// release.Layout at the boundary.
	Layout string

	// InvalidLayoutError is returned when a Layout value is not recognized.
	// It wraps ErrInvalidLayout for errors.Is() compatibility.
	InvalidLayoutError struct {
		Value Layout
	}

	// ScriptExt is the file extension of collectable source scripts,
	// including the leading dot (e.g. ".lua").
	ScriptExt string

	// InvalidScriptExtError is returned when a ScriptExt value does not
	// start with a dot or is only a dot. It wraps ErrInvalidScriptExt.
	InvalidScriptExtError struct {
		Value ScriptExt
	}

	// UIConfig holds terminal output settings.
	UIConfig struct {
		// Verbose enables debug-level progress output.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
	}

	// Config is the tool's effective configuration after defaults and the
	// optional config file have been merged.
	Config struct {
		// ReleaseDir is the archive output directory, relative to the tool
		// directory unless absolute.
		ReleaseDir string `mapstructure:"release_dir" toml:"release_dir"`
		// Layout selects the archive's internal structure.
		Layout Layout `mapstructure:"layout" toml:"layout"`
		// ScriptExt is the source-script extension to collect.
		ScriptExt ScriptExt `mapstructure:"script_ext" toml:"script_ext"`
		// UI holds terminal output settings.
		UI UIConfig `mapstructure:"ui" toml:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid archive layout %q (valid: %q, %q)", string(e.Value), LayoutWrapped, LayoutFlat)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *InvalidLayoutError) Unwrap() error {
	return ErrInvalidLayout
}

// Validate reports whether the layout is a recognized value.
func (l Layout) Validate() error {
	switch l {
	case LayoutWrapped, LayoutFlat:
		return nil
	default:
		return &InvalidLayoutError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidScriptExtError) Error() string {
	return fmt.Sprintf("invalid script extension %q: must start with a dot and name an extension (e.g. \".lua\")", string(e.Value))
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *InvalidScriptExtError) Unwrap() error {
	return ErrInvalidScriptExt
}

// Validate reports whether the extension is usable as a file name suffix.
func (s ScriptExt) Validate() error {
	if !strings.HasPrefix(string(s), ".") || len(s) < 2 {
		return &InvalidScriptExtError{Value: s}
	}
	return nil
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ReleaseDir: "release",
		Layout:     LayoutWrapped,
		ScriptExt:  ".lua",
		UI:         UIConfig{Verbose: false},
	}
}

// Validate checks the merged configuration for values the TOML decoding
// cannot reject on its own.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ReleaseDir) == "" {
		return errors.New("release_dir must not be empty")
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	return c.ScriptExt.Validate()
}
