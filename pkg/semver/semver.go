// SPDX-License-Identifier: MPL-2.0

// Package semver parses and increments the version strings found in Renoise
// tool manifests.
//
// Manifest versions are not guaranteed to be strict three-component semantic
// versions: real tools in the wild declare "2", "1.4", or "1.2.3-beta". This
// package normalizes short forms by zero-padding to three components before
// parsing, and renders back to canonical major.minor.patch[-pre][+build] form.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid version")

// versionRegex matches strict three-component semantic version strings with
// optional pre-release and build metadata suffixes.
var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z\-.]+))?(?:\+([0-9A-Za-z\-.]+))?$`)

type (
	// Version represents a parsed semantic version.
	Version struct {
		Major      int
		Minor      int
		Patch      int
		Prerelease string
		Build      string
	}

	// InvalidVersionError is returned when a version string cannot be parsed
	// even after normalization. It wraps ErrInvalidVersion for errors.Is().
	InvalidVersionError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: expected major.minor.patch with optional -prerelease/+build suffix", e.Value)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error {
	return ErrInvalidVersion
}

// Parse parses a strict three-component version string into a Version.
// Short forms like "1.2" are rejected; use Normalize first for lenient input.
func Parse(s string) (*Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, &InvalidVersionError{Value: s}
	}

	v := &Version{}

	var err error
	v.Major, err = strconv.Atoi(matches[1])
	if err != nil {
		return nil, &InvalidVersionError{Value: s}
	}
	v.Minor, err = strconv.Atoi(matches[2])
	if err != nil {
		return nil, &InvalidVersionError{Value: s}
	}
	v.Patch, err = strconv.Atoi(matches[3])
	if err != nil {
		return nil, &InvalidVersionError{Value: s}
	}

	v.Prerelease = matches[4]
	v.Build = matches[5]

	return v, nil
}

// Normalize zero-pads a version string with fewer than three numeric
// components to exactly three ("1" becomes "1.0.0", "1.2" becomes "1.2.0").
// Any pre-release or build suffix is split off before padding and reattached
// unchanged. Strings with three or more components are returned as-is so that
// a following strict Parse reports the real problem.
func Normalize(s string) string {
	base := s
	suffix := ""
	if idx := strings.IndexAny(s, "-+"); idx >= 0 {
		base = s[:idx]
		suffix = s[idx:]
	}

	parts := strings.Split(base, ".")

	// A trailing dot produces an empty final component; ignore it.
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	if len(parts) >= 3 {
		return s
	}

	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	return strings.Join(parts, ".") + suffix
}

// String renders the version in canonical major.minor.patch[-pre][+build] form.
func (v *Version) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		sb.WriteString("-")
		sb.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		sb.WriteString("+")
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// Bump increments the version's minor component in place. The patch component
// resets to zero only when neither a pre-release nor build metadata is present;
// otherwise it is left as parsed. Suffixed versions keep their patch so the
// printed version stays recognizable next to its pre-release line.
func (v *Version) Bump() {
	v.Minor++
	if v.Prerelease == "" && v.Build == "" {
		v.Patch = 0
	}
}

// Bump parses a version string (leniently, via Normalize on strict-parse
// failure), increments the minor component, and renders the canonical result.
//
//	Bump("2")            == "2.1.0"
//	Bump("1.4")          == "1.5.0"
//	Bump("1.2.3-beta")   == "1.3.3-beta"
//	Bump("1.2.3+build5") == "1.3.3+build5"
//
// A string that still fails to parse after normalization (four or more
// components, non-numeric components) yields an InvalidVersionError.
func Bump(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		v, err = Parse(Normalize(s))
	}
	if err != nil {
		return "", &InvalidVersionError{Value: s}
	}

	v.Bump()
	return v.String(), nil
}
