// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for rnplug.
//
// This package implements the Cobra command hierarchy for the rnplug CLI:
// the root command, the release pipeline command, the version bump helper,
// manifest scaffolding, and configuration management.
package cmd
