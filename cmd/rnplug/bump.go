// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PORTALSURFER/rls-rnplug/internal/issue"
	"github.com/PORTALSURFER/rls-rnplug/pkg/manifest"
	"github.com/PORTALSURFER/rls-rnplug/pkg/semver"

	"github.com/spf13/cobra"
)

var (
	// bumpWrite persists the bumped version to the manifest
	bumpWrite bool

	// bumpCmd computes (and optionally writes) the next version
	bumpCmd = &cobra.Command{
		Use:   "bump [path]",
		Short: "Print the bumped version without building a release",
		Long: `Parse the manifest in the given directory (default: the current
directory), compute the bumped version, and print it.

By default nothing is written; pass --write to persist the bumped
version to the manifest.

Examples:
  rnplug bump
  rnplug bump ./my-tool --write`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBump,
	}
)

func init() {
	bumpCmd.Flags().BoolVarP(&bumpWrite, "write", "w", false, "write the bumped version back to the manifest")
}

func runBump(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	manifestPath := filepath.Join(dir, manifest.FileName)

	text, err := os.ReadFile(manifestPath)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("read manifest").
			WithResource(manifestPath).
			WithSuggestion("Run 'rnplug init' to create a starter manifest").
			Wrap(err).
			BuildError()
	}

	m, err := manifest.Parse(text)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse manifest").
			WithResource(manifestPath).
			WithSuggestion("Ensure the manifest declares both <Id> and <Version> elements").
			Wrap(err).
			BuildError()
	}

	newVersion, err := semver.Bump(m.Version)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("bump version").
			WithResource(manifestPath).
			WithSuggestion("Use a version of the form major.minor.patch, optionally with -prerelease or +build").
			Wrap(err).
			BuildError()
	}

	fmt.Printf("%s %s → %s\n", PathStyle.Render(m.ID), m.Version, PathStyle.Render(newVersion))

	if !bumpWrite {
		return nil
	}

	patched, err := manifest.PatchVersion(text, m.Version, newVersion)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("patch manifest").
			WithResource(manifestPath).
			WithSuggestion("The <Version> element formatting differs from the parsed value; fix it and rerun").
			Wrap(err).
			BuildError()
	}
	if err := os.WriteFile(manifestPath, patched, 0o644); err != nil {
		return issue.WrapWithOperation(err, "write manifest")
	}

	fmt.Printf("%s Updated %s\n", SuccessStyle.Render("✓"), PathStyle.Render(manifestPath))
	return nil
}
