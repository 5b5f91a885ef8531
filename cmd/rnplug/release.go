// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PORTALSURFER/rls-rnplug/internal/config"
	"github.com/PORTALSURFER/rls-rnplug/internal/issue"
	"github.com/PORTALSURFER/rls-rnplug/pkg/manifest"
	"github.com/PORTALSURFER/rls-rnplug/pkg/release"
	"github.com/PORTALSURFER/rls-rnplug/pkg/semver"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// releaseLayout overrides the configured archive layout
	releaseLayout string
	// releaseOutputDir overrides the configured release directory
	releaseOutputDir string
	// releaseDryRun computes the plan without writing anything
	releaseDryRun bool
	// releaseShowNotes renders the tool's README before packing
	releaseShowNotes bool

	// releaseCmd runs the full release pipeline
	releaseCmd = &cobra.Command{
		Use:   "release [path]",
		Short: "Bump the manifest version and build the .xrnx archive",
		Long: `Run a full release of the Renoise tool in the given directory
(default: the current directory).

The release bumps the manifest's minor version, writes the patched
manifest back, collects the tool's Lua sources and readme, and packs
everything into <release-dir>/<Id>.xrnx.

Note: the manifest is written before the archive is built. If archiving
fails, the bumped manifest stays on disk; re-running the release (and
bumping again) is safe.

Examples:
  rnplug release
  rnplug release ./my-tool --layout flat
  rnplug release --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRelease,
	}
)

func init() {
	releaseCmd.Flags().StringVar(&releaseLayout, "layout", "", "archive layout: wrapped or flat (default from config)")
	releaseCmd.Flags().StringVarP(&releaseOutputDir, "output-dir", "o", "", "release output directory (default from config)")
	releaseCmd.Flags().BoolVar(&releaseDryRun, "dry-run", false, "print the release plan without writing anything")
	releaseCmd.Flags().BoolVar(&releaseShowNotes, "notes", false, "render the tool's README before packing")
}

func runRelease(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := release.Options{
		Dir:        dir,
		ReleaseDir: cfg.ReleaseDir,
		Layout:     release.Layout(cfg.Layout),
		ScriptExt:  string(cfg.ScriptExt),
		DryRun:     releaseDryRun,
		Logger:     newReleaseLogger(),
	}
	if releaseLayout != "" {
		opts.Layout = release.Layout(releaseLayout)
	}
	if releaseOutputDir != "" {
		opts.ReleaseDir = releaseOutputDir
	}

	fmt.Println(TitleStyle.Render("Release Tool"))

	if releaseShowNotes {
		if err := showReleaseNotes(dir); err != nil {
			fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		}
	}

	result, err := release.Run(opts)
	if err != nil {
		return &ExitError{Code: 1, Err: releaseError(err, result, dir)}
	}

	if releaseDryRun {
		fmt.Printf("%s Dry run: would bump %s to %s\n",
			SubtitleStyle.Render("→"), PathStyle.Render(result.OldVersion), PathStyle.Render(result.NewVersion))
		for _, name := range result.Files {
			fmt.Printf("  %s\n", SubtitleStyle.Render(name))
		}
		return nil
	}

	info, err := os.Stat(result.ArchivePath)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}

	fmt.Printf("%s Release created\n", SuccessStyle.Render("✓"))
	fmt.Println()
	fmt.Printf("  Version: %s → %s\n", PathStyle.Render(result.OldVersion), PathStyle.Render(result.NewVersion))
	fmt.Printf("  Output:  %s\n", PathStyle.Render(result.ArchivePath))
	fmt.Printf("  Size:    %s (%d files)\n", formatFileSize(info.Size()), len(result.Files))

	return nil
}

// newReleaseLogger builds the progress logger; --verbose raises the level.
func newReleaseLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "rnplug",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// releaseError turns a pipeline failure into an actionable diagnostic, and
// makes the at-least-once manifest mutation visible when it has happened.
func releaseError(err error, result *release.Result, dir string) error {
	ctx := issue.NewErrorContext().Wrap(err)

	switch {
	case errors.Is(err, release.ErrManifestNotFound):
		ctx.WithOperation("find manifest").
			WithResource(filepath.Join(dir, manifest.FileName)).
			WithSuggestion("Run the release from the tool directory (next to manifest.xml)").
			WithSuggestion("Run 'rnplug init' to create a starter manifest")
	case errors.Is(err, manifest.ErrMissingField), errors.Is(err, manifest.ErrMalformedDocument):
		ctx.WithOperation("parse manifest").
			WithResource(filepath.Join(dir, manifest.FileName)).
			WithSuggestion("Ensure the manifest declares both <Id> and <Version> elements")
	case errors.Is(err, semver.ErrInvalidVersion):
		ctx.WithOperation("bump version").
			WithResource(filepath.Join(dir, manifest.FileName)).
			WithSuggestion("Use a version of the form major.minor.patch, optionally with -prerelease or +build")
	case errors.Is(err, manifest.ErrPatchMismatch):
		ctx.WithOperation("patch manifest").
			WithResource(filepath.Join(dir, manifest.FileName)).
			WithSuggestion("The <Version> element formatting differs from the parsed value; fix it and rerun")
	default:
		ctx.WithOperation("build release")
	}

	if result != nil && result.ManifestPatched {
		ctx.WithSuggestion(fmt.Sprintf(
			"Note: the manifest was already bumped to %s; re-running the release is safe and will bump again",
			result.NewVersion))
	}

	return ctx.BuildError()
}

// showReleaseNotes renders the tool's README to the terminal.
func showReleaseNotes(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		if os.IsNotExist(err) {
			data, err = os.ReadFile(filepath.Join(dir, "readme.md"))
		}
		if err != nil {
			return fmt.Errorf("no readme to render: %w", err)
		}
	}

	out, err := glamour.Render(string(data), "dark")
	if err != nil {
		return fmt.Errorf("failed to render readme: %w", err)
	}
	fmt.Print(out)
	return nil
}

// formatFileSize formats a file size in bytes to a human-readable string
func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
