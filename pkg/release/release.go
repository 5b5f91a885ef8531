// SPDX-License-Identifier: MPL-2.0

// Package release assembles versioned distributable archives for Renoise
// tools. One Run performs one release end-to-end: bump the manifest version,
// persist the patched manifest, gather the tool's sources, and pack them into
// a <Id>.xrnx archive under the release directory.
//
// The run is single-threaded and performs blocking, sequential filesystem
// I/O; it assumes exclusive access to the tool directory and takes no locks.
// The manifest write is deliberately at-least-once: a failure during archive
// assembly leaves the bumped manifest on disk, and re-running the release
// (bumping again) is valid application behavior rather than an error to
// detect. Result.ManifestPatched tells callers whether that side effect has
// already happened when they receive an error.
package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PORTALSURFER/rls-rnplug/pkg/manifest"
	"github.com/PORTALSURFER/rls-rnplug/pkg/semver"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

const (
	// ArchiveExt is the Renoise tool archive extension (a ZIP container).
	ArchiveExt = ".xrnx"
	// DefaultReleaseDir is the output directory relative to the tool directory.
	DefaultReleaseDir = "release"
	// DefaultScriptExt is the source-script extension collected by default.
	DefaultScriptExt = ".lua"
)

// ErrManifestNotFound is returned when the tool directory has no manifest.xml.
// It is checked before anything is created or mutated.
var ErrManifestNotFound = errors.New("manifest.xml not found")

type (
	// Options configures a single release run. Zero values select the
	// defaults noted on each field.
	Options struct {
		// Dir is the tool directory to release. Default ".".
		Dir string
		// ReleaseDir is the output directory, relative to Dir when not
		// absolute. Default DefaultReleaseDir.
		ReleaseDir string
		// Layout selects the archive's internal structure. Default LayoutWrapped.
		Layout Layout
		// ScriptExt is the source-script extension to collect. Default
		// DefaultScriptExt.
		ScriptExt string
		// DryRun computes the plan without writing anything.
		DryRun bool
		// Logger receives progress output. Default log.Default().
		Logger *log.Logger
	}

	// Result describes a completed (or, on error, partially completed) run.
	Result struct {
		// Identifier is the tool Id from the manifest.
		Identifier string
		// OldVersion and NewVersion are the pre- and post-bump version strings.
		OldVersion string
		NewVersion string
		// ArchivePath is the final archive location. Empty on dry runs and on
		// failures before placement.
		ArchivePath string
		// Files lists the archive entry names in write order.
		Files []string
		// ManifestPatched is true once the bumped manifest has been written
		// back to disk. When Run returns an error alongside a Result with
		// this set, the caller must report that the manifest was mutated.
		ManifestPatched bool
	}
)

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.ReleaseDir == "" {
		opts.ReleaseDir = DefaultReleaseDir
	}
	if opts.Layout == "" {
		opts.Layout = LayoutWrapped
	}
	if opts.ScriptExt == "" {
		opts.ScriptExt = DefaultScriptExt
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return opts
}

// Run performs one release. Steps, each a hard dependency on the previous:
// preflight the manifest's existence, parse it, bump the version, patch and
// persist the manifest text, collect the release file set (using the
// post-patch manifest bytes), build the archive, and place it at
// <ReleaseDir>/<Id>.xrnx, replacing any previous file or directory there.
func Run(opts Options) (*Result, error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(opts.Dir, manifest.FileName)
	if _, err := os.Stat(manifestPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, opts.Dir)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", manifestPath, err)
	}

	text, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	m, err := manifest.Parse(text)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed manifest", "id", m.ID, "version", m.Version)

	newVersion, err := semver.Bump(m.Version)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Identifier: m.ID,
		OldVersion: m.Version,
		NewVersion: newVersion,
	}

	patched, err := manifest.PatchVersion(text, m.Version, newVersion)
	if err != nil {
		return result, err
	}

	if opts.DryRun {
		entries, err := collectAll(opts, patched)
		if err != nil {
			return result, err
		}
		result.Files = entryNames(entries)
		logger.Info("dry run: no files written", "id", m.ID, "version", newVersion)
		return result, nil
	}

	if err := os.WriteFile(manifestPath, patched, 0o644); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	result.ManifestPatched = true
	logger.Debug("bumped manifest version", "old", m.Version, "new", newVersion)

	entries, err := collectAll(opts, patched)
	if err != nil {
		return result, err
	}
	result.Files = entryNames(entries)

	releaseDir := opts.ReleaseDir
	if !filepath.IsAbs(releaseDir) {
		releaseDir = filepath.Join(opts.Dir, releaseDir)
	}
	if err := os.MkdirAll(releaseDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create release directory %s: %w", releaseDir, err)
	}

	archiveName := m.ID + ArchiveExt
	outPath := filepath.Join(releaseDir, archiveName)

	// Replace-on-conflict: a stale archive, or a leftover directory from an
	// older folder-based release flow, is removed rather than merged into.
	if _, err := os.Stat(outPath); err == nil {
		if err := os.RemoveAll(outPath); err != nil {
			return result, fmt.Errorf("failed to remove previous archive %s: %w", outPath, err)
		}
	}

	if err := BuildArchive(entries, outPath, opts.Layout, archiveName); err != nil {
		return result, err
	}

	result.ArchivePath = outPath
	logger.Info("created release archive", "path", outPath, "files", len(entries))
	return result, nil
}

// collectAll gathers the source entries and appends the patched manifest,
// re-sorting so the manifest participates in the deterministic entry order.
func collectAll(opts Options, patchedManifest []byte) ([]Entry, error) {
	entries, err := Collect(opts.Dir, opts.ScriptExt)
	if err != nil {
		return nil, err
	}

	entries = append(entries, Entry{
		Name: manifest.FileName,
		Data: patchedManifest,
	})
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return entries, nil
}

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
