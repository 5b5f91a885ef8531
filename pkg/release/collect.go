// SPDX-License-Identifier: MPL-2.0

package release

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// readmeName is the canonical readme file name inside a release archive.
// Whichever case variant exists on disk, the archived copy uses this name.
const readmeName = "README.md"

// Entry is a single file destined for the release archive: the archive path
// it will live at and where its bytes come from. Exactly one of SourcePath
// and Data is set; Data carries in-memory content such as the patched
// manifest, SourcePath defers reading to archive time.
type Entry struct {
	// Name is the entry's path within the archive, before any layout
	// wrapping. Always a bare file name for shallow collection.
	Name string
	// SourcePath is the file to read content from, when Data is nil.
	SourcePath string
	// Data is in-memory content, taking precedence over SourcePath.
	Data []byte
}

// Collect enumerates the release file set of a tool directory: every
// immediate child whose name ends in scriptExt, plus at most one readme.
// Collection is shallow on purpose — Renoise tools keep their sources at the
// top level and the manifest is added separately by the orchestrator.
//
// The returned entries are sorted by archive name. Directory-listing order is
// not guaranteed by the host filesystem, and reproducible archive bytes
// require a stable entry order, so the sort is enforced here rather than
// inherited.
func Collect(dir, scriptExt string) ([]Entry, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tool directory %s: %w", dir, err)
	}

	var entries []Entry
	readme := ""
	for _, item := range listing {
		if item.IsDir() {
			continue
		}
		name := item.Name()

		if strings.HasSuffix(name, scriptExt) {
			entries = append(entries, Entry{
				Name:       name,
				SourcePath: filepath.Join(dir, name),
			})
			continue
		}

		if strings.EqualFold(name, readmeName) {
			// At most one readme; prefer the all-lowercase variant when both
			// case spellings exist so the pick is deterministic.
			if readme == "" || name == strings.ToLower(readmeName) {
				readme = name
			}
		}
	}

	if readme != "" {
		entries = append(entries, Entry{
			Name:       readmeName,
			SourcePath: filepath.Join(dir, readme),
		})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return entries, nil
}
