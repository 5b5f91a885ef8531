// SPDX-License-Identifier: MPL-2.0

package release

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollect(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string // returns directory to collect
		expected []string                  // archive names in order
	}{
		{
			name: "scripts sorted by name",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "zebra.lua", "-- z")
				writeFile(t, dir, "alpha.lua", "-- a")
				writeFile(t, dir, "main.lua", "-- m")
				return dir
			},
			expected: []string{"alpha.lua", "main.lua", "zebra.lua"},
		},
		{
			name: "non-script files ignored",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "main.lua", "-- m")
				writeFile(t, dir, "notes.txt", "notes")
				writeFile(t, dir, "manifest.xml", "<x/>")
				return dir
			},
			expected: []string{"main.lua"},
		},
		{
			name: "readme included under canonical name",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "main.lua", "-- m")
				writeFile(t, dir, "README.md", "# readme")
				return dir
			},
			expected: []string{"README.md", "main.lua"},
		},
		{
			name: "lowercase readme also matches",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "readme.md", "# readme")
				return dir
			},
			expected: []string{"README.md"},
		},
		{
			name: "no recursion into subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "main.lua", "-- m")
				sub := filepath.Join(dir, "lib")
				if err := os.Mkdir(sub, 0o755); err != nil {
					t.Fatal(err)
				}
				writeFile(t, sub, "helper.lua", "-- h")
				return dir
			},
			expected: []string{"main.lua"},
		},
		{
			name: "empty directory yields no entries",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			entries, err := Collect(dir, ".lua")
			if err != nil {
				t.Fatalf("Collect failed: %v", err)
			}
			if len(entries) != len(tt.expected) {
				t.Fatalf("Collect returned %d entries, want %d: %+v", len(entries), len(tt.expected), entries)
			}
			for i, want := range tt.expected {
				if entries[i].Name != want {
					t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, want)
				}
			}
		})
	}
}

func TestCollectReadmeTieBreak(t *testing.T) {
	// Both case variants can coexist on case-sensitive filesystems; the
	// all-lowercase spelling must win deterministically.
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "lower")
	writeFile(t, dir, "README.md", "upper")

	entries, err := Collect(dir, ".lua")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Collect returned %d entries, want 1", len(entries))
	}
	if entries[0].Name != "README.md" {
		t.Errorf("archive name = %q, want README.md", entries[0].Name)
	}

	data, err := os.ReadFile(entries[0].SourcePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "lower" {
		t.Errorf("readme source = %q, want the lowercase-named file", data)
	}
}

func TestCollectMissingDir(t *testing.T) {
	if _, err := Collect(filepath.Join(t.TempDir(), "nope"), ".lua"); err == nil {
		t.Fatal("Collect on a missing directory succeeded, want error")
	}
}
