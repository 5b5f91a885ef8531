// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"github.com/PORTALSURFER/rls-rnplug/pkg/manifest"
	"github.com/PORTALSURFER/rls-rnplug/pkg/semver"
)

func TestGenerateManifest(t *testing.T) {
	content := generateManifest("com.example.NewTool")

	m, err := manifest.Parse([]byte(content))
	if err != nil {
		t.Fatalf("generated manifest does not parse: %v", err)
	}
	if m.ID != "com.example.NewTool" {
		t.Errorf("Id = %q, want com.example.NewTool", m.ID)
	}

	// The starter version must be bumpable so the first release works.
	bumped, err := semver.Bump(m.Version)
	if err != nil {
		t.Fatalf("starter version %q does not bump: %v", m.Version, err)
	}
	if bumped != "0.2.0" {
		t.Errorf("first bump = %q, want 0.2.0", bumped)
	}
}
