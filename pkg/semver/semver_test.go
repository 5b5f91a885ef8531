// SPDX-License-Identifier: MPL-2.0

package semver

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Version
		wantErr  bool
	}{
		{
			name:     "plain three components",
			input:    "1.2.3",
			expected: &Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:     "with prerelease",
			input:    "1.2.3-beta",
			expected: &Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "beta"},
		},
		{
			name:     "with build metadata",
			input:    "1.2.3+build5",
			expected: &Version{Major: 1, Minor: 2, Patch: 3, Build: "build5"},
		},
		{
			name:     "with prerelease and build",
			input:    "3.4.5-rc1+20240101",
			expected: &Version{Major: 3, Minor: 4, Patch: 5, Prerelease: "rc1", Build: "20240101"},
		},
		{
			name:     "dotted prerelease",
			input:    "0.1.0-alpha.1",
			expected: &Version{Major: 0, Minor: 1, Patch: 0, Prerelease: "alpha.1"},
		},
		{
			name:    "two components rejected",
			input:   "1.2",
			wantErr: true,
		},
		{
			name:    "one component rejected",
			input:   "2",
			wantErr: true,
		},
		{
			name:    "four components rejected",
			input:   "1.2.3.4",
			wantErr: true,
		},
		{
			name:    "non-numeric component rejected",
			input:   "1.x.3",
			wantErr: true,
		},
		{
			name:    "empty string rejected",
			input:   "",
			wantErr: true,
		},
		{
			name:    "leading v rejected",
			input:   "v1.2.3",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrInvalidVersion) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidVersion", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if *v != *tt.expected {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, v, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1", "1.0.0"},
		{"1.2", "1.2.0"},
		{"1.2.3", "1.2.3"},
		{"2-beta", "2.0.0-beta"},
		{"1.4+build", "1.4.0+build"},
		{"1.2.", "1.2.0"},
		{"1.2.3.4", "1.2.3.4"},
		{"", "0.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "single component zero-padded",
			input:    "2",
			expected: "2.1.0",
		},
		{
			name:     "two components zero-padded",
			input:    "1.4",
			expected: "1.5.0",
		},
		{
			name:     "three components resets patch",
			input:    "1.2.3",
			expected: "1.3.0",
		},
		{
			name:     "prerelease keeps patch",
			input:    "1.2.3-beta",
			expected: "1.3.3-beta",
		},
		{
			name:     "build metadata keeps patch",
			input:    "1.2.3+build5",
			expected: "1.3.3+build5",
		},
		{
			name:     "release candidate keeps patch",
			input:    "3.4.5-rc1",
			expected: "3.5.5-rc1",
		},
		{
			name:    "four components fatal",
			input:   "1.2.3.4",
			wantErr: true,
		},
		{
			name:    "non-numeric fatal",
			input:   "one.two",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bump(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Bump(%q) succeeded, want error", tt.input)
				}
				var ive *InvalidVersionError
				if !errors.As(err, &ive) {
					t.Errorf("Bump(%q) error = %T, want *InvalidVersionError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Bump(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Bump(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Minor always increases by one regardless of suffix; zero-padded short forms
// bump identically to their explicit three-component spelling.
func TestBumpNormalizationRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"1", "1.0.0"},
		{"1.2", "1.2.0"},
		{"0.9", "0.9.0"},
	}

	for _, pair := range pairs {
		short, full := pair[0], pair[1]
		gotShort, err := Bump(short)
		if err != nil {
			t.Fatalf("Bump(%q) failed: %v", short, err)
		}
		gotFull, err := Bump(full)
		if err != nil {
			t.Fatalf("Bump(%q) failed: %v", full, err)
		}
		if gotShort != gotFull {
			t.Errorf("Bump(%q) = %q but Bump(%q) = %q, want equal", short, gotShort, full, gotFull)
		}
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		version  Version
		expected string
	}{
		{Version{Major: 1, Minor: 2, Patch: 3}, "1.2.3"},
		{Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc1"}, "1.2.3-rc1"},
		{Version{Major: 1, Minor: 2, Patch: 3, Build: "b7"}, "1.2.3+b7"},
		{Version{Major: 0, Minor: 10, Patch: 0, Prerelease: "alpha", Build: "b7"}, "0.10.0-alpha+b7"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.version.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
