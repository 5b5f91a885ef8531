// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PORTALSURFER/rls-rnplug/pkg/manifest"

	"github.com/spf13/cobra"
)

var (
	initForce bool
	initID    string

	// initCmd creates a starter manifest.xml
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a starter manifest.xml in the current directory",
		Long: `Create a starter manifest.xml in the current directory.

The generated manifest declares the tool Id (defaulting to the current
directory's name), version 0.1, and placeholder metadata for you to
fill in.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing manifest.xml")
	initCmd.Flags().StringVar(&initID, "id", "", "tool identifier (default: current directory name)")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check if file exists
	if _, err := os.Stat(manifest.FileName); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", manifest.FileName)
	}

	id := initID
	if id == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		id = filepath.Base(wd)
	}

	content := generateManifest(id)
	if err := os.WriteFile(manifest.FileName, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(manifest.FileName)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Fill in the Name, Author, and Description fields")
	fmt.Println("  2. Put your tool's .lua sources next to the manifest")
	fmt.Println("  3. Run 'rnplug release' to build your first .xrnx")

	return nil
}

// generateManifest renders a starter manifest for a new tool.
func generateManifest(id string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<RenoiseScriptingTool doc_version="0">
  <ApiVersion>6</ApiVersion>
  <Id>%s</Id>
  <Version>0.1</Version>
  <Name>%s</Name>
  <Author>Your Name</Author>
  <Description>Describe your tool here.</Description>
</RenoiseScriptingTool>
`, id, id)
}
