// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/PORTALSURFER/rls-rnplug/internal/config"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage rnplug configuration",
	}

	// configShowCmd prints the effective configuration
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	}

	// configInitCmd writes a default config file
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a default config file if none exists",
		RunE:  runConfigInit,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	content, err := config.GenerateTOML(cfg)
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Println()
	fmt.Print(content)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return err
	}

	fmt.Printf("%s Config file at %s\n", SuccessStyle.Render("✓"), PathStyle.Render(path))
	return nil
}
