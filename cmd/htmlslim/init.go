package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/htmlslim.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".htmlslim"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new htmlslim configuration file",
		Long: `Initialize creates a new .htmlslim configuration file in the current directory.

The generated file includes:
- Default settings for mode and batch concurrency
- Commented examples for aggressive-mode options
- Documentation for all available options

Examples:
  # Create .htmlslim in current directory
  htmlslim init

  # Create config file at a specific path
  htmlslim init -o myconfig.yaml

  # Force overwrite existing file
  htmlslim init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/htmlslim.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure run defaults such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The processing mode")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Image and form-control handling in aggressive mode")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Batch concurrency for multi-file runs")

	return nil
}
