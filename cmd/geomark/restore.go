// ABOUTME: Restore command loading a YAML backup
// ABOUTME: Replaces the whole state after confirmation

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/baptistelechat/geomark/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore annotations from a YAML backup",
	Long: `Restore annotations from a backup created with 'geomark backup'.

WARNING: This replaces all current annotations.

Examples:
  geomark restore geomark-backup-2026-08-28.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		points, features, err := export.ImportFromYAML(data)
		if err != nil {
			return fmt.Errorf("failed to restore: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Replace all annotations with '%s'? [y/N] ", filename)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		st.ReplaceAll(points, features)

		color.Green("✓ Restored %d points and %d features", len(points), len(features))
		return nil
	},
}

func init() {
	restoreCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(restoreCmd)
}
