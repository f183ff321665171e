// ABOUTME: Backup command writing the full state as versioned YAML
// ABOUTME: Companion to restore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/baptistelechat/geomark/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [file]",
	Short: "Write a YAML backup of all annotations",
	Long: `Write every annotation to a versioned YAML backup file.

Examples:
  geomark backup
  geomark backup ~/backups/annotations.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := fmt.Sprintf("geomark-backup-%s.yaml", time.Now().Format("2006-01-02"))
		if len(args) == 1 {
			filename = args[0]
		}

		points := st.Points()
		features := st.Features()

		data, err := export.ExportToYAML(points, features)
		if err != nil {
			return fmt.Errorf("failed to generate backup: %w", err)
		}
		if err := os.WriteFile(filename, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}

		color.Green("✓ Backed up %d points and %d features", len(points), len(features))
		fmt.Printf("  %s\n", filename)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
