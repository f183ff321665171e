// ABOUTME: Export command producing CSV, JSON, or ZIP files
// ABOUTME: Defaults to a timestamped filename in the working directory

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/baptistelechat/geomark/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export annotations in various formats",
	Long: `Export every annotation as CSV, JSON, or a ZIP bundling both.

Examples:
  geomark export --format csv
  geomark export --format json --output annotations.json
  geomark export --format zip`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "csv" && format != "json" && format != "zip" {
			return fmt.Errorf("unsupported format: %s (use 'csv', 'json', or 'zip')", format)
		}

		now := time.Now()
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = export.Filename(format, now)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer func() { _ = file.Close() }()

		points := st.Points()
		features := st.Features()

		switch format {
		case "csv":
			err = export.WriteCSV(file, points, features)
		case "json":
			err = export.WriteJSON(file, points, features)
		case "zip":
			err = export.WriteZIP(file, points, features, now)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		color.Green("✓ Exported %d points and %d features", len(points), len(features))
		fmt.Printf("  %s\n", output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "output format (csv, json, zip)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: geomark-<timestamp>.<ext>)")

	rootCmd.AddCommand(exportCmd)
}
