// ABOUTME: Import command for CSV and JSON exports
// ABOUTME: Merge by default; replace mode writes a safety backup first

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/baptistelechat/geomark/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import annotations from a CSV or JSON export",
	Long: `Import annotations from a file produced by 'geomark export'.

In merge mode (the default), imported entries are matched by id:
existing annotations are replaced, new ones added, and everything
else is left untouched. In replace mode the whole collection is
swapped for the file's contents; a safety backup is written to the
data directory first, and the import is aborted if that backup
cannot be written.

Examples:
  geomark import annotations.json
  geomark import annotations.csv --mode replace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		mode, _ := cmd.Flags().GetString("mode")
		if mode != "merge" && mode != "replace" {
			return fmt.Errorf("unsupported mode: %s (use 'merge' or 'replace')", mode)
		}

		file, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		defer func() { _ = file.Close() }()

		var res export.Result
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".csv":
			res, err = export.ParseCSV(file)
		case ".json":
			res, err = export.ParseJSON(file)
		default:
			return fmt.Errorf("unsupported file type: %s (use .csv or .json)", filepath.Ext(filename))
		}
		if err != nil {
			return err
		}

		if mode == "replace" {
			if err := writeSafetyBackup(); err != nil {
				return fmt.Errorf("%w: %v", export.ErrBackupFailed, err)
			}
			st.ReplaceAll(res.Points, res.Features)
		} else {
			st.ImportMergePoints(res.Points)
			st.ImportMergeFeatures(res.Features)
		}

		color.Green("✓ Imported %d points and %d features (%s)", len(res.Points), len(res.Features), mode)
		if res.Skipped > 0 {
			color.Yellow("  %d malformed entries skipped", res.Skipped)
		}
		return nil
	},
}

// writeSafetyBackup snapshots the current state into the data
// directory before a destructive import.
func writeSafetyBackup() error {
	data, err := export.ExportToYAML(st.Points(), st.Features())
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.GetDataDir(),
		fmt.Sprintf("pre-import-%s.yaml", time.Now().Format("2006-01-02_15-04-05")))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	fmt.Printf("  safety backup: %s\n", path)
	return nil
}

func init() {
	importCmd.Flags().StringP("mode", "m", "merge", "import mode (merge, replace)")

	rootCmd.AddCommand(importCmd)
}
