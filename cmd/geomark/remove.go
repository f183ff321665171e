// ABOUTME: Remove command for a single annotation
// ABOUTME: Resolves the id against points first, then features

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a point or feature by id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if p, err := st.FindPoint(id); err == nil {
			st.RemovePoint(id)
			color.Green("✓ Removed point %s", p.Title)
			return nil
		}
		if f, err := st.FindFeature(id); err == nil {
			st.RemoveFeature(id)
			name := f.Properties.Name
			if name == "" {
				name = f.Properties.Shape.DisplayName()
			}
			color.Green("✓ Removed feature %s", name)
			return nil
		}

		return fmt.Errorf("no annotation with id '%s'", id)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
