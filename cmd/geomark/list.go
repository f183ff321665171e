// ABOUTME: List command for points and features
// ABOUTME: Prints both collections with the terminal formatters

package main

import (
	"fmt"

	"github.com/baptistelechat/geomark/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all annotations",
	RunE: func(cmd *cobra.Command, args []string) error {
		onlyPoints, _ := cmd.Flags().GetBool("points")
		onlyFeatures, _ := cmd.Flags().GetBool("features")
		showAll := !onlyPoints && !onlyFeatures

		points := st.Points()
		features := st.Features()

		if len(points) == 0 && len(features) == 0 {
			fmt.Println("No annotations yet. Use 'geomark add' to place a point.")
			return nil
		}

		if (showAll || onlyPoints) && len(points) > 0 {
			fmt.Println(color.New(color.Bold).Sprintf("Points (%d)", len(points)))
			for _, p := range points {
				fmt.Println(ui.FormatPoint(p))
			}
		}

		if (showAll || onlyFeatures) && len(features) > 0 {
			if showAll && len(points) > 0 {
				fmt.Println()
			}
			fmt.Println(color.New(color.Bold).Sprintf("Features (%d)", len(features)))
			for _, f := range features {
				fmt.Println(ui.FormatFeature(f))
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().Bool("points", false, "only list labeled points")
	listCmd.Flags().Bool("features", false, "only list drawn features")

	rootCmd.AddCommand(listCmd)
}
