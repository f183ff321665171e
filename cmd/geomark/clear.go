// ABOUTME: Clear command emptying annotation collections
// ABOUTME: Asks for confirmation unless --confirm is passed

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"reset"},
	Short:   "Remove every annotation",
	Long: `Remove all labeled points, all drawn features, or both.

Examples:
  geomark clear              # everything, after confirmation
  geomark clear --points     # only labeled points
  geomark clear --features   # only drawn features`,
	RunE: func(cmd *cobra.Command, args []string) error {
		onlyPoints, _ := cmd.Flags().GetBool("points")
		onlyFeatures, _ := cmd.Flags().GetBool("features")
		both := !onlyPoints && !onlyFeatures

		var what string
		switch {
		case both:
			what = "all annotations"
		case onlyPoints:
			what = "all points"
		default:
			what = "all features"
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Remove %s? This cannot be undone. [y/N] ", what)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		if both || onlyPoints {
			st.ClearPoints()
		}
		if both || onlyFeatures {
			st.ClearFeatures()
		}

		color.Green("✓ Removed %s", what)
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("points", false, "only clear labeled points")
	clearCmd.Flags().Bool("features", false, "only clear drawn features")
	clearCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(clearCmd)
}
