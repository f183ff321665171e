// ABOUTME: Show and hide commands for the annotation layers
// ABOUTME: Visibility flags are persisted with the rest of the state

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func setVisibility(layer string, show bool) error {
	switch layer {
	case "points":
		st.SetShowPoints(show)
	case "features":
		st.SetShowFeatures(show)
	default:
		return fmt.Errorf("unknown layer: %s (use 'points' or 'features')", layer)
	}

	verb := "Hidden"
	if show {
		verb = "Shown"
	}
	color.Green("✓ %s %s layer", verb, layer)
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show <points|features>",
	Short: "Show an annotation layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVisibility(args[0], true)
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide <points|features>",
	Short: "Hide an annotation layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVisibility(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(hideCmd)
}
