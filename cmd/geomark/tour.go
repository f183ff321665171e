// ABOUTME: Guided tour commands
// ABOUTME: Shows tour progress and resets the completion flag

package main

import (
	"fmt"

	"github.com/baptistelechat/geomark/internal/onboarding"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Guided tour status",
	RunE: func(cmd *cobra.Command, args []string) error {
		tour, err := onboarding.NewTour(repo, log)
		if err != nil {
			return fmt.Errorf("failed to load tour state: %w", err)
		}

		if tour.Completed() {
			fmt.Println("Tour completed. Run 'geomark tour reset' to see it again.")
		} else {
			fmt.Printf("Tour not completed yet (%d steps).\n", len(onboarding.DefaultSteps))
		}
		return nil
	},
}

var tourResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the guided tour",
	RunE: func(cmd *cobra.Command, args []string) error {
		tour, err := onboarding.NewTour(repo, log)
		if err != nil {
			return fmt.Errorf("failed to load tour state: %w", err)
		}
		tour.Reset()
		color.Green("✓ Tour reset")
		return nil
	},
}

func init() {
	tourCmd.AddCommand(tourResetCmd)
	rootCmd.AddCommand(tourCmd)
}
