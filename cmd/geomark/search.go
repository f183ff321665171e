// ABOUTME: Address search command
// ABOUTME: Queries the geocoding service and prints suggestions

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/baptistelechat/geomark/internal/geocode"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>...",
	Aliases: []string{"s"},
	Short:   "Search for an address",
	Long: `Search the geocoding service for an address or place name.

Examples:
  geomark search tour eiffel
  geomark search "5 avenue Anatole France, Paris"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		client := geocode.NewClient(cfg.GeocodeURL)
		results, err := client.Search(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		for _, a := range results {
			fmt.Printf("%s %s\n",
				color.CyanString(a.FullText),
				color.New(color.Faint).Sprintf("(%.4f, %.4f)", a.Lat, a.Lng))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
