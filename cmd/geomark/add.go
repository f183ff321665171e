// ABOUTME: Point add command
// ABOUTME: Creates labeled points with optional notes, url, color, and icon

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/baptistelechat/geomark/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <title> <latitude> <longitude>",
	Aliases: []string{"a"},
	Short:   "Add a labeled point to the map",
	Long: `Add a new labeled point at the given coordinates.

Examples:
  geomark add "Tour Eiffel" 48.8584 2.2945
  geomark add "Tour Eiffel" 48.8584 2.2945 --icon star --notes "Champ de Mars"
  geomark add "Bureau" 48.8738 2.2950 --url https://example.com --color "#65a30d"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		lat, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude: %w", err)
		}
		lng, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude: %w", err)
		}

		icon, _ := cmd.Flags().GetString("icon")
		if err := models.ValidateIcon(icon); err != nil {
			return fmt.Errorf("%w (choose from: %s)", err, strings.Join(models.MarkerIcons, ", "))
		}

		p, err := models.NewMapPoint(title, lat, lng)
		if err != nil {
			return err
		}
		p.Notes, _ = cmd.Flags().GetString("notes")
		p.URL, _ = cmd.Flags().GetString("url")
		p.Color, _ = cmd.Flags().GetString("color")
		p.Icon = icon

		st.AddPoint(p)

		color.Green("✓ Added %s", title)
		fmt.Printf("  %s @ (%.4f, %.4f)\n",
			color.New(color.Faint).Sprint(p.ID[:6]),
			lat, lng)
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("notes", "n", "", "free-text notes")
	addCmd.Flags().String("url", "", "link attached to the point")
	addCmd.Flags().String("color", "", "marker color (hex)")
	addCmd.Flags().StringP("icon", "i", "", "marker icon (pin, home, building, flag, star, ...)")
	addCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(addCmd)
}
