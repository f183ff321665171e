// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for points and features

package ui

import (
	"fmt"
	"time"

	"github.com/baptistelechat/geomark/internal/geo"
	"github.com/baptistelechat/geomark/internal/models"
	"github.com/fatih/color"
)

// FormatPoint formats a labeled point for terminal display.
func FormatPoint(p models.MapPoint) string {
	coords := fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lng)
	relTime := FormatRelativeTime(time.UnixMilli(p.UpdatedAt))

	line := fmt.Sprintf("%s %s - %s",
		color.GreenString(p.Title),
		color.New(color.Faint).Sprint(coords),
		color.New(color.Faint).Sprint(relTime))

	if p.Notes != "" {
		line += "\n  " + color.New(color.Faint).Sprint(p.Notes)
	}
	return line
}

// FormatFeature formats a drawn feature with its measurements.
func FormatFeature(f models.Feature) string {
	name := f.Properties.Name
	if name == "" {
		name = f.Properties.Shape.DisplayName()
	}

	line := fmt.Sprintf("%s %s",
		color.CyanString(name),
		color.New(color.Faint).Sprintf("[%s]", f.Properties.Shape.DisplayName()))

	for _, m := range geo.Measure(f) {
		line += "\n  " + color.New(color.Faint).Sprint(m.String())
	}
	return line
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
