// ABOUTME: Unit tests for terminal UI formatting
// ABOUTME: Tests human-readable output for points and features

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/baptistelechat/geomark/internal/models"
	"github.com/paulmach/orb"
)

func TestFormatPoint(t *testing.T) {
	p, err := models.NewMapPoint("Tour Eiffel", 48.8584, 2.2945)
	if err != nil {
		t.Fatalf("failed to create point: %v", err)
	}
	p.Notes = "Champ de Mars"

	output := FormatPoint(p)
	if !strings.Contains(output, "Tour Eiffel") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "48.8584") {
		t.Error("expected output to contain latitude")
	}
	if !strings.Contains(output, "Champ de Mars") {
		t.Error("expected output to contain notes")
	}
}

func TestFormatFeature(t *testing.T) {
	radius := 500.0
	f := models.NewFeature(models.ShapeCircle, orb.Point{2.2945, 48.8584})
	f.Properties.Radius = &radius
	f.Properties.Name = "Zone A"

	output := FormatFeature(f)
	if !strings.Contains(output, "Zone A") {
		t.Error("expected output to contain name")
	}
	if !strings.Contains(output, "Cercle") {
		t.Error("expected output to contain shape display name")
	}
	if !strings.Contains(output, "Rayon : 500 m") {
		t.Errorf("expected output to contain radius measurement, got %q", output)
	}
}

func TestFormatFeature_UnnamedFallsBackToShape(t *testing.T) {
	f := models.NewFeature(models.ShapeMarker, orb.Point{2.2945, 48.8584})
	output := FormatFeature(f)
	if !strings.Contains(output, "Point") {
		t.Errorf("expected shape display name fallback, got %q", output)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Now(), "just now"},
		{time.Now().Add(-time.Minute), "1 minute ago"},
		{time.Now().Add(-5 * time.Minute), "5 minutes ago"},
		{time.Now().Add(-time.Hour), "1 hour ago"},
		{time.Now().Add(-48 * time.Hour), "2 days ago"},
	}
	for _, tc := range cases {
		if got := FormatRelativeTime(tc.t); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}
