// ABOUTME: Tests for core data models
// ABOUTME: Covers validation, constructors, and unique name generation

package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid", 48.8584, 2.2945, false},
		{"zero", 0, 0, false},
		{"lat too high", 90.1, 0, true},
		{"lat too low", -90.1, 0, true},
		{"lng too high", 0, 180.1, true},
		{"lng too low", 0, -180.1, true},
		{"lat boundary", 90, 180, false},
		{"lng boundary", -90, -180, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%v, %v) error = %v, wantErr %v",
					tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("Tour Eiffel"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateTitle(""); err == nil {
		t.Error("expected error for empty title")
	}
	if err := ValidateTitle("   "); err == nil {
		t.Error("expected error for whitespace title")
	}
	if err := ValidateTitle(strings.Repeat("x", 256)); err == nil {
		t.Error("expected error for over-long title")
	}
}

func TestValidateIcon(t *testing.T) {
	if err := ValidateIcon("pin"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateIcon(""); err != nil {
		t.Errorf("empty icon should be valid: %v", err)
	}
	if err := ValidateIcon("rocket"); err == nil {
		t.Error("expected error for unknown icon")
	}
}

func TestNewMapPoint(t *testing.T) {
	p, err := NewMapPoint("Tour Eiffel", 48.8584, 2.2945)
	if err != nil {
		t.Fatalf("failed to create point: %v", err)
	}
	if p.ID == "" {
		t.Error("point has no id")
	}
	if p.Title != "Tour Eiffel" || p.Lat != 48.8584 || p.Lng != 2.2945 {
		t.Errorf("unexpected point: %+v", p)
	}
	if p.CreatedAt != p.UpdatedAt {
		t.Errorf("CreatedAt %d != UpdatedAt %d on creation", p.CreatedAt, p.UpdatedAt)
	}
}

func TestNewMapPoint_Invalid(t *testing.T) {
	if _, err := NewMapPoint("", 0, 0); err == nil {
		t.Error("expected error for empty title")
	}
	if _, err := NewMapPoint("x", 91, 0); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
}

func TestNewFeature(t *testing.T) {
	f := NewFeature(ShapeMarker, orb.Point{2.2945, 48.8584})
	if f.Type != "Feature" {
		t.Errorf("got type %q, want Feature", f.Type)
	}
	if f.ID() == "" {
		t.Error("feature has no id")
	}
	if f.Properties.CreatedAt != f.Properties.UpdatedAt {
		t.Error("CreatedAt != UpdatedAt on creation")
	}
	if err := f.Validate(); err != nil {
		t.Errorf("marker feature should validate: %v", err)
	}
}

func TestFeatureValidate_Circle(t *testing.T) {
	f := NewFeature(ShapeCircle, orb.Point{2.35, 48.85})
	if err := f.Validate(); err == nil {
		t.Error("circle without radius should not validate")
	}

	radius := 500.0
	f.Properties.Radius = &radius
	if err := f.Validate(); err != nil {
		t.Errorf("circle with radius should validate: %v", err)
	}
}

func TestFeatureValidate_Text(t *testing.T) {
	f := NewFeature(ShapeText, orb.Point{2.35, 48.85})
	if err := f.Validate(); err == nil {
		t.Error("text feature without text should not validate")
	}

	f.Properties.Text = "Rendez-vous ici"
	if err := f.Validate(); err != nil {
		t.Errorf("text feature with content should validate: %v", err)
	}
}

func TestFeatureValidate_GeometryKind(t *testing.T) {
	f := NewFeature(ShapeLine, orb.Point{0, 0})
	if err := f.Validate(); err == nil {
		t.Error("line with point geometry should not validate")
	}

	f = NewFeature(ShapeLine, orb.LineString{{0, 0}, {1, 1}})
	if err := f.Validate(); err != nil {
		t.Errorf("line with linestring should validate: %v", err)
	}

	// A cut polygon degrades to a multipolygon and must stay valid.
	f = NewFeature(ShapePolygon, orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
	})
	if err := f.Validate(); err != nil {
		t.Errorf("polygon shape with multipolygon geometry should validate: %v", err)
	}
}

func TestFeatureJSONRoundTrip(t *testing.T) {
	radius := 500.0
	f := NewFeature(ShapeCircle, orb.Point{2.2945, 48.8584})
	f.Properties.Radius = &radius
	f.Properties.Name = "Cercle 1"
	f.Properties.Color = "#65a30d"

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Feature
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Properties.Shape != ShapeCircle {
		t.Errorf("got shape %q, want Circle", got.Properties.Shape)
	}
	if got.Properties.Radius == nil || *got.Properties.Radius != 500 {
		t.Errorf("radius did not round-trip: %v", got.Properties.Radius)
	}
	if pt, ok := got.Orb().(orb.Point); !ok || pt != (orb.Point{2.2945, 48.8584}) {
		t.Errorf("geometry did not round-trip: %v", got.Orb())
	}
}

func TestUniqueName(t *testing.T) {
	name := UniqueName(ShapeCircle, nil)
	if name != "Cercle 1" {
		t.Errorf("got %q, want \"Cercle 1\"", name)
	}

	// Case-insensitive collision check picks the smallest free integer.
	name = UniqueName(ShapeCircle, []string{"Cercle 1", "cercle 2"})
	if name != "Cercle 3" {
		t.Errorf("got %q, want \"Cercle 3\"", name)
	}

	name = UniqueName(ShapeCircle, []string{"Cercle 2"})
	if name != "Cercle 1" {
		t.Errorf("got %q, want \"Cercle 1\"", name)
	}

	name = UniqueName(ShapeLine, []string{"Cercle 1"})
	if name != "Ligne 1" {
		t.Errorf("got %q, want \"Ligne 1\"", name)
	}
}

func TestShapeDisplayNames(t *testing.T) {
	if got := ShapeCircleMarker.DisplayName(); got != "Point - Cercle" {
		t.Errorf("got %q", got)
	}
	if got := ShapeKind("Blob").DisplayName(); got != "Blob" {
		t.Errorf("unknown shape should fall back to raw kind, got %q", got)
	}
	if ShapeKind("Blob").Valid() {
		t.Error("Blob should not be a valid shape")
	}
}
