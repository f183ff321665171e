// ABOUTME: Core data models for map points and drawn features
// ABOUTME: Provides validation and constructor functions for creating new entities

package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/baptistelechat/geomark/internal/ident"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateTitle checks if a title is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title cannot be empty or whitespace")
	}
	if len(title) > 255 {
		return fmt.Errorf("title too long (max 255 characters)")
	}
	return nil
}

// MarkerIcons is the fixed set of marker icon names.
var MarkerIcons = []string{
	"pin", "home", "building", "flag", "star",
	"heart", "camera", "utensils", "coffee", "cart",
}

// ValidateIcon checks that an icon name belongs to the fixed marker icon set.
// An empty name is valid and means the default icon.
func ValidateIcon(name string) error {
	if name == "" {
		return nil
	}
	for _, known := range MarkerIcons {
		if name == known {
			return nil
		}
	}
	return fmt.Errorf("unknown icon %q", name)
}

// NowMillis returns the current time in milliseconds since the epoch,
// the timestamp unit used across points, features, and exports.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// MapPoint represents a user-placed labeled marker.
type MapPoint struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Title     string  `json:"title"`
	Notes     string  `json:"notes,omitempty"`
	URL       string  `json:"url,omitempty"`
	Color     string  `json:"color,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

// NewMapPoint creates a point with a fresh id and CreatedAt == UpdatedAt.
// Coordinates and title are validated; out-of-range values are a hard error.
func NewMapPoint(title string, lat, lng float64) (MapPoint, error) {
	if err := ValidateTitle(title); err != nil {
		return MapPoint{}, err
	}
	if err := ValidateCoordinates(lat, lng); err != nil {
		return MapPoint{}, err
	}
	now := NowMillis()
	return MapPoint{
		ID:        ident.New(),
		Lat:       lat,
		Lng:       lng,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Touch refreshes the point's UpdatedAt stamp.
func (p *MapPoint) Touch() {
	p.UpdatedAt = NowMillis()
}

// ShapeKind identifies the drawing tool a feature was created with.
// It drives both layer construction and measurement logic.
type ShapeKind string

const (
	ShapeMarker       ShapeKind = "Marker"
	ShapeCircle       ShapeKind = "Circle"
	ShapePolygon      ShapeKind = "Polygon"
	ShapeRectangle    ShapeKind = "Rectangle"
	ShapeLine         ShapeKind = "Line"
	ShapeText         ShapeKind = "Text"
	ShapeCircleMarker ShapeKind = "CircleMarker"
)

// shapeDisplayNames maps shapes to their user-facing French labels,
// kept identical to the web app so exported names stay stable.
var shapeDisplayNames = map[ShapeKind]string{
	ShapeMarker:       "Point",
	ShapeCircle:       "Cercle",
	ShapePolygon:      "Polygone",
	ShapeRectangle:    "Rectangle",
	ShapeLine:         "Ligne",
	ShapeText:         "Texte",
	ShapeCircleMarker: "Point - Cercle",
}

// DisplayName returns the user-facing label for the shape.
// Unknown shapes fall back to their raw kind string.
func (s ShapeKind) DisplayName() string {
	if name, ok := shapeDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// Valid reports whether the shape is one of the supported kinds.
func (s ShapeKind) Valid() bool {
	_, ok := shapeDisplayNames[s]
	return ok
}

// FeatureProperties is the metadata bag carried by every drawn feature.
// Radius is only meaningful for Circle shapes (geometry alone cannot
// reconstruct a circle); Text only for Text shapes.
type FeatureProperties struct {
	ID        string    `json:"id"`
	Shape     ShapeKind `json:"shape"`
	Name      string    `json:"name,omitempty"`
	Color     string    `json:"color,omitempty"`
	Radius    *float64  `json:"radius,omitempty"`
	Text      string    `json:"text,omitempty"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
}

// Feature is a drawn geometric shape plus its metadata, shaped as a
// GeoJSON Feature so it serializes interchangeably with the web app.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// NewFeature creates a feature with a fresh id and CreatedAt == UpdatedAt.
// Shape-specific fields (radius, text, name, color) are set by the caller.
func NewFeature(shape ShapeKind, geom orb.Geometry) Feature {
	now := NowMillis()
	return Feature{
		Type:     "Feature",
		Geometry: geojson.NewGeometry(geom),
		Properties: FeatureProperties{
			ID:        ident.New(),
			Shape:     shape,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// ID returns the feature's identity, carried in its properties.
func (f Feature) ID() string {
	return f.Properties.ID
}

// Orb returns the feature's geometry as an orb value, or nil when absent.
func (f Feature) Orb() orb.Geometry {
	if f.Geometry == nil {
		return nil
	}
	return f.Geometry.Geometry()
}

// Validate checks shape/field consistency: Circle requires a positive
// radius, Text requires text content, and the geometry kind must match
// what the shape's layer constructor produces.
func (f Feature) Validate() error {
	if f.Properties.ID == "" {
		return fmt.Errorf("feature has no id")
	}
	if !f.Properties.Shape.Valid() {
		return fmt.Errorf("unknown shape %q", f.Properties.Shape)
	}
	if f.Geometry == nil {
		return fmt.Errorf("feature %s has no geometry", f.Properties.ID)
	}

	switch f.Properties.Shape {
	case ShapeCircle:
		if f.Properties.Radius == nil || *f.Properties.Radius <= 0 {
			return fmt.Errorf("circle feature %s requires a positive radius", f.Properties.ID)
		}
	case ShapeText:
		if strings.TrimSpace(f.Properties.Text) == "" {
			return fmt.Errorf("text feature %s requires text content", f.Properties.ID)
		}
	}

	geom := f.Geometry.Geometry()
	switch f.Properties.Shape {
	case ShapeMarker, ShapeCircle, ShapeCircleMarker, ShapeText:
		if _, ok := geom.(orb.Point); !ok {
			return fmt.Errorf("feature %s: shape %s requires Point geometry, got %s",
				f.Properties.ID, f.Properties.Shape, geom.GeoJSONType())
		}
	case ShapeLine:
		if _, ok := geom.(orb.LineString); !ok {
			return fmt.Errorf("feature %s: shape Line requires LineString geometry, got %s",
				f.Properties.ID, geom.GeoJSONType())
		}
	case ShapePolygon, ShapeRectangle:
		// Cutting a polygon can leave a MultiPolygon behind.
		switch geom.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return fmt.Errorf("feature %s: shape %s requires Polygon geometry, got %s",
				f.Properties.ID, f.Properties.Shape, geom.GeoJSONType())
		}
	}

	return nil
}

// UniqueName generates a default feature name "<DisplayName> <n>" with
// the smallest positive n that is free among used names. The collision
// check is case-insensitive.
func UniqueName(shape ShapeKind, used []string) string {
	lowered := make(map[string]bool, len(used))
	for _, n := range used {
		lowered[strings.ToLower(n)] = true
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s %d", shape.DisplayName(), counter)
		if !lowered[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
