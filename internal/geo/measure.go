// ABOUTME: Human-facing measurements for drawn features
// ABOUTME: Lengths, areas, and radii with unit-scaled formatting

package geo

import (
	"fmt"
	"math"

	"github.com/baptistelechat/geomark/internal/models"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Measurement is one labeled quantity describing a feature, e.g.
// "Rayon" 500 m or "Surface" 12000 m².
type Measurement struct {
	Label string
	Value float64 // meters for lengths, square meters for areas
	Area  bool
}

// String formats the measurement with unit scaling: meters below a
// kilometer, kilometers above.
func (m Measurement) String() string {
	if m.Area {
		if m.Value >= 1e6 {
			return fmt.Sprintf("%s : %.2f km²", m.Label, m.Value/1e6)
		}
		return fmt.Sprintf("%s : %.0f m²", m.Label, m.Value)
	}
	if m.Value >= 1000 {
		return fmt.Sprintf("%s : %.2f km", m.Label, m.Value/1000)
	}
	return fmt.Sprintf("%s : %.0f m", m.Label, m.Value)
}

// lineLength sums the geodesic distance along a line string.
func lineLength(line orb.LineString) float64 {
	var total float64
	for i := 1; i < len(line); i++ {
		total += orbgeo.Distance(line[i-1], line[i])
	}
	return total
}

// ringPerimeter sums the geodesic distance around a closed ring.
func ringPerimeter(ring orb.Ring) float64 {
	return lineLength(orb.LineString(ring))
}

// Measure returns the measurements relevant to a feature's shape:
// radius and area for circles, perimeter and area for polygons and
// rectangles, length for lines. Point-like shapes have none.
func Measure(f models.Feature) []Measurement {
	geom := f.Orb()
	if geom == nil {
		return nil
	}

	switch f.Properties.Shape {
	case models.ShapeCircle:
		if f.Properties.Radius == nil {
			return nil
		}
		r := *f.Properties.Radius
		return []Measurement{
			{Label: "Rayon", Value: r},
			{Label: "Surface", Value: math.Pi * r * r, Area: true},
		}

	case models.ShapeLine:
		line, ok := geom.(orb.LineString)
		if !ok {
			return nil
		}
		return []Measurement{{Label: "Longueur", Value: lineLength(line)}}

	case models.ShapePolygon, models.ShapeRectangle:
		var area, perimeter float64
		switch g := geom.(type) {
		case orb.Polygon:
			area = math.Abs(orbgeo.Area(g))
			if len(g) > 0 {
				perimeter = ringPerimeter(g[0])
			}
		case orb.MultiPolygon:
			area = math.Abs(orbgeo.Area(g))
			for _, poly := range g {
				if len(poly) > 0 {
					perimeter += ringPerimeter(poly[0])
				}
			}
		default:
			return nil
		}
		return []Measurement{
			{Label: "Périmètre", Value: perimeter},
			{Label: "Surface", Value: area, Area: true},
		}
	}
	return nil
}
