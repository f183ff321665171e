// ABOUTME: Bounding-box computation for annotations, used by fly-to
// ABOUTME: Expands circle centers by their radius in degrees

package geo

import (
	"fmt"
	"math"

	"github.com/baptistelechat/geomark/internal/models"
	"github.com/baptistelechat/geomark/internal/store"
	"github.com/paulmach/orb"
)

// earthRadius is the equatorial radius in meters used for the
// degrees-per-meter approximation when expanding circle bounds.
const earthRadius = 6378137.0

// pointMaxZoom caps the zoom when flying to a single coordinate, so a
// lone marker does not zoom in to street level.
const pointMaxZoom = 16

// Bounds is a geographic bounding box as [[south, west], [north, east]],
// the layout the map view consumes.
type Bounds [2][2]float64

// FromOrbBound converts an orb bound (lng/lat ordered) to Bounds.
func FromOrbBound(b orb.Bound) Bounds {
	return Bounds{
		{b.Min.Lat(), b.Min.Lon()},
		{b.Max.Lat(), b.Max.Lon()},
	}
}

// Extend grows the box to include another one.
func (b Bounds) Extend(other Bounds) Bounds {
	return Bounds{
		{math.Min(b[0][0], other[0][0]), math.Min(b[0][1], other[0][1])},
		{math.Max(b[1][0], other[1][0]), math.Max(b[1][1], other[1][1])},
	}
}

// circleBounds returns the box enclosing a circle of the given radius
// in meters. The longitude span widens with latitude.
func circleBounds(center orb.Point, radius float64) Bounds {
	lat, lng := center.Lat(), center.Lon()
	latRadius := (radius / earthRadius) * (180 / math.Pi)
	lngRadius := latRadius / math.Cos(lat*math.Pi/180)
	return Bounds{
		{lat - latRadius, lng - lngRadius},
		{lat + latRadius, lng + lngRadius},
	}
}

// FeatureBounds computes the box enclosing a single feature. Circles
// are expanded by their radius; everything else uses the geometry's
// own extent.
func FeatureBounds(f models.Feature) (Bounds, error) {
	geom := f.Orb()
	if geom == nil {
		return Bounds{}, fmt.Errorf("feature %s has no geometry", f.ID())
	}

	if f.Properties.Shape == models.ShapeCircle && f.Properties.Radius != nil {
		if center, ok := geom.(orb.Point); ok {
			return circleBounds(center, *f.Properties.Radius), nil
		}
	}
	return FromOrbBound(geom.Bound()), nil
}

// FlyToFeature builds the view command that frames a feature.
// Point-like shapes get a zoom cap so the view does not dive to
// street level on a dimensionless target.
func FlyToFeature(f models.Feature) (store.FlyToBounds, error) {
	bounds, err := FeatureBounds(f)
	if err != nil {
		return store.FlyToBounds{}, err
	}

	cmd := store.FlyToBounds{Bounds: bounds}
	switch f.Properties.Shape {
	case models.ShapeMarker, models.ShapeText, models.ShapeCircleMarker:
		cmd.Options.MaxZoom = pointMaxZoom
	}
	return cmd, nil
}

// FlyToPoint builds the view command that frames a labeled point.
func FlyToPoint(p models.MapPoint) store.FlyToLocation {
	return store.FlyToLocation{Lat: p.Lat, Lng: p.Lng, Zoom: pointMaxZoom}
}

// CollectionBounds computes the box enclosing every point and feature
// given. Returns false when there is nothing to frame or no feature
// yields usable bounds.
func CollectionBounds(points []models.MapPoint, features []models.Feature) (Bounds, bool) {
	var acc Bounds
	have := false

	add := func(b Bounds) {
		if !have {
			acc = b
			have = true
			return
		}
		acc = acc.Extend(b)
	}

	for _, p := range points {
		add(Bounds{{p.Lat, p.Lng}, {p.Lat, p.Lng}})
	}
	for _, f := range features {
		b, err := FeatureBounds(f)
		if err != nil {
			continue
		}
		add(b)
	}
	return acc, have
}
