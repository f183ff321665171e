// ABOUTME: Canvas and Layer contracts between the reconciler and a map surface
// ABOUTME: Implementations wrap whatever actually renders the geometry

package reconcile

import (
	"github.com/baptistelechat/geomark/internal/models"
	"github.com/paulmach/orb"
)

// Layer is one drawn object on a canvas. Layers created by a drawing
// tool start untagged; the reconciler tags them with a feature id when
// they enter the store.
type Layer interface {
	// ID returns the feature id tagged onto the layer, or "" for an
	// in-progress drawing that has not been committed yet.
	ID() string

	// TagID attaches a feature id to the layer.
	TagID(id string)

	// StoreOriginated reports whether the layer was materialized from
	// persisted state rather than drawn by the user. Create events for
	// such layers must not loop back into the store.
	StoreOriginated() bool

	// Shape returns the drawing tool kind that produced the layer.
	Shape() models.ShapeKind

	// Geometry returns the layer's current geometry.
	Geometry() orb.Geometry

	// Radius returns the radius in meters for circle layers, 0 otherwise.
	// Circle radii ride outside the geometry, which only carries the center.
	Radius() float64

	// Text returns the content of text layers, "" otherwise.
	Text() string

	// SetStyle applies a stroke/fill color to the layer.
	SetStyle(color string)

	// SetHighlighted toggles the layer's emphasis styling.
	SetHighlighted(on bool)

	// SetText replaces the content of a text layer.
	SetText(text string)
}

// Canvas is the rendering surface the reconciler drives. A canvas owns
// its layers; the reconciler only ever diffs against Layers() and
// mutates through Materialize and Remove.
type Canvas interface {
	// Layers returns every layer currently on the canvas.
	Layers() []Layer

	// Materialize builds a layer for a persisted feature. The returned
	// layer must already be tagged with the feature id and flagged as
	// store-originated.
	Materialize(f models.Feature) (Layer, error)

	// Remove takes a layer off the canvas.
	Remove(l Layer) error
}
