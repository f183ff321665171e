// ABOUTME: Keeps a canvas and the annotation store mutually consistent
// ABOUTME: Store-to-canvas diffing plus canvas event handlers with confirm flows

package reconcile

import (
	"fmt"
	"sync"

	"github.com/baptistelechat/geomark/internal/models"
	"github.com/baptistelechat/geomark/internal/store"
	"github.com/rs/zerolog"
)

// Reconciler drives a Canvas from the store and feeds canvas drawing
// events back into it. The store stays the single source of truth:
// Sync makes the canvas match it, never the other way around. Drawn
// and deleted layers go through a pending stage until the user
// confirms, mirroring the naming and deletion dialogs.
type Reconciler struct {
	store  *store.Store
	canvas Canvas
	log    zerolog.Logger

	mu             sync.Mutex
	pendingCreates map[string]pendingCreate
	pendingRemoves map[string]bool
}

type pendingCreate struct {
	feature models.Feature
	layer   Layer
}

// New builds a reconciler and subscribes it to store changes, so every
// mutation schedules a sync pass.
func New(st *store.Store, canvas Canvas, log zerolog.Logger) *Reconciler {
	r := &Reconciler{
		store:          st,
		canvas:         canvas,
		log:            log,
		pendingCreates: make(map[string]pendingCreate),
		pendingRemoves: make(map[string]bool),
	}
	st.Watch(r.Sync)
	return r
}

// Sync makes the canvas reflect the store: stale layers are removed,
// missing features materialized, and styles refreshed in place. A
// layer that fails to materialize is logged and skipped; one bad
// feature must not take down the pass. Safe to call at any time and
// idempotent.
func (r *Reconciler) Sync() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.store.ShowFeatures() {
		for _, l := range r.canvas.Layers() {
			if l.ID() == "" {
				continue // in-progress drawing, not ours to touch
			}
			if err := r.canvas.Remove(l); err != nil {
				r.log.Warn().Err(err).Str("id", l.ID()).Msg("failed to hide layer")
			}
		}
		return
	}

	features := r.store.Features()
	highlighted := r.store.HighlightedID()
	desired := make(map[string]models.Feature, len(features))
	for _, f := range features {
		desired[f.ID()] = f
	}

	existing := make(map[string]Layer)
	for _, l := range r.canvas.Layers() {
		id := l.ID()
		if id == "" {
			continue
		}
		if _, ok := r.pendingCreates[id]; ok {
			continue // not in the store yet, leave the drawing alone
		}
		if _, ok := desired[id]; !ok {
			if err := r.canvas.Remove(l); err != nil {
				r.log.Warn().Err(err).Str("id", id).Msg("failed to remove stale layer")
			}
			continue
		}
		existing[id] = l
	}

	for _, f := range features {
		if r.pendingRemoves[f.ID()] {
			continue // deletion awaiting confirmation, leave the restored layer alone
		}
		if l, ok := existing[f.ID()]; ok {
			l.SetStyle(f.Properties.Color)
			l.SetHighlighted(f.ID() == highlighted)
			if f.Properties.Shape == models.ShapeText {
				l.SetText(f.Properties.Text)
			}
			continue
		}
		l, err := r.canvas.Materialize(f)
		if err != nil {
			r.log.Warn().Err(err).
				Str("id", f.ID()).
				Str("shape", string(f.Properties.Shape)).
				Msg("failed to materialize feature, skipping")
			continue
		}
		l.SetHighlighted(f.ID() == highlighted)
	}
}

// featureFromLayer builds the store representation of a drawn layer.
func featureFromLayer(l Layer) models.Feature {
	f := models.NewFeature(l.Shape(), l.Geometry())
	switch l.Shape() {
	case models.ShapeCircle:
		radius := l.Radius()
		f.Properties.Radius = &radius
	case models.ShapeText:
		f.Properties.Text = l.Text()
	}
	return f
}

// LayerCreated handles a finished drawing. Store-originated layers are
// ignored, breaking the materialize-create feedback loop. The drawn
// layer is tagged and held pending with a generated default name until
// ConfirmCreate or CancelCreate; the draft feature is returned so the
// caller can present it for naming.
func (r *Reconciler) LayerCreated(l Layer) (models.Feature, bool) {
	if l.StoreOriginated() {
		return models.Feature{}, false
	}

	f := featureFromLayer(l)
	f.Properties.Name = models.UniqueName(l.Shape(), r.store.UsedFeatureNames())
	l.TagID(f.ID())

	r.mu.Lock()
	r.pendingCreates[f.ID()] = pendingCreate{feature: f, layer: l}
	r.mu.Unlock()

	return f, true
}

// ConfirmCreate commits a pending drawing to the store with its final
// name and color. An empty name keeps the generated default.
func (r *Reconciler) ConfirmCreate(id, name, color string) error {
	r.mu.Lock()
	pending, ok := r.pendingCreates[id]
	if ok {
		delete(r.pendingCreates, id)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("no pending drawing %s", id)
	}

	f := pending.feature
	if name != "" {
		f.Properties.Name = name
	}
	f.Properties.Color = color
	if err := f.Validate(); err != nil {
		r.mu.Lock()
		r.pendingCreates[id] = pending
		r.mu.Unlock()
		return err
	}

	pending.layer.SetStyle(color)
	r.store.AddFeature(f)
	return nil
}

// CancelCreate discards a pending drawing and removes its layer.
func (r *Reconciler) CancelCreate(id string) error {
	r.mu.Lock()
	pending, ok := r.pendingCreates[id]
	if ok {
		delete(r.pendingCreates, id)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("no pending drawing %s", id)
	}
	return r.canvas.Remove(pending.layer)
}

// LayerEdited pushes a layer's current geometry back into its stored
// feature, replacing the whole feature and refreshing UpdatedAt.
func (r *Reconciler) LayerEdited(l Layer) error {
	id := l.ID()
	if id == "" {
		return fmt.Errorf("edited layer has no feature id")
	}

	r.mu.Lock()
	if pending, ok := r.pendingCreates[id]; ok {
		// Still unconfirmed: refresh the draft in place.
		updated := featureFromLayer(l)
		updated.Properties = pending.feature.Properties
		if l.Shape() == models.ShapeCircle {
			radius := l.Radius()
			updated.Properties.Radius = &radius
		}
		r.pendingCreates[id] = pendingCreate{feature: updated, layer: pending.layer}
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	f, err := r.store.FindFeature(id)
	if err != nil {
		return fmt.Errorf("edited layer %s: %w", id, err)
	}

	updated := featureFromLayer(l)
	updated.Properties = f.Properties
	switch l.Shape() {
	case models.ShapeCircle:
		radius := l.Radius()
		updated.Properties.Radius = &radius
	case models.ShapeText:
		updated.Properties.Text = l.Text()
	}
	updated.Properties.UpdatedAt = models.NowMillis()

	r.store.UpdateFeature(updated)
	return nil
}

// LayerRemoved handles a layer deleted on the canvas. Unconfirmed
// drawings are simply dropped. For stored features the drawing tool's
// optimistic removal is undone right away: the layer is rebuilt so it
// stays visible while the deletion awaits confirmation, and the
// feature id is returned for the confirmation prompt.
func (r *Reconciler) LayerRemoved(l Layer) (string, bool) {
	id := l.ID()
	if id == "" {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pendingCreates[id]; ok {
		delete(r.pendingCreates, id)
		return "", false
	}
	f, err := r.store.FindFeature(id)
	if err != nil {
		return "", false
	}
	if _, err := r.canvas.Materialize(f); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("failed to restore layer pending removal")
	}
	r.pendingRemoves[id] = true
	return id, true
}

// ConfirmRemove finalizes a pending deletion.
func (r *Reconciler) ConfirmRemove(id string) {
	r.mu.Lock()
	delete(r.pendingRemoves, id)
	r.mu.Unlock()
	r.store.RemoveFeature(id)
}

// CancelRemove abandons a pending deletion. The layer never left the
// canvas; the sync pass resumes refreshing it and restores one if it
// went missing in the meantime.
func (r *Reconciler) CancelRemove(id string) {
	r.mu.Lock()
	delete(r.pendingRemoves, id)
	r.mu.Unlock()
	r.Sync()
}
