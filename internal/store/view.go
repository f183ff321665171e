// ABOUTME: Transient view-control state for the map viewport
// ABOUTME: One-shot fly-to requests and the highlighted entity id

package store

// FlyToLocation asks the map to animate to a coordinate. Zoom 0 means
// the consumer's default zoom.
type FlyToLocation struct {
	Lat  float64
	Lng  float64
	Zoom int
}

// BoundsOptions tunes a fly-to-bounds animation.
type BoundsOptions struct {
	MaxZoom          int
	SkipHideFeatures bool
}

// FlyToBounds asks the map to animate to a bounding box given as
// [[south, west], [north, east]].
type FlyToBounds struct {
	Bounds  [2][2]float64
	Options BoundsOptions
}

// viewControl is the process-lifetime, never-persisted part of the
// store: pending viewport commands and the highlighted entity.
type viewControl struct {
	flyToLocation *FlyToLocation
	flyToBounds   *FlyToBounds
	highlightedID string
}

// SetFlyToLocation queues a fly-to request for the map view.
func (s *Store) SetFlyToLocation(target FlyToLocation) {
	s.mu.Lock()
	t := target
	s.view.flyToLocation = &t
	s.mu.Unlock()
	s.notify()
}

// ConsumeFlyToLocation returns the pending fly-to request and clears
// it, so the same target can be re-triggered later.
func (s *Store) ConsumeFlyToLocation() (FlyToLocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.flyToLocation == nil {
		return FlyToLocation{}, false
	}
	t := *s.view.flyToLocation
	s.view.flyToLocation = nil
	return t, true
}

// SetFlyToBounds queues a fly-to-bounds request for the map view.
func (s *Store) SetFlyToBounds(target FlyToBounds) {
	s.mu.Lock()
	t := target
	s.view.flyToBounds = &t
	s.mu.Unlock()
	s.notify()
}

// ConsumeFlyToBounds returns the pending bounds request and clears it.
func (s *Store) ConsumeFlyToBounds() (FlyToBounds, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.flyToBounds == nil {
		return FlyToBounds{}, false
	}
	t := *s.view.flyToBounds
	s.view.flyToBounds = nil
	return t, true
}

// SetHighlightedID marks a point or feature as emphasized.
func (s *Store) SetHighlightedID(id string) {
	s.mu.Lock()
	s.view.highlightedID = id
	s.mu.Unlock()
	s.notify()
}

// ClearHighlight drops the emphasis; called on background clicks.
func (s *Store) ClearHighlight() {
	s.SetHighlightedID("")
}

// HighlightedID returns the currently emphasized entity id, or "".
func (s *Store) HighlightedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.highlightedID
}

// notify wakes watchers without persisting; view-control state is
// transient and never written to the repository.
func (s *Store) notify() {
	s.mu.RLock()
	watchers := append([]func(){}, s.watchers...)
	s.mu.RUnlock()
	for _, fn := range watchers {
		fn()
	}
}
