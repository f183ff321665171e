// ABOUTME: In-memory state container for points, features, and visibility flags
// ABOUTME: Writes through to a storage repository on every mutation

package store

import (
	"sync"

	"github.com/baptistelechat/geomark/internal/models"
	"github.com/baptistelechat/geomark/internal/storage"
	"github.com/rs/zerolog"
)

// Store holds the annotation collections and is the single source of
// truth for them. Every mutation writes the full snapshot through to
// the repository; persistence failures are logged, never surfaced, and
// the in-memory state stays authoritative. Created once at application
// start and shared by every consumer.
type Store struct {
	mu           sync.RWMutex
	points       []models.MapPoint
	features     []models.Feature
	showPoints   bool
	showFeatures bool
	view         viewControl

	repo     storage.Repository
	log      zerolog.Logger
	watchers []func()
}

// New creates a store hydrated from the repository's persisted snapshot.
func New(repo storage.Repository, log zerolog.Logger) (*Store, error) {
	state, err := repo.LoadState()
	if err != nil {
		return nil, err
	}
	return &Store{
		points:       state.Points,
		features:     state.Features,
		showPoints:   state.ShowPoints,
		showFeatures: state.ShowFeatures,
		repo:         repo,
		log:          log,
	}, nil
}

// Watch registers a callback invoked after every mutation. The
// reconciler uses this to schedule sync passes. Callbacks run outside
// the store lock and may read the store freely.
func (s *Store) Watch(fn func()) {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}

// commit persists the current snapshot and wakes watchers. Must be
// called without the lock held.
func (s *Store) commit() {
	s.mu.RLock()
	state := storage.State{
		Points:       append([]models.MapPoint(nil), s.points...),
		Features:     append([]models.Feature(nil), s.features...),
		ShowPoints:   s.showPoints,
		ShowFeatures: s.showFeatures,
	}
	watchers := append([]func(){}, s.watchers...)
	s.mu.RUnlock()

	if err := s.repo.SaveState(state); err != nil {
		s.log.Error().Err(err).Msg("failed to persist state")
	}
	for _, fn := range watchers {
		fn()
	}
}

/* --------------------- Points --------------------- */

// Points returns a copy of the point collection in insertion order.
func (s *Store) Points() []models.MapPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MapPoint(nil), s.points...)
}

// FindPoint returns the point with the given id.
func (s *Store) FindPoint(id string) (models.MapPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.points {
		if p.ID == id {
			return p, nil
		}
	}
	return models.MapPoint{}, storage.ErrNotFound
}

// AddPoint appends a fully-formed point to the collection.
func (s *Store) AddPoint(p models.MapPoint) {
	s.mu.Lock()
	s.points = append(s.points, p)
	s.mu.Unlock()
	s.commit()
}

// UpdatePoint replaces the point whose id matches. Unknown ids are a
// no-op, not an error.
func (s *Store) UpdatePoint(p models.MapPoint) {
	s.mu.Lock()
	changed := false
	for i := range s.points {
		if s.points[i].ID == p.ID {
			s.points[i] = p
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.commit()
	}
}

// RemovePoint removes the point with the given id. Absent ids are a no-op.
func (s *Store) RemovePoint(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.points {
		if s.points[i].ID == id {
			s.points = append(s.points[:i], s.points[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.commit()
	}
}

// ClearPoints empties the point collection.
func (s *Store) ClearPoints() {
	s.mu.Lock()
	s.points = nil
	s.mu.Unlock()
	s.commit()
}

// ImportMergePoints upserts a batch by id: existing entries are
// replaced in place, new ones appended. Entries absent from the batch
// are left untouched.
func (s *Store) ImportMergePoints(incoming []models.MapPoint) {
	s.mu.Lock()
	index := make(map[string]int, len(s.points))
	for i, p := range s.points {
		index[p.ID] = i
	}
	for _, p := range incoming {
		if i, ok := index[p.ID]; ok {
			s.points[i] = p
		} else {
			index[p.ID] = len(s.points)
			s.points = append(s.points, p)
		}
	}
	s.mu.Unlock()
	s.commit()
}

/* --------------------- Features --------------------- */

// Features returns a copy of the feature collection in insertion order.
func (s *Store) Features() []models.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Feature(nil), s.features...)
}

// FindFeature returns the feature with the given properties id.
func (s *Store) FindFeature(id string) (models.Feature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.features {
		if f.ID() == id {
			return f, nil
		}
	}
	return models.Feature{}, storage.ErrNotFound
}

// UsedFeatureNames returns the non-empty names currently assigned to
// features, for default-name generation.
func (s *Store) UsedFeatureNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for _, f := range s.features {
		if f.Properties.Name != "" {
			names = append(names, f.Properties.Name)
		}
	}
	return names
}

// AddFeature appends a fully-formed feature to the collection.
func (s *Store) AddFeature(f models.Feature) {
	s.mu.Lock()
	s.features = append(s.features, f)
	s.mu.Unlock()
	s.commit()
}

// UpdateFeature replaces the feature whose properties id matches.
// The whole feature is replaced (last-writer-wins per feature, no
// per-field merging). Unknown ids are a no-op.
func (s *Store) UpdateFeature(f models.Feature) {
	s.mu.Lock()
	changed := false
	for i := range s.features {
		if s.features[i].ID() == f.ID() {
			s.features[i] = f
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.commit()
	}
}

// RemoveFeature removes the feature with the given id. Absent ids are a no-op.
func (s *Store) RemoveFeature(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.features {
		if s.features[i].ID() == id {
			s.features = append(s.features[:i], s.features[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.commit()
	}
}

// ClearFeatures empties the feature collection.
func (s *Store) ClearFeatures() {
	s.mu.Lock()
	s.features = nil
	s.mu.Unlock()
	s.commit()
}

// ImportMergeFeatures upserts a batch by properties id, same policy as
// ImportMergePoints.
func (s *Store) ImportMergeFeatures(incoming []models.Feature) {
	s.mu.Lock()
	index := make(map[string]int, len(s.features))
	for i, f := range s.features {
		index[f.ID()] = i
	}
	for _, f := range incoming {
		if i, ok := index[f.ID()]; ok {
			s.features[i] = f
		} else {
			index[f.ID()] = len(s.features)
			s.features = append(s.features, f)
		}
	}
	s.mu.Unlock()
	s.commit()
}

// ReplaceAll swaps both collections wholesale. Used by replace-mode
// import after its safety backup has been written.
func (s *Store) ReplaceAll(points []models.MapPoint, features []models.Feature) {
	s.mu.Lock()
	s.points = append([]models.MapPoint(nil), points...)
	s.features = append([]models.Feature(nil), features...)
	s.mu.Unlock()
	s.commit()
}

/* --------------------- Visibility --------------------- */

// ShowPoints reports whether the points layer is rendered.
func (s *Store) ShowPoints() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showPoints
}

// ShowFeatures reports whether the features layer is rendered.
func (s *Store) ShowFeatures() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showFeatures
}

// SetShowPoints toggles the points layer. Persisted.
func (s *Store) SetShowPoints(show bool) {
	s.mu.Lock()
	s.showPoints = show
	s.mu.Unlock()
	s.commit()
}

// SetShowFeatures toggles the features layer. Persisted.
func (s *Store) SetShowFeatures(show bool) {
	s.mu.Lock()
	s.showFeatures = show
	s.mu.Unlock()
	s.commit()
}
