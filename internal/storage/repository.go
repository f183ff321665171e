// ABOUTME: Repository interface for durable annotation snapshots
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"os"
	"path/filepath"

	"github.com/baptistelechat/geomark/internal/models"
)

// State is the persisted snapshot of the annotation collections plus
// the layer visibility flags. It mirrors the web app's combined
// storage key, so a backend serializing it as JSON stays byte-for-byte
// compatible with the original layout.
type State struct {
	Points       []models.MapPoint `json:"points"`
	Features     []models.Feature  `json:"features"`
	ShowPoints   bool              `json:"showPoints"`
	ShowFeatures bool              `json:"showFeatures"`
}

// EmptyState returns the state a fresh install starts from:
// no entities, both layers visible.
func EmptyState() State {
	return State{ShowPoints: true, ShowFeatures: true}
}

// Onboarding is the persisted guided-tour snapshot, stored under its
// own key so resetting annotation data never replays the tour.
type Onboarding struct {
	OnboardingCompleted bool `json:"onboardingCompleted"`
}

// Repository persists full snapshots. Writes replace the previous
// snapshot wholesale; the in-memory store is the single writer and
// always the authority, so no finer granularity is needed.
type Repository interface {
	LoadState() (State, error)
	SaveState(State) error
	LoadOnboarding() (Onboarding, error)
	SaveOnboarding(Onboarding) error
	Close() error
}

// DefaultDataDir returns the default XDG data directory for geomark.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "geomark")
}
