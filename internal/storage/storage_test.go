// ABOUTME: Tests for badger and SQLite repository backends
// ABOUTME: Verifies snapshot round-trips and fresh-install defaults

package storage

import (
	"path/filepath"
	"testing"

	"github.com/baptistelechat/geomark/internal/models"
	"github.com/paulmach/orb"
)

// backends lists every Repository implementation under test.
func backends(t *testing.T) map[string]Repository {
	t.Helper()

	badgerStore, err := NewBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open badger store: %v", err)
	}
	t.Cleanup(func() { _ = badgerStore.Close() })

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "geomark.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Repository{
		"badger": badgerStore,
		"sqlite": sqliteStore,
	}
}

func testState(t *testing.T) State {
	t.Helper()

	point, err := models.NewMapPoint("Tour Eiffel", 48.8584, 2.2945)
	if err != nil {
		t.Fatalf("failed to create point: %v", err)
	}
	point.Notes = "Champ de Mars"
	point.Icon = "star"

	radius := 500.0
	circle := models.NewFeature(models.ShapeCircle, orb.Point{2.2945, 48.8584})
	circle.Properties.Radius = &radius
	circle.Properties.Name = "Cercle 1"
	circle.Properties.Color = "#65a30d"

	line := models.NewFeature(models.ShapeLine, orb.LineString{{2.29, 48.85}, {2.35, 48.86}})
	line.Properties.Name = "Ligne 1"

	return State{
		Points:       []models.MapPoint{point},
		Features:     []models.Feature{circle, line},
		ShowPoints:   true,
		ShowFeatures: false,
	}
}

func TestLoadState_FreshInstall(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			state, err := repo.LoadState()
			if err != nil {
				t.Fatalf("failed to load state: %v", err)
			}
			if len(state.Points) != 0 || len(state.Features) != 0 {
				t.Errorf("fresh state should be empty, got %d points, %d features",
					len(state.Points), len(state.Features))
			}
			if !state.ShowPoints || !state.ShowFeatures {
				t.Error("layers should be visible by default")
			}
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			want := testState(t)
			if err := repo.SaveState(want); err != nil {
				t.Fatalf("failed to save state: %v", err)
			}

			got, err := repo.LoadState()
			if err != nil {
				t.Fatalf("failed to load state: %v", err)
			}

			if len(got.Points) != 1 {
				t.Fatalf("got %d points, want 1", len(got.Points))
			}
			p := got.Points[0]
			if p.Title != "Tour Eiffel" || p.Lat != 48.8584 || p.Lng != 2.2945 {
				t.Errorf("point did not round-trip: %+v", p)
			}
			if p.Notes != "Champ de Mars" || p.Icon != "star" {
				t.Errorf("point attributes did not round-trip: %+v", p)
			}

			if len(got.Features) != 2 {
				t.Fatalf("got %d features, want 2", len(got.Features))
			}
			circle := got.Features[0]
			if circle.Properties.Shape != models.ShapeCircle {
				t.Errorf("got shape %q, want Circle", circle.Properties.Shape)
			}
			if circle.Properties.Radius == nil || *circle.Properties.Radius != 500 {
				t.Errorf("circle radius did not round-trip: %v", circle.Properties.Radius)
			}
			if got.Features[1].Properties.Shape != models.ShapeLine {
				t.Error("feature order was not preserved")
			}

			if got.ShowPoints != true || got.ShowFeatures != false {
				t.Errorf("visibility flags did not round-trip: %+v", got)
			}
		})
	}
}

func TestSaveState_Replaces(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.SaveState(testState(t)); err != nil {
				t.Fatalf("failed to save state: %v", err)
			}
			if err := repo.SaveState(EmptyState()); err != nil {
				t.Fatalf("failed to save empty state: %v", err)
			}

			got, err := repo.LoadState()
			if err != nil {
				t.Fatalf("failed to load state: %v", err)
			}
			if len(got.Points) != 0 || len(got.Features) != 0 {
				t.Errorf("save should replace the previous snapshot, got %d points, %d features",
					len(got.Points), len(got.Features))
			}
		})
	}
}

func TestOnboardingRoundTrip(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ob, err := repo.LoadOnboarding()
			if err != nil {
				t.Fatalf("failed to load onboarding: %v", err)
			}
			if ob.OnboardingCompleted {
				t.Error("onboarding should start incomplete")
			}

			if err := repo.SaveOnboarding(Onboarding{OnboardingCompleted: true}); err != nil {
				t.Fatalf("failed to save onboarding: %v", err)
			}

			ob, err = repo.LoadOnboarding()
			if err != nil {
				t.Fatalf("failed to reload onboarding: %v", err)
			}
			if !ob.OnboardingCompleted {
				t.Error("onboarding completion did not persist")
			}
		})
	}
}
