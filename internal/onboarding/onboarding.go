// ABOUTME: Guided first-run tour state machine
// ABOUTME: Step progression with action gating, completion is persisted

package onboarding

import (
	"sync"

	"github.com/baptistelechat/geomark/internal/storage"
	"github.com/rs/zerolog"
)

// Actions that steps can wait for before advancing.
const (
	ActionPointAdded   = "point-added"
	ActionFeatureDrawn = "feature-drawn"
	ActionExported     = "exported"
)

// Step is one stop of the tour. AwaitAction names the user action that
// advances past it; empty means the step advances manually.
type Step struct {
	Target      string
	Title       string
	Content     string
	AwaitAction string
}

// DefaultSteps is the standard tour.
var DefaultSteps = []Step{
	{
		Target:  "map",
		Title:   "Bienvenue sur GeoMark",
		Content: "Annotez la carte avec des points et des formes. Ce guide vous montre l'essentiel.",
	},
	{
		Target:      "add-point",
		Title:       "Ajouter un point",
		Content:     "Cliquez sur la carte pour placer votre premier point.",
		AwaitAction: ActionPointAdded,
	},
	{
		Target:      "draw",
		Title:       "Dessiner une forme",
		Content:     "Utilisez les outils de dessin pour tracer un cercle, un polygone ou une ligne.",
		AwaitAction: ActionFeatureDrawn,
	},
	{
		Target:  "export",
		Title:   "Exporter vos données",
		Content: "Exportez vos annotations en CSV, JSON ou ZIP à tout moment.",
	},
}

// Tour tracks guided-tour progress. Whether the tour is running and
// the current step are process-local; completion survives restarts
// through the repository.
type Tour struct {
	repo  storage.Repository
	log   zerolog.Logger
	steps []Step

	mu         sync.Mutex
	run        bool
	stepIndex  int
	completed  bool
	lastAction string
}

// NewTour builds a tour over the default steps, hydrated from the
// repository's persisted completion flag.
func NewTour(repo storage.Repository, log zerolog.Logger) (*Tour, error) {
	state, err := repo.LoadOnboarding()
	if err != nil {
		return nil, err
	}
	return &Tour{
		repo:      repo,
		log:       log,
		steps:     DefaultSteps,
		completed: state.OnboardingCompleted,
	}, nil
}

// Start begins the tour from the first step. A tour the user already
// completed does not restart; use Reset for that.
func (t *Tour) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.completed || t.run {
		return
	}
	t.run = true
	t.stepIndex = 0
}

// Stop pauses the tour without marking it completed.
func (t *Tour) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.run = false
}

// Complete ends the tour for good and persists the completion.
func (t *Tour) Complete() {
	t.mu.Lock()
	t.run = false
	t.completed = true
	t.mu.Unlock()
	t.persist(true)
}

// Reset forgets completion so the tour can run again.
func (t *Tour) Reset() {
	t.mu.Lock()
	t.run = false
	t.stepIndex = 0
	t.completed = false
	t.mu.Unlock()
	t.persist(false)
}

func (t *Tour) persist(completed bool) {
	err := t.repo.SaveOnboarding(storage.Onboarding{OnboardingCompleted: completed})
	if err != nil {
		t.log.Error().Err(err).Msg("failed to persist onboarding state")
	}
}

// Next advances to the following step; past the last step the tour
// completes.
func (t *Tour) Next() {
	t.mu.Lock()
	if !t.run {
		t.mu.Unlock()
		return
	}
	if t.stepIndex+1 >= len(t.steps) {
		t.mu.Unlock()
		t.Complete()
		return
	}
	t.stepIndex++
	t.mu.Unlock()
}

// Prev steps back, clamped at the first step.
func (t *Tour) Prev() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.run || t.stepIndex == 0 {
		return
	}
	t.stepIndex--
}

// NotifyAction records a user action and advances the tour when the
// current step was waiting for it.
func (t *Tour) NotifyAction(action string) {
	t.mu.Lock()
	t.lastAction = action
	advance := t.run &&
		t.stepIndex < len(t.steps) &&
		t.steps[t.stepIndex].AwaitAction == action
	t.mu.Unlock()

	if advance {
		t.Next()
	}
}

// Running reports whether the tour is currently showing.
func (t *Tour) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.run
}

// StepIndex returns the current step position.
func (t *Tour) StepIndex() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stepIndex
}

// Completed reports whether the user has finished the tour.
func (t *Tour) Completed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed
}

// LastAction returns the most recently recorded user action.
func (t *Tour) LastAction() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastAction
}

// CurrentStep returns the step being shown.
func (t *Tour) CurrentStep() (Step, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.run || t.stepIndex >= len(t.steps) {
		return Step{}, false
	}
	return t.steps[t.stepIndex], true
}
