package catalog

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Bench Press", "bench-press"},
		{"  Incline   DB Press ", "incline-db-press"},
		{"Lat Pulldown (Wide)", "lat-pulldown-wide"},
		{"T-Bar Row", "t-bar-row"},
		{"BENCH PRESS", "bench-press"}, // collides with "Bench Press" by design
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeFallbackChain(t *testing.T) {
	e := models.Exercise{Machine: "Pec Deck"}
	Normalize(&e)
	if e.Name != "Pec Deck" {
		t.Errorf("name = %q, want machine fallback", e.Name)
	}

	var empty models.Exercise
	Normalize(&empty)
	if empty.Name != UnnamedExercise {
		t.Errorf("name = %q, want %q", empty.Name, UnnamedExercise)
	}
}

func TestResolveOverrideByID(t *testing.T) {
	defaults := []models.Exercise{
		{ID: "bench-press", Name: "Bench Press", BodyPart: "Chest", Sets: 3, Reps: 8},
	}
	overrides := []models.ExerciseOverride{
		{ID: "bench-press", OriginalID: "bench-press", Sets: 5, Reps: 5, Weight: 100},
	}

	got := Resolve(defaults, nil, overrides, nil)
	if len(got) != 1 {
		t.Fatalf("catalog size = %d, want 1", len(got))
	}
	e := got[0]
	if !e.IsOverridden {
		t.Error("IsOverridden = false, want true")
	}
	if e.Sets != 5 || e.Reps != 5 || e.Weight != 100 {
		t.Errorf("merged targets = %d/%d/%.0f, want 5/5/100", e.Sets, e.Reps, e.Weight)
	}
	// Untouched fields keep the default's values.
	if e.Name != "Bench Press" || e.BodyPart != "Chest" {
		t.Errorf("merged identity = %q/%q, default fields must survive", e.Name, e.BodyPart)
	}
	if e.Original == nil || e.Original.Sets != 3 {
		t.Error("back-reference to pristine default missing or mutated")
	}
}

func TestResolveOverrideByNameCaseInsensitive(t *testing.T) {
	defaults := []models.Exercise{
		{ID: "squat", Name: "Squat", Sets: 3},
	}
	overrides := []models.ExerciseOverride{
		{ID: "sq-ov", OriginalName: "SQUAT", Sets: 6},
	}

	got := Resolve(defaults, nil, overrides, nil)
	if len(got) != 1 || !got[0].IsOverridden || got[0].Sets != 6 {
		t.Fatalf("name-matched override not applied: %+v", got)
	}
}

func TestResolveIDMatchWinsOverNameMatch(t *testing.T) {
	defaults := []models.Exercise{
		{ID: "deadlift", Name: "Deadlift"},
	}
	overrides := []models.ExerciseOverride{
		{ID: "o1", OriginalName: "deadlift", Reps: 3},
		{ID: "o2", OriginalID: "deadlift", Reps: 1},
	}

	got := Resolve(defaults, nil, overrides, nil)
	if got[0].Reps != 1 {
		t.Errorf("reps = %d, want 1 (id match takes precedence)", got[0].Reps)
	}
}

func TestResolveHiddenRemovesDefaultsAndCustoms(t *testing.T) {
	defaults := []models.Exercise{
		{ID: "bench-press", Name: "Bench Press"},
		{ID: "squat", Name: "Squat"},
	}
	customs := []models.Exercise{
		{ID: "c1", Name: "Cable Fly"},
	}
	hidden := []models.HiddenMarker{
		{ID: "h1", ExerciseID: "squat"},
		{ID: "h2", Name: "CABLE FLY"},
	}

	got := Resolve(defaults, customs, nil, hidden)
	if len(got) != 1 || got[0].ID != "bench-press" {
		t.Fatalf("catalog = %+v, want only bench-press", got)
	}
}

func TestResolveConcatenatesCustoms(t *testing.T) {
	defaults := []models.Exercise{{ID: "a", Name: "A"}}
	customs := []models.Exercise{{ID: "c", Name: "C"}}

	got := Resolve(defaults, customs, nil, nil)
	if len(got) != 2 {
		t.Fatalf("catalog size = %d, want 2", len(got))
	}
	if !got[0].IsDefault || got[1].IsDefault {
		t.Error("provenance flags wrong on merge")
	}
	if !got[1].IsCustom {
		t.Error("custom entry not flagged IsCustom")
	}
}

// TestResolveDeterministic re-runs the merge on identical inputs and
// expects an identical catalog.
func TestResolveDeterministic(t *testing.T) {
	defaults := []models.Exercise{
		{ID: "bench-press", Name: "Bench Press", Sets: 3},
		{ID: "squat", Name: "Squat", Sets: 3},
	}
	customs := []models.Exercise{{ID: "c1", Name: "Cable Fly"}}
	overrides := []models.ExerciseOverride{{ID: "o1", OriginalID: "squat", Sets: 5}}
	hidden := []models.HiddenMarker{{ID: "h1", Name: "cable fly"}}

	first := Resolve(defaults, customs, overrides, hidden)
	second := Resolve(defaults, customs, overrides, hidden)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("merge not deterministic:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

// --- Loader fallback behavior ---

type fakeSource struct {
	defaults  []models.Exercise
	customs   []models.Exercise
	overrides []models.ExerciseOverride
	hidden    []models.HiddenMarker

	failDefaults, failCustoms bool
}

var errDown = errors.New("store unavailable")

func (f *fakeSource) QueryDefaultExercises(context.Context) ([]models.Exercise, error) {
	if f.failDefaults {
		return nil, errDown
	}
	return f.defaults, nil
}

func (f *fakeSource) QueryCustomExercises(context.Context, int) ([]models.Exercise, error) {
	if f.failCustoms {
		return nil, errDown
	}
	return f.customs, nil
}

func (f *fakeSource) QueryExerciseOverrides(context.Context, int) ([]models.ExerciseOverride, error) {
	return f.overrides, nil
}

func (f *fakeSource) QueryHiddenExercises(context.Context, int) ([]models.HiddenMarker, error) {
	return f.hidden, nil
}

func TestLoaderDegradesToDefaultsOnly(t *testing.T) {
	src := &fakeSource{
		defaults:    []models.Exercise{{ID: "a", Name: "A"}},
		customs:     []models.Exercise{{ID: "c", Name: "C"}},
		failCustoms: true,
	}
	l := NewLoader(src, slog.Default())

	got := l.Load(context.Background(), 1)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("catalog = %+v, want defaults only", got)
	}
}

func TestLoaderHardcodedFallback(t *testing.T) {
	l := NewLoader(&fakeSource{failDefaults: true}, slog.Default())

	got := l.Load(context.Background(), 1)
	if len(got) != 1 || got[0].ID != "bench-press" {
		t.Fatalf("catalog = %+v, want single hardcoded entry", got)
	}
}

func TestResolveTemplatesLayering(t *testing.T) {
	defaults := []models.WorkoutTemplate{
		{ID: "push-day", Name: "Push Day"},
		{ID: "pull-day", Name: "Pull Day"},
	}
	customs := []models.WorkoutTemplate{
		{ID: "u1", Name: "My Push", OverrideOf: "push-day"},
		{ID: "u2", OverrideOf: "pull-day", IsHidden: true},
		{ID: "u3", Name: "Leg Day"},
	}

	got := ResolveTemplates(defaults, customs)
	if len(got) != 2 {
		t.Fatalf("templates = %+v, want 2 entries", got)
	}
	if got[0].ID != "push-day" || got[0].Name != "My Push" || !got[0].IsDefault {
		t.Errorf("override not applied: %+v", got[0])
	}
	if got[1].Name != "Leg Day" || !got[1].IsCustom {
		t.Errorf("custom template wrong: %+v", got[1])
	}
}
