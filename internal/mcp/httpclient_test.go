package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/streak"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client sends correct paths and
// query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

func TestExerciseCatalog(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.Exercise{
				{ID: "bench-press", Name: "Bench Press", IsDefault: true},
				{ID: "custom-1", Name: "Sled Push", IsCustom: true},
			})
		},
	})
	defer ts.Close()

	exercises, err := NewHTTPClient(ts.URL).ExerciseCatalog(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(exercises))
	}
	if exercises[0].ID != "bench-press" || !exercises[0].IsDefault {
		t.Errorf("first exercise = %+v", exercises[0])
	}
}

// TestSets verifies the client forwards the date range and exercise filter.
func TestSets(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sets": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2025-01-01" {
				t.Errorf("start=%q, want 2025-01-01", got)
			}
			if got := r.URL.Query().Get("exercise"); got != "bench" {
				t.Errorf("exercise=%q, want bench", got)
			}
			writeTestJSON(t, w, []models.SetEntry{
				{SessionDate: "2025-01-02", Exercise: "Bench Press", Weight: 135, Reps: 8},
			})
		},
	})
	defer ts.Close()

	sets, err := NewHTTPClient(ts.URL).Sets(context.Background(), 1, "2025-01-01", "2025-01-31", "bench")
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 || sets[0].Weight != 135 {
		t.Errorf("sets = %+v", sets)
	}
}

func TestStreaks(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats/streaks": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, streak.Stats{CurrentStreak: 3, LongestStreak: 9})
		},
	})
	defer ts.Close()

	stats, err := NewHTTPClient(ts.URL).Streaks(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.CurrentStreak != 3 || stats.LongestStreak != 9 {
		t.Errorf("stats = %+v", stats)
	}
}

// TestErrorStatus verifies non-200 responses surface as errors with the body.
func TestErrorStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/records": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).PersonalRecords(context.Background(), 1); err == nil {
		t.Error("PersonalRecords = nil error, want failure")
	}
}
