package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/claude/liftlog/internal/streak"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestParseDayRangeDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	start, end, err := parseDayRange(req)
	if err != nil {
		t.Fatalf("parseDayRange: %v", err)
	}
	if end != streak.FormatDay(time.Now()) {
		t.Errorf("end = %q, want today", end)
	}
	if start >= end {
		t.Errorf("start %q not before end %q", start, end)
	}
}

func TestParseDayRangeExplicit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sessions?start=2025-01-01&end=2025-02-01", nil)
	start, end, err := parseDayRange(req)
	if err != nil {
		t.Fatalf("parseDayRange: %v", err)
	}
	if start != "2025-01-01" || end != "2025-02-01" {
		t.Errorf("range = %q..%q", start, end)
	}
}

func TestParseDayRangeRejectsBadDates(t *testing.T) {
	for _, q := range []string{"start=01/02/2025", "start=2025-01-01&end=nope"} {
		req := httptest.NewRequest(http.MethodGet, "/sessions?"+q, nil)
		if _, _, err := parseDayRange(req); err == nil {
			t.Errorf("parseDayRange(%q) = nil error, want failure", q)
		}
	}
}

func TestSessionViewStatus(t *testing.T) {
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	completed := started.Add(45 * time.Minute)

	s := &models.WorkoutSession{
		UserID:      1,
		Date:        "2025-06-01",
		StartedAt:   started,
		CompletedAt: &completed,
	}
	v := viewOf(s, completed.Add(time.Hour))

	if v.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", v.Status)
	}
	if v.ElapsedSeconds != 45*60 {
		t.Errorf("elapsed = %d, want %d", v.ElapsedSeconds, 45*60)
	}
}

func TestOverrideID(t *testing.T) {
	tests := []struct {
		name string
		o    models.ExerciseOverride
		want string
	}{
		{"body id wins", models.ExerciseOverride{ID: "bench", OriginalID: "bench-press"}, "bench"},
		{"route id", models.ExerciseOverride{OriginalID: "bench-press"}, "bench-press"},
		{"name keyed slug", models.ExerciseOverride{OriginalName: "Bench Press"}, "bench-press"},
		{"nothing to key on", models.ExerciseOverride{}, ""},
	}
	for _, tt := range tests {
		if got := overrideID(tt.o); got != tt.want {
			t.Errorf("%s: overrideID = %q, want %q", tt.name, got, tt.want)
		}
	}
}

type fakeSetStore struct {
	inserted int64
	lookups  int
	upserts  int
}

func (f *fakeSetStore) InsertSets(_ context.Context, rows []models.SetEntry) (int64, error) {
	return f.inserted, nil
}

func (f *fakeSetStore) GetPersonalRecord(_ context.Context, userID int, exercise, equipment string) (*models.PersonalRecord, error) {
	f.lookups++
	return &models.PersonalRecord{UserID: userID, Exercise: exercise, Equipment: equipment}, nil
}

func (f *fakeSetStore) UpsertPersonalRecord(_ context.Context, rec *models.PersonalRecord) error {
	f.upserts++
	return nil
}

func TestStoreSet(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	set := models.SetEntry{UserID: 1, SessionDate: "2025-06-01", Exercise: "Bench Press", Weight: 100, Reps: 5}

	store := &fakeSetStore{inserted: 1}
	status, body := storeSet(context.Background(), store, log, set)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	resp := body.(map[string]any)
	if updates := resp["record_updates"].(records.Updates); !updates.Any() {
		t.Errorf("updates = %+v, want a fresh record beaten", updates)
	}
	if store.upserts != 1 {
		t.Errorf("upserts = %d, want 1", store.upserts)
	}
}

func TestStoreSetReplayedSetConflicts(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	set := models.SetEntry{UserID: 1, SessionDate: "2025-06-01", Exercise: "Bench Press", SetNumber: 1, Weight: 100, Reps: 5}

	store := &fakeSetStore{inserted: 0}
	status, _ := storeSet(context.Background(), store, log, set)
	if status != http.StatusConflict {
		t.Fatalf("status = %d, want 409", status)
	}
	if store.lookups != 0 || store.upserts != 0 {
		t.Errorf("record evaluation ran against an unstored set (lookups=%d, upserts=%d)", store.lookups, store.upserts)
	}
}

func TestNextSetNumber(t *testing.T) {
	existing := []models.SetEntry{
		{Exercise: "Bench Press", SetNumber: 1},
		{Exercise: "Bench Press", SetNumber: 2},
		{Exercise: "Squat", SetNumber: 4},
	}

	if n := nextSetNumber(existing, "Bench Press"); n != 3 {
		t.Errorf("next bench set = %d, want 3", n)
	}
	if n := nextSetNumber(existing, "Deadlift"); n != 1 {
		t.Errorf("next deadlift set = %d, want 1", n)
	}
}
