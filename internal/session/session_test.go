package session

import (
	"errors"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

var t0 = time.Date(2025, 1, 3, 18, 0, 0, 0, time.Local)

func TestStartDefaultsToToday(t *testing.T) {
	s, err := Start(1, "", nil, t0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Date != "2025-01-03" {
		t.Errorf("date = %q, want 2025-01-03", s.Date)
	}
	if s.Status() != models.StatusInProgress {
		t.Errorf("status = %q, want in_progress", s.Status())
	}
}

func TestStartRejectsBadDate(t *testing.T) {
	if _, err := Start(1, "03/01/2025", nil, t0); err == nil {
		t.Error("Start with slash date = nil error, want failure")
	}
}

// TestStartFreezesTemplate: editing the original template after start must
// not change the session's copy.
func TestStartFreezesTemplate(t *testing.T) {
	tmpl := &models.WorkoutTemplate{
		ID:   "push-day",
		Name: "Push Day",
		Exercises: []models.TemplateExercise{
			{Name: "Bench Press", Sets: 3, Reps: 8},
		},
	}
	s, err := Start(1, "2025-01-03", tmpl, t0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	tmpl.Name = "Renamed"
	tmpl.Exercises[0].Reps = 99

	if s.Template.Name != "Push Day" {
		t.Errorf("frozen name = %q, want Push Day", s.Template.Name)
	}
	if s.Template.Exercises[0].Reps != 8 {
		t.Errorf("frozen reps = %d, want 8", s.Template.Exercises[0].Reps)
	}
}

func TestPauseResumeAccumulates(t *testing.T) {
	s, _ := Start(1, "2025-01-03", nil, t0)

	if err := Pause(s, t0.Add(10*time.Minute)); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if err := Pause(s, t0.Add(11*time.Minute)); !errors.Is(err, ErrAlreadyPaused) {
		t.Errorf("double pause error = %v, want ErrAlreadyPaused", err)
	}
	if err := Resume(s, t0.Add(15*time.Minute)); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if s.PausedSeconds != 300 {
		t.Errorf("paused seconds = %d, want 300", s.PausedSeconds)
	}
	if err := Resume(s, t0.Add(16*time.Minute)); !errors.Is(err, ErrNotPaused) {
		t.Errorf("double resume error = %v, want ErrNotPaused", err)
	}

	if got := Elapsed(s, t0.Add(20*time.Minute)); got != 15*time.Minute {
		t.Errorf("elapsed = %v, want 15m", got)
	}
}

func TestCompleteWhilePausedFoldsPause(t *testing.T) {
	s, _ := Start(1, "2025-01-03", nil, t0)
	if err := Pause(s, t0.Add(30*time.Minute)); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if err := Complete(s, t0.Add(45*time.Minute)); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if s.Status() != models.StatusCompleted {
		t.Errorf("status = %q, want completed", s.Status())
	}
	if got := Elapsed(s, t0.Add(2*time.Hour)); got != 30*time.Minute {
		t.Errorf("elapsed = %v, want 30m (paused tail excluded)", got)
	}
}

func TestTransitionsRejectedAfterFinish(t *testing.T) {
	s, _ := Start(1, "2025-01-03", nil, t0)
	if err := Cancel(s, t0.Add(time.Minute)); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if s.Status() != models.StatusCancelled {
		t.Errorf("status = %q, want cancelled", s.Status())
	}

	for name, err := range map[string]error{
		"pause":    Pause(s, t0.Add(2*time.Minute)),
		"resume":   Resume(s, t0.Add(2*time.Minute)),
		"complete": Complete(s, t0.Add(2*time.Minute)),
		"cancel":   Cancel(s, t0.Add(2*time.Minute)),
	} {
		if !errors.Is(err, ErrNotInProgress) {
			t.Errorf("%s on cancelled session = %v, want ErrNotInProgress", name, err)
		}
	}
}
