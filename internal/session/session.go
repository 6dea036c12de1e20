// Package session implements the workout session lifecycle: start, pause,
// resume, complete, cancel. A session is keyed by its calendar date and
// carries a frozen copy of the template it was started from, so later
// template edits never rewrite history.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/streak"
)

var (
	// ErrNotInProgress is returned for transitions on a finished session.
	ErrNotInProgress = errors.New("session is not in progress")
	// ErrNotPaused is returned when resuming a session that isn't paused.
	ErrNotPaused = errors.New("session is not paused")
	// ErrAlreadyPaused is returned when pausing twice.
	ErrAlreadyPaused = errors.New("session is already paused")
)

// Start creates a new in-progress session for the given date. The template
// is copied by value into the session. An empty date means "today" in the
// server's local timezone; a supplied date must be a valid YYYY-MM-DD day.
func Start(userID int, date string, tmpl *models.WorkoutTemplate, now time.Time) (*models.WorkoutSession, error) {
	if date == "" {
		date = streak.FormatDay(now)
	} else if _, err := streak.ParseDay(date); err != nil {
		return nil, fmt.Errorf("invalid session date: %w", err)
	}

	s := &models.WorkoutSession{
		UserID:    userID,
		Date:      date,
		StartedAt: now,
	}
	if tmpl != nil {
		frozen := *tmpl
		frozen.Exercises = append([]models.TemplateExercise(nil), tmpl.Exercises...)
		s.Template = &frozen
	}
	return s, nil
}

// Pause suspends the session timer.
func Pause(s *models.WorkoutSession, now time.Time) error {
	if s.Status() != models.StatusInProgress {
		return ErrNotInProgress
	}
	if s.PausedAt != nil {
		return ErrAlreadyPaused
	}
	s.PausedAt = &now
	return nil
}

// Resume restarts the timer, folding the paused interval into
// PausedSeconds.
func Resume(s *models.WorkoutSession, now time.Time) error {
	if s.Status() != models.StatusInProgress {
		return ErrNotInProgress
	}
	if s.PausedAt == nil {
		return ErrNotPaused
	}
	s.PausedSeconds += int(now.Sub(*s.PausedAt).Seconds())
	s.PausedAt = nil
	return nil
}

// Complete marks the session finished. A paused session is resumed first
// so the paused time is accounted for.
func Complete(s *models.WorkoutSession, now time.Time) error {
	if s.Status() != models.StatusInProgress {
		return ErrNotInProgress
	}
	if s.PausedAt != nil {
		if err := Resume(s, now); err != nil {
			return err
		}
	}
	s.CompletedAt = &now
	return nil
}

// Cancel abandons the session. Logged sets are kept in storage but the
// session no longer counts toward streaks.
func Cancel(s *models.WorkoutSession, now time.Time) error {
	if s.Status() != models.StatusInProgress {
		return ErrNotInProgress
	}
	s.CancelledAt = &now
	return nil
}

// Elapsed returns the active workout duration at the given instant:
// wall-clock time since start minus accumulated paused time. For finished
// sessions the end timestamp caps the calculation.
func Elapsed(s *models.WorkoutSession, now time.Time) time.Duration {
	end := now
	switch {
	case s.CompletedAt != nil:
		end = *s.CompletedAt
	case s.CancelledAt != nil:
		end = *s.CancelledAt
	case s.PausedAt != nil:
		end = *s.PausedAt
	}
	d := end.Sub(s.StartedAt) - time.Duration(s.PausedSeconds)*time.Second
	if d < 0 {
		return 0
	}
	return d
}
