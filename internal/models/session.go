package models

import "time"

// SessionStatus is the completion state of a workout session, derived from
// which timestamp fields are populated. Exactly one state holds at a time.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
)

// WorkoutSession is one calendar-day workout instance, keyed by its
// YYYY-MM-DD date string. At most one session exists per user per date.
// Template is a frozen copy taken at start so later template edits do not
// rewrite history.
type WorkoutSession struct {
	UserID        int              `json:"user_id"`
	Date          string           `json:"date"`
	StartedAt     time.Time        `json:"started_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	CancelledAt   *time.Time       `json:"cancelled_at,omitempty"`
	PausedAt      *time.Time       `json:"paused_at,omitempty"`
	PausedSeconds int              `json:"paused_seconds,omitempty"`
	Template      *WorkoutTemplate `json:"template,omitempty"`
}

// Status derives the completion state from the populated timestamps.
// Cancelled wins over completed if both are somehow set (last-write-wins
// storage makes that possible but the lifecycle never produces it).
func (s *WorkoutSession) Status() SessionStatus {
	switch {
	case s.CancelledAt != nil:
		return StatusCancelled
	case s.CompletedAt != nil:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// SetEntry is one logged set within a session.
type SetEntry struct {
	UserID      int       `json:"user_id"`
	SessionDate string    `json:"session_date"`
	Exercise    string    `json:"exercise"`
	Equipment   string    `json:"equipment,omitempty"`
	SetNumber   int       `json:"set_number"`
	Weight      float64   `json:"weight"`
	Unit        string    `json:"unit,omitempty"`
	Reps        int       `json:"reps"`
	Location    string    `json:"location,omitempty"`
	LoggedAt    time.Time `json:"logged_at,omitzero"`
}

// Volume is the set's training volume (reps x weight).
func (e SetEntry) Volume() float64 {
	return float64(e.Reps) * e.Weight
}
