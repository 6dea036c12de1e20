package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrSessionExists is returned when starting a second session on a date
// that already has one.
var ErrSessionExists = errors.New("a session already exists for this date")

// ErrSessionNotFound is returned for operations on a missing session.
var ErrSessionNotFound = errors.New("session not found")

// InsertSession creates the session row for its date. At most one session
// exists per user per date; a duplicate start fails with ErrSessionExists.
func (db *DB) InsertSession(ctx context.Context, s *models.WorkoutSession) error {
	var template []byte
	if s.Template != nil {
		var err error
		template, err = json.Marshal(s.Template)
		if err != nil {
			return fmt.Errorf("encoding session template: %w", err)
		}
	}
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (user_id, date, started_at, template)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT DO NOTHING`,
		s.UserID, s.Date, s.StartedAt, template)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionExists
	}
	return nil
}

// UpdateSession persists lifecycle changes (pause/resume/complete/cancel).
// The whole row is overwritten; the store's last-write-wins semantics are
// relied upon, there is no compare-and-swap.
func (db *DB) UpdateSession(ctx context.Context, s *models.WorkoutSession) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_sessions
		 SET completed_at = $3, cancelled_at = $4, paused_at = $5, paused_seconds = $6
		 WHERE user_id = $1 AND date = $2`,
		s.UserID, s.Date, s.CompletedAt, s.CancelledAt, s.PausedAt, s.PausedSeconds)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// GetSession retrieves one session by date.
func (db *DB) GetSession(ctx context.Context, userID int, date string) (*models.WorkoutSession, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT user_id, date, started_at, completed_at, cancelled_at, paused_at, paused_seconds, template
		 FROM workout_sessions
		 WHERE user_id = $1 AND date = $2`,
		userID, date)

	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	return s, err
}

// QuerySessions retrieves sessions in a date range (inclusive day strings),
// most recent first.
func (db *DB) QuerySessions(ctx context.Context, userID int, start, end string) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, date, started_at, completed_at, cancelled_at, paused_at, paused_seconds, template
		 FROM workout_sessions
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// DeleteSession removes a session and its logged sets.
func (db *DB) DeleteSession(ctx context.Context, userID int, date string) (bool, error) {
	if _, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sets WHERE user_id = $1 AND session_date = $2`, userID, date); err != nil {
		return false, fmt.Errorf("deleting session sets: %w", err)
	}
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE user_id = $1 AND date = $2`, userID, date)
	if err != nil {
		return false, fmt.Errorf("deleting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CompletedDates returns the dates of all completed sessions, for the
// streak calculator.
func (db *DB) CompletedDates(ctx context.Context, userID int) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date FROM workout_sessions
		 WHERE user_id = $1 AND completed_at IS NOT NULL
		 ORDER BY date ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying completed dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning session date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func scanSession(row pgx.Row) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	var template []byte
	if err := row.Scan(&s.UserID, &s.Date, &s.StartedAt, &s.CompletedAt, &s.CancelledAt,
		&s.PausedAt, &s.PausedSeconds, &template); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if len(template) > 0 {
		if err := json.Unmarshal(template, &s.Template); err != nil {
			return nil, fmt.Errorf("decoding session template: %w", err)
		}
	}
	return &s, nil
}

// InsertSets batch-inserts logged sets. Returns count inserted; replayed
// rows are skipped via ON CONFLICT DO NOTHING.
func (db *DB) InsertSets(ctx context.Context, rows []models.SetEntry) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_sets (user_id, session_date, exercise, equipment, set_number, weight, unit, reps, location) VALUES `
	args := make([]any, 0, len(rows)*9)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.UserID, r.SessionDate, r.Exercise, r.Equipment,
			r.SetNumber, r.Weight, r.Unit, r.Reps, r.Location)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QuerySets retrieves the logged sets for one session date.
func (db *DB) QuerySets(ctx context.Context, userID int, date string) ([]models.SetEntry, error) {
	return db.querySets(ctx,
		`SELECT user_id, session_date, exercise, equipment, set_number, weight, unit, reps, location, logged_at
		 FROM workout_sets
		 WHERE user_id = $1 AND session_date = $2
		 ORDER BY exercise ASC, set_number ASC`,
		userID, date)
}

// QuerySetsRange retrieves logged sets in a date range with an optional
// case-insensitive exercise filter.
func (db *DB) QuerySetsRange(ctx context.Context, userID int, start, end, exerciseFilter string) ([]models.SetEntry, error) {
	if exerciseFilter != "" {
		return db.querySets(ctx,
			`SELECT user_id, session_date, exercise, equipment, set_number, weight, unit, reps, location, logged_at
			 FROM workout_sets
			 WHERE user_id = $1 AND session_date >= $2 AND session_date <= $3 AND exercise ILIKE $4
			 ORDER BY session_date DESC, exercise ASC, set_number ASC`,
			userID, start, end, "%"+exerciseFilter+"%")
	}
	return db.querySets(ctx,
		`SELECT user_id, session_date, exercise, equipment, set_number, weight, unit, reps, location, logged_at
		 FROM workout_sets
		 WHERE user_id = $1 AND session_date >= $2 AND session_date <= $3
		 ORDER BY session_date DESC, exercise ASC, set_number ASC`,
		userID, start, end)
}

func (db *DB) querySets(ctx context.Context, query string, args ...any) ([]models.SetEntry, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	var result []models.SetEntry
	for rows.Next() {
		var e models.SetEntry
		if err := rows.Scan(&e.UserID, &e.SessionDate, &e.Exercise, &e.Equipment,
			&e.SetNumber, &e.Weight, &e.Unit, &e.Reps, &e.Location, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
