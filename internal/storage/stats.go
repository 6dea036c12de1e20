package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate counts for a user's stored data.
type DataStats struct {
	TotalSessions   int64          `json:"total_sessions"`
	TotalSets       int64          `json:"total_sets"`
	TotalRecords    int64          `json:"total_records"`
	CustomExercises int64          `json:"custom_exercises"`
	FirstSession    *string        `json:"first_session,omitempty"`
	LastSession     *string        `json:"last_session,omitempty"`
	TopExercises    []ExerciseStat `json:"top_exercises"`
}

// ExerciseStat summarizes logged volume for one exercise.
type ExerciseStat struct {
	Exercise  string  `json:"exercise"`
	Sets      int64   `json:"sets"`
	TotalReps int64   `json:"total_reps"`
	Tonnage   float64 `json:"tonnage"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(date), MAX(date) FROM workout_sessions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSessions, &stats.FirstSession, &stats.LastSession)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sets WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM personal_records WHERE user_id = $1`, userID,
	).Scan(&stats.TotalRecords)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM custom_exercises WHERE user_id = $1`, userID,
	).Scan(&stats.CustomExercises)
	if err != nil {
		return nil, fmt.Errorf("counting custom exercises: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT exercise, COUNT(*), COALESCE(SUM(reps), 0), COALESCE(SUM(weight * reps), 0)
		 FROM workout_sets
		 WHERE user_id = $1
		 GROUP BY exercise
		 ORDER BY COUNT(*) DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Exercise, &s.Sets, &s.TotalReps, &s.Tonnage); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// VolumePeriod holds aggregated training volume for one time period.
type VolumePeriod struct {
	Period   string  `json:"period"`
	Sessions int     `json:"sessions"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Tonnage  float64 `json:"tonnage"`
}

// GetTrainingVolume returns set/rep/tonnage totals per week or month.
func (db *DB) GetTrainingVolume(ctx context.Context, userID int, start, end string, bucket string) ([]VolumePeriod, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, session_date::date)::date AS period,
		        COUNT(DISTINCT session_date)::int,
		        COUNT(*)::int,
		        COALESCE(SUM(reps), 0)::int,
		        COALESCE(SUM(weight * reps), 0)
		 FROM workout_sets
		 WHERE user_id = $2 AND session_date >= $3 AND session_date <= $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying training volume: %w", err)
	}
	defer rows.Close()

	var result []VolumePeriod
	for rows.Next() {
		var periodTime time.Time
		var v VolumePeriod
		if err := rows.Scan(&periodTime, &v.Sessions, &v.Sets, &v.Reps, &v.Tonnage); err != nil {
			return nil, fmt.Errorf("scanning volume period: %w", err)
		}
		v.Period = periodTime.Format("2006-01-02")
		result = append(result, v)
	}
	return result, rows.Err()
}

// truncInterval maps a bucket name to the interval date_trunc expects.
// Unknown values fall back to weekly, matching the API default.
func truncInterval(bucket string) string {
	switch bucket {
	case "month":
		return "month"
	case "week":
		return "week"
	default:
		return "week"
	}
}
