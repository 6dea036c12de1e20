package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetPersonalRecord fetches the record for one (exercise, equipment) pair.
// A missing row returns a zero-valued record, ready for records.Apply.
func (db *DB) GetPersonalRecord(ctx context.Context, userID int, exercise, equipment string) (*models.PersonalRecord, error) {
	rec := &models.PersonalRecord{UserID: userID, Exercise: exercise, Equipment: equipment}
	err := db.Pool.QueryRow(ctx,
		`SELECT max_weight, max_weight_reps, max_weight_date, max_weight_location,
		        max_reps_weight, max_reps, max_reps_date, max_reps_location,
		        max_volume, max_volume_date, max_volume_location
		 FROM personal_records
		 WHERE user_id = $1 AND exercise = $2 AND equipment = $3`,
		userID, exercise, equipment).Scan(
		&rec.MaxWeight.Weight, &rec.MaxWeight.Reps, &rec.MaxWeight.Date, &rec.MaxWeight.Location,
		&rec.MaxReps.Weight, &rec.MaxReps.Reps, &rec.MaxReps.Date, &rec.MaxReps.Location,
		&rec.MaxVolume.Volume, &rec.MaxVolume.Date, &rec.MaxVolume.Location)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying personal record: %w", err)
	}
	return rec, nil
}

// UpsertPersonalRecord writes the whole record back. The check and the
// write are independent steps; a failed write is surfaced but the check's
// outcome is not rolled back.
func (db *DB) UpsertPersonalRecord(ctx context.Context, rec *models.PersonalRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO personal_records
		   (user_id, exercise, equipment,
		    max_weight, max_weight_reps, max_weight_date, max_weight_location,
		    max_reps_weight, max_reps, max_reps_date, max_reps_location,
		    max_volume, max_volume_date, max_volume_location)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 ON CONFLICT (user_id, exercise, equipment) DO UPDATE SET
		   max_weight = EXCLUDED.max_weight,
		   max_weight_reps = EXCLUDED.max_weight_reps,
		   max_weight_date = EXCLUDED.max_weight_date,
		   max_weight_location = EXCLUDED.max_weight_location,
		   max_reps_weight = EXCLUDED.max_reps_weight,
		   max_reps = EXCLUDED.max_reps,
		   max_reps_date = EXCLUDED.max_reps_date,
		   max_reps_location = EXCLUDED.max_reps_location,
		   max_volume = EXCLUDED.max_volume,
		   max_volume_date = EXCLUDED.max_volume_date,
		   max_volume_location = EXCLUDED.max_volume_location,
		   updated_at = NOW()`,
		rec.UserID, rec.Exercise, rec.Equipment,
		rec.MaxWeight.Weight, rec.MaxWeight.Reps, rec.MaxWeight.Date, rec.MaxWeight.Location,
		rec.MaxReps.Weight, rec.MaxReps.Reps, rec.MaxReps.Date, rec.MaxReps.Location,
		rec.MaxVolume.Volume, rec.MaxVolume.Date, rec.MaxVolume.Location)
	if err != nil {
		return fmt.Errorf("upserting personal record: %w", err)
	}
	return nil
}

// QueryPersonalRecords returns all of a user's records.
func (db *DB) QueryPersonalRecords(ctx context.Context, userID int) ([]models.PersonalRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise, equipment,
		        max_weight, max_weight_reps, max_weight_date, max_weight_location,
		        max_reps_weight, max_reps, max_reps_date, max_reps_location,
		        max_volume, max_volume_date, max_volume_location
		 FROM personal_records
		 WHERE user_id = $1
		 ORDER BY exercise ASC, equipment ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	var result []models.PersonalRecord
	for rows.Next() {
		rec := models.PersonalRecord{UserID: userID}
		if err := rows.Scan(&rec.Exercise, &rec.Equipment,
			&rec.MaxWeight.Weight, &rec.MaxWeight.Reps, &rec.MaxWeight.Date, &rec.MaxWeight.Location,
			&rec.MaxReps.Weight, &rec.MaxReps.Reps, &rec.MaxReps.Date, &rec.MaxReps.Location,
			&rec.MaxVolume.Volume, &rec.MaxVolume.Date, &rec.MaxVolume.Location); err != nil {
			return nil, fmt.Errorf("scanning personal record: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
