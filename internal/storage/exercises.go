package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// QueryDefaultExercises returns the globally seeded exercise catalog.
func (db *DB) QueryDefaultExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, body_part, equipment_type, sets, reps, weight, video
		 FROM default_exercises
		 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying default exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.BodyPart, &e.EquipmentType,
			&e.Sets, &e.Reps, &e.Weight, &e.Video); err != nil {
			return nil, fmt.Errorf("scanning default exercise: %w", err)
		}
		e.IsDefault = true
		result = append(result, e)
	}
	return result, rows.Err()
}

// QueryCustomExercises returns a user's custom exercises.
func (db *DB) QueryCustomExercises(ctx context.Context, userID int) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, body_part, equipment_type, sets, reps, weight, video
		 FROM custom_exercises
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying custom exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.BodyPart, &e.EquipmentType,
			&e.Sets, &e.Reps, &e.Weight, &e.Video); err != nil {
			return nil, fmt.Errorf("scanning custom exercise: %w", err)
		}
		e.IsCustom = true
		result = append(result, e)
	}
	return result, rows.Err()
}

// InsertCustomExercise creates a custom exercise for a user.
func (db *DB) InsertCustomExercise(ctx context.Context, userID int, e models.Exercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO custom_exercises (id, user_id, name, body_part, equipment_type, sets, reps, weight, video)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, userID, e.Name, e.BodyPart, e.EquipmentType, e.Sets, e.Reps, e.Weight, e.Video)
	if err != nil {
		return fmt.Errorf("inserting custom exercise: %w", err)
	}
	return nil
}

// UpdateCustomExercise updates a user's custom exercise. Returns false if
// no row matched.
func (db *DB) UpdateCustomExercise(ctx context.Context, userID int, e models.Exercise) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE custom_exercises
		 SET name = $3, body_part = $4, equipment_type = $5, sets = $6, reps = $7, weight = $8, video = $9, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		e.ID, userID, e.Name, e.BodyPart, e.EquipmentType, e.Sets, e.Reps, e.Weight, e.Video)
	if err != nil {
		return false, fmt.Errorf("updating custom exercise: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteCustomExercise removes a user's custom exercise.
func (db *DB) DeleteCustomExercise(ctx context.Context, userID int, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM custom_exercises WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting custom exercise: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryExerciseOverrides returns a user's per-exercise overrides.
func (db *DB) QueryExerciseOverrides(ctx context.Context, userID int) ([]models.ExerciseOverride, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, original_id, original_name, name, body_part, equipment_type,
		        sets, reps, weight, video, override_created, last_updated
		 FROM exercise_overrides
		 WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise overrides: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseOverride
	for rows.Next() {
		var o models.ExerciseOverride
		if err := rows.Scan(&o.ID, &o.OriginalID, &o.OriginalName, &o.Name, &o.BodyPart,
			&o.EquipmentType, &o.Sets, &o.Reps, &o.Weight, &o.Video,
			&o.OverrideCreated, &o.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning exercise override: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

// UpsertExerciseOverride creates or replaces the override for one default
// exercise. Editing a default never mutates the default itself.
func (db *DB) UpsertExerciseOverride(ctx context.Context, userID int, o models.ExerciseOverride) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercise_overrides
		   (id, user_id, original_id, original_name, name, body_part, equipment_type, sets, reps, weight, video)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (user_id, id) DO UPDATE SET
		   original_name = EXCLUDED.original_name,
		   name = EXCLUDED.name, body_part = EXCLUDED.body_part,
		   equipment_type = EXCLUDED.equipment_type,
		   sets = EXCLUDED.sets, reps = EXCLUDED.reps, weight = EXCLUDED.weight,
		   video = EXCLUDED.video, last_updated = NOW()`,
		o.ID, userID, o.OriginalID, o.OriginalName, o.Name, o.BodyPart,
		o.EquipmentType, o.Sets, o.Reps, o.Weight, o.Video)
	if err != nil {
		return fmt.Errorf("upserting exercise override: %w", err)
	}
	return nil
}

// DeleteExerciseOverride removes an override, reverting the default.
func (db *DB) DeleteExerciseOverride(ctx context.Context, userID int, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM exercise_overrides WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting exercise override: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryHiddenExercises returns a user's hidden-exercise markers.
func (db *DB) QueryHiddenExercises(ctx context.Context, userID int) ([]models.HiddenMarker, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, exercise_id, name, hidden_at
		 FROM hidden_exercises
		 WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying hidden exercises: %w", err)
	}
	defer rows.Close()

	var result []models.HiddenMarker
	for rows.Next() {
		var h models.HiddenMarker
		if err := rows.Scan(&h.ID, &h.ExerciseID, &h.Name, &h.HiddenAt); err != nil {
			return nil, fmt.Errorf("scanning hidden marker: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// InsertHiddenExercise records a suppression marker. Hiding the same
// exercise twice is a no-op.
func (db *DB) InsertHiddenExercise(ctx context.Context, userID int, h models.HiddenMarker) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO hidden_exercises (id, user_id, exercise_id, name)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT DO NOTHING`,
		h.ID, userID, h.ExerciseID, strings.ToLower(h.Name))
	if err != nil {
		return fmt.Errorf("inserting hidden marker: %w", err)
	}
	return nil
}

// DeleteHiddenExercise removes a suppression marker, unhiding the entry.
func (db *DB) DeleteHiddenExercise(ctx context.Context, userID int, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM hidden_exercises WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting hidden marker: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
