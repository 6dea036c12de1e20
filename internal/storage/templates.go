package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// QueryDefaultTemplates returns the globally seeded workout templates.
func (db *DB) QueryDefaultTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, exercises FROM default_templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying default templates: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutTemplate
	for rows.Next() {
		var t models.WorkoutTemplate
		var exercises []byte
		if err := rows.Scan(&t.ID, &t.Name, &exercises); err != nil {
			return nil, fmt.Errorf("scanning default template: %w", err)
		}
		if err := json.Unmarshal(exercises, &t.Exercises); err != nil {
			return nil, fmt.Errorf("decoding template %s exercises: %w", t.ID, err)
		}
		t.IsDefault = true
		result = append(result, t)
	}
	return result, rows.Err()
}

// QueryUserTemplates returns a user's template rows, including hidden
// markers and override rows (resolution happens in the catalog package).
func (db *DB) QueryUserTemplates(ctx context.Context, userID int) ([]models.WorkoutTemplate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, exercises, is_hidden, override_of, created_at, updated_at
		 FROM workout_templates
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying user templates: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutTemplate
	for rows.Next() {
		var t models.WorkoutTemplate
		var exercises []byte
		if err := rows.Scan(&t.ID, &t.Name, &exercises, &t.IsHidden, &t.OverrideOf,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user template: %w", err)
		}
		if len(exercises) > 0 {
			if err := json.Unmarshal(exercises, &t.Exercises); err != nil {
				return nil, fmt.Errorf("decoding template %s exercises: %w", t.ID, err)
			}
		}
		t.IsCustom = true
		result = append(result, t)
	}
	return result, rows.Err()
}

// UpsertUserTemplate creates or updates a user's template row.
func (db *DB) UpsertUserTemplate(ctx context.Context, userID int, t models.WorkoutTemplate) error {
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return fmt.Errorf("encoding template exercises: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_templates (id, user_id, name, exercises, is_hidden, override_of)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, id) DO UPDATE SET
		   name = EXCLUDED.name, exercises = EXCLUDED.exercises,
		   is_hidden = EXCLUDED.is_hidden, override_of = EXCLUDED.override_of,
		   updated_at = NOW()`,
		t.ID, userID, t.Name, exercises, t.IsHidden, t.OverrideOf)
	if err != nil {
		return fmt.Errorf("upserting template: %w", err)
	}
	return nil
}

// DeleteUserTemplate removes a user's template row.
func (db *DB) DeleteUserTemplate(ctx context.Context, userID int, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_templates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
