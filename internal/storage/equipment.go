package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// QueryEquipment returns a user's equipment entries.
func (db *DB) QueryEquipment(ctx context.Context, userID int) ([]models.Equipment, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, type, notes FROM equipment WHERE user_id = $1 ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying equipment: %w", err)
	}
	defer rows.Close()

	var result []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// UpsertEquipment creates or updates an equipment entry.
func (db *DB) UpsertEquipment(ctx context.Context, userID int, e models.Equipment) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO equipment (id, user_id, name, type, notes)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id, id) DO UPDATE SET
		   name = EXCLUDED.name, type = EXCLUDED.type, notes = EXCLUDED.notes`,
		e.ID, userID, e.Name, e.Type, e.Notes)
	if err != nil {
		return fmt.Errorf("upserting equipment: %w", err)
	}
	return nil
}

// DeleteEquipment removes an equipment entry.
func (db *DB) DeleteEquipment(ctx context.Context, userID int, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM equipment WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting equipment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
