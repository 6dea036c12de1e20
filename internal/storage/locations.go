package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// QueryLocations returns a user's saved locations.
func (db *DB) QueryLocations(ctx context.Context, userID int) ([]models.Location, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, latitude, longitude, radius_m
		 FROM locations WHERE user_id = $1 ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	var result []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.RadiusM); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// UpsertLocation creates or updates a location.
func (db *DB) UpsertLocation(ctx context.Context, userID int, l models.Location) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO locations (id, user_id, name, latitude, longitude, radius_m)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, id) DO UPDATE SET
		   name = EXCLUDED.name, latitude = EXCLUDED.latitude,
		   longitude = EXCLUDED.longitude, radius_m = EXCLUDED.radius_m`,
		l.ID, userID, l.Name, l.Latitude, l.Longitude, l.RadiusM)
	if err != nil {
		return fmt.Errorf("upserting location: %w", err)
	}
	return nil
}

// DeleteLocation removes a location.
func (db *DB) DeleteLocation(ctx context.Context, userID int, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM locations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting location: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
