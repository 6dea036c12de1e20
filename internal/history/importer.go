package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/streak"
)

// Store is the storage surface the importer needs. *storage.DB satisfies it.
type Store interface {
	InsertSession(ctx context.Context, s *models.WorkoutSession) error
	UpdateSession(ctx context.Context, s *models.WorkoutSession) error
	InsertSets(ctx context.Context, rows []models.SetEntry) (int64, error)
	GetPersonalRecord(ctx context.Context, userID int, exercise, equipment string) (*models.PersonalRecord, error)
	UpsertPersonalRecord(ctx context.Context, rec *models.PersonalRecord) error
}

// Importer replays a parsed CSV export into sessions, sets, and personal
// records. Re-importing the same file is a no-op: sessions and sets are
// keyed by date, and record maxima only move forward.
type Importer struct {
	store Store
	log   *slog.Logger
}

func NewImporter(store Store, log *slog.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// Result summarizes one import run.
type Result struct {
	SessionsReceived int   `json:"sessions_received"`
	SessionsInserted int   `json:"sessions_inserted"`
	SessionsSkipped  int   `json:"sessions_skipped"`
	SetsInserted     int64 `json:"sets_inserted"`
	RecordsUpdated   int   `json:"records_updated"`
}

// Import parses the CSV body and writes everything it describes for the
// given user. Imported sessions are stored as already completed, anchored
// at noon on their day so streaks and stats see them like live ones.
func (im *Importer) Import(ctx context.Context, userID int, body io.Reader) (*Result, error) {
	sessions, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}

	res := &Result{SessionsReceived: len(sessions)}
	recs := make(map[string]*models.PersonalRecord)

	for _, sess := range sessions {
		day, err := streak.ParseDay(sess.Date)
		if err != nil {
			return res, err
		}
		noon := day.Add(12 * time.Hour)

		ws := &models.WorkoutSession{
			UserID:      userID,
			Date:        sess.Date,
			StartedAt:   noon,
			CompletedAt: &noon,
		}
		if err := im.store.InsertSession(ctx, ws); err != nil {
			if errors.Is(err, storage.ErrSessionExists) {
				res.SessionsSkipped++
			} else {
				return res, err
			}
		} else {
			res.SessionsInserted++
			// The insert only persists the start; stamp completion separately.
			if err := im.store.UpdateSession(ctx, ws); err != nil {
				return res, err
			}
		}

		sets := make([]models.SetEntry, len(sess.Sets))
		for i, set := range sess.Sets {
			set.UserID = userID
			sets[i] = set
		}
		n, err := im.store.InsertSets(ctx, sets)
		if err != nil {
			return res, err
		}
		res.SetsInserted += n

		for _, set := range sets {
			key := set.Exercise + "\x00" + set.Equipment
			rec, ok := recs[key]
			if !ok {
				rec, err = im.store.GetPersonalRecord(ctx, userID, set.Exercise, set.Equipment)
				if err != nil {
					return res, err
				}
				recs[key] = rec
			}
			if records.Apply(rec, set).Any() {
				if err := im.store.UpsertPersonalRecord(ctx, rec); err != nil {
					return res, err
				}
				res.RecordsUpdated++
			}
		}
	}

	im.log.Info("history import finished",
		"user_id", userID,
		"sessions", res.SessionsReceived,
		"inserted", res.SessionsInserted,
		"sets", res.SetsInserted,
		"records", res.RecordsUpdated,
	)
	return res, nil
}
