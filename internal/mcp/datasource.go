package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/streak"
)

// DataSource abstracts the data layer for MCP tools. Both Local (direct
// database access) and HTTPClient (remote via REST API) satisfy this
// interface.
type DataSource interface {
	ExerciseCatalog(ctx context.Context, userID int) ([]models.Exercise, error)
	Sessions(ctx context.Context, userID int, start, end string) ([]models.WorkoutSession, error)
	Sets(ctx context.Context, userID int, start, end, exerciseFilter string) ([]models.SetEntry, error)
	PersonalRecords(ctx context.Context, userID int) ([]models.PersonalRecord, error)
	Streaks(ctx context.Context, userID int) (*streak.Stats, error)
	TrainingVolume(ctx context.Context, userID int, start, end, bucket string) ([]storage.VolumePeriod, error)
}

// Local serves MCP tools straight from the database, for running the MCP
// binary on the same host as the server.
type Local struct {
	db      *storage.DB
	catalog *catalog.Loader
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a Local data source over the given database.
func NewLocal(db *storage.DB, log *slog.Logger) *Local {
	return &Local{db: db, catalog: catalog.NewLoader(db, log)}
}

func (l *Local) ExerciseCatalog(ctx context.Context, userID int) ([]models.Exercise, error) {
	return l.catalog.Load(ctx, userID), nil
}

func (l *Local) Sessions(ctx context.Context, userID int, start, end string) ([]models.WorkoutSession, error) {
	return l.db.QuerySessions(ctx, userID, start, end)
}

func (l *Local) Sets(ctx context.Context, userID int, start, end, exerciseFilter string) ([]models.SetEntry, error) {
	return l.db.QuerySetsRange(ctx, userID, start, end, exerciseFilter)
}

func (l *Local) PersonalRecords(ctx context.Context, userID int) ([]models.PersonalRecord, error) {
	return l.db.QueryPersonalRecords(ctx, userID)
}

func (l *Local) Streaks(ctx context.Context, userID int) (*streak.Stats, error) {
	dates, err := l.db.CompletedDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := streak.Compute(dates, time.Now())
	return &stats, nil
}

func (l *Local) TrainingVolume(ctx context.Context, userID int, start, end, bucket string) ([]storage.VolumePeriod, error) {
	return l.db.GetTrainingVolume(ctx, userID, start, end, bucket)
}
