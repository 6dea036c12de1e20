package catalog

import (
	"context"
	"log/slog"

	"github.com/claude/liftlog/internal/models"
)

// Source is the storage surface the loader needs. *storage.DB satisfies it.
type Source interface {
	QueryDefaultExercises(ctx context.Context) ([]models.Exercise, error)
	QueryCustomExercises(ctx context.Context, userID int) ([]models.Exercise, error)
	QueryExerciseOverrides(ctx context.Context, userID int) ([]models.ExerciseOverride, error)
	QueryHiddenExercises(ctx context.Context, userID int) ([]models.HiddenMarker, error)
}

// Loader assembles the merged catalog from storage, degrading on partial
// failure: a failed per-user layer falls back to defaults-only, and a
// failed defaults fetch falls back to a single hardcoded entry. The caller
// always gets a usable catalog.
type Loader struct {
	src Source
	log *slog.Logger
}

// NewLoader creates a Loader over the given source.
func NewLoader(src Source, log *slog.Logger) *Loader {
	return &Loader{src: src, log: log}
}

// fallbackCatalog is the last-resort catalog when even the defaults fetch
// fails.
var fallbackCatalog = []models.Exercise{
	{ID: "bench-press", Name: "Bench Press", BodyPart: "Chest", EquipmentType: "Barbell", Sets: 3, Reps: 8, IsDefault: true},
}

// Load fetches the four catalog layers and resolves them. It never returns
// an error: failures are logged and the result degrades instead.
func (l *Loader) Load(ctx context.Context, userID int) []models.Exercise {
	defaults, err := l.src.QueryDefaultExercises(ctx)
	if err != nil {
		l.log.Warn("catalog: defaults fetch failed, using fallback", "error", err)
		return append([]models.Exercise(nil), fallbackCatalog...)
	}

	customs, err := l.src.QueryCustomExercises(ctx, userID)
	if err != nil {
		l.log.Warn("catalog: customs fetch failed, defaults only", "user_id", userID, "error", err)
		return Resolve(defaults, nil, nil, nil)
	}
	overrides, err := l.src.QueryExerciseOverrides(ctx, userID)
	if err != nil {
		l.log.Warn("catalog: overrides fetch failed, defaults only", "user_id", userID, "error", err)
		return Resolve(defaults, nil, nil, nil)
	}
	hidden, err := l.src.QueryHiddenExercises(ctx, userID)
	if err != nil {
		l.log.Warn("catalog: hidden markers fetch failed, defaults only", "user_id", userID, "error", err)
		return Resolve(defaults, nil, nil, nil)
	}

	return Resolve(defaults, customs, overrides, hidden)
}
