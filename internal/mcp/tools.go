package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/streak"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultDayRange returns start/end day strings defaulting to the last 30
// days. Dates are calendar days (YYYY-MM-DD), matching how sessions are
// keyed.
func defaultDayRange(startStr, endStr string) (string, string, error) {
	now := time.Now()
	if endStr == "" {
		endStr = streak.FormatDay(now)
	} else if _, err := streak.ParseDay(endStr); err != nil {
		return "", "", fmt.Errorf("invalid end date: %w", err)
	}
	if startStr == "" {
		startStr = streak.FormatDay(now.AddDate(0, 0, -30))
	} else if _, err := streak.ParseDay(startStr); err != nil {
		return "", "", fmt.Errorf("invalid start date: %w", err)
	}
	return startStr, endStr, nil
}

// --- Tool definitions ---

var toolGetExerciseCatalog = mcp.NewTool("get_exercise_catalog",
	mcp.WithDescription("Retrieve the merged exercise catalog: default exercises with the user's overrides applied, plus custom exercises, minus hidden ones."),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Retrieve workout sessions in a date range, most recent first. Each session carries its lifecycle timestamps and the frozen template it was started from."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetWorkoutSets = mcp.NewTool("get_workout_sets",
	mcp.WithDescription("Retrieve individual logged sets (exercise, weight, reps, equipment) in a date range, optionally filtered by exercise name."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("exercise", mcp.Description("Case-insensitive exercise name filter (e.g. 'bench')")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Retrieve personal records: max weight, max reps, and max volume per (exercise, equipment) pair, with the date and location each was achieved."),
)

var toolGetStreaks = mcp.NewTool("get_streaks",
	mcp.WithDescription("Retrieve workout streak and frequency statistics: current and longest streak, workouts this week and month, and the weekday histogram."),
)

var toolGetTrainingVolume = mcp.NewTool("get_training_volume",
	mcp.WithDescription("Retrieve per-week or per-month training volume: sessions, sets, reps, and total tonnage."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("bucket", mcp.Description("Aggregation bucket. Defaults to 'week'."), mcp.Enum("week", "month")),
)

// --- Tool handlers ---

func (h *handlers) getExerciseCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	exercises, err := h.ds.ExerciseCatalog(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_exercise_catalog", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDayRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sessions, err := h.ds.Sessions(ctx, uid, start, end)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDayRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sets, err := h.ds.Sets(ctx, uid, start, end, req.GetString("exercise", ""))
	if err != nil {
		h.log.Error("mcp get_workout_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	recs, err := h.ds.PersonalRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(recs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStreaks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.Streaks(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_streaks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDayRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	periods, err := h.ds.TrainingVolume(ctx, uid, start, end, req.GetString("bucket", "week"))
	if err != nil {
		h.log.Error("mcp get_training_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(periods)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
