package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/streak"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info := userInfoFromContext(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      userIDFromContext(r),
		"login":        info.Login,
		"display_name": info.DisplayName,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDayRange reads start/end query parameters as YYYY-MM-DD day strings.
// Defaults to the last 30 days when start is absent.
func parseDayRange(r *http.Request) (start, end string, err error) {
	start = r.URL.Query().Get("start")
	end = r.URL.Query().Get("end")

	now := time.Now()
	if start == "" {
		start = streak.FormatDay(now.AddDate(0, 0, -30))
	}
	if end == "" {
		end = streak.FormatDay(now)
	}

	if _, err = streak.ParseDay(start); err != nil {
		return "", "", fmt.Errorf("invalid start date: %w", err)
	}
	if _, err = streak.ParseDay(end); err != nil {
		return "", "", fmt.Errorf("invalid end date: %w", err)
	}
	return start, end, nil
}
