package server

import (
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/streak"
)

// handleStreaks computes streak and frequency stats from completed session
// dates. "Today" is the server's local calendar day.
func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	dates, err := s.db.CompletedDates(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, streak.Compute(dates, time.Now()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	stats, err := s.db.GetDataStats(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTrainingVolume(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	start, end, err := parseDayRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		bucket = "week"
	}

	periods, err := s.db.GetTrainingVolume(r.Context(), uid, start, end, bucket)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, periods)
}
