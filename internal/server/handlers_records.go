package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/records"
)

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	recs, err := s.db.QueryPersonalRecords(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleRecentRecords returns the showcase view: records whose max-weight
// mark carries at least five reps, newest first.
func (s *Server) handleRecentRecords(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	recs, err := s.db.QueryPersonalRecords(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records.Recent(recs))
}
