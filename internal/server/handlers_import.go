package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/history"
	"github.com/claude/liftlog/internal/storage"
)

// handleImport ingests a workout-history CSV export. Guarded by the import
// API key so the upload CLI can run unattended. Replays are safe: existing
// sessions are skipped and record maxima only move forward.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	start := time.Now()

	imp := history.NewImporter(s.db, s.log)
	res, err := imp.Import(r.Context(), uid, r.Body)

	entry := storage.ImportLog{
		UserID: uid,
		Source: "csv",
		Status: "completed",
	}
	if res != nil {
		entry.SessionsReceived = res.SessionsReceived
		entry.SessionsInserted = res.SessionsInserted
		entry.SetsInserted = res.SetsInserted
		entry.RecordsUpdated = res.RecordsUpdated
	}
	duration := int(time.Since(start).Milliseconds())
	entry.DurationMs = &duration
	if err != nil {
		entry.Status = "failed"
		msg := err.Error()
		entry.ErrorMessage = &msg
	}
	if _, logErr := s.db.InsertImportLog(r.Context(), entry); logErr != nil {
		s.log.Error("import log write failed", "user_id", uid, "error", logErr)
	}

	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := s.db.QueryImportLogs(r.Context(), uid, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
