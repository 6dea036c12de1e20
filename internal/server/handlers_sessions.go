package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// sessionView is the wire shape for sessions. Status is derived from the
// lifecycle timestamps, not stored.
type sessionView struct {
	models.WorkoutSession
	Status         models.SessionStatus `json:"status"`
	ElapsedSeconds int                  `json:"elapsed_seconds"`
}

func viewOf(s *models.WorkoutSession, now time.Time) sessionView {
	return sessionView{
		WorkoutSession: *s,
		Status:         s.Status(),
		ElapsedSeconds: int(session.Elapsed(s, now).Seconds()),
	}
}

func (s *Server) handleQuerySessions(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	start, end, err := parseDayRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.db.QuerySessions(r.Context(), uid, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	now := time.Now()
	views := make([]sessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, viewOf(&sessions[i], now))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleStartSession begins a workout. At most one session exists per date;
// starting a second on the same day is a conflict. The chosen template is
// frozen into the session by value.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var req struct {
		Date       string `json:"date"`
		TemplateID string `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	var tmpl *models.WorkoutTemplate
	if req.TemplateID != "" {
		var err error
		tmpl, err = s.findTemplate(r, uid, req.TemplateID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if tmpl == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
			return
		}
	}

	now := time.Now()
	sess, err := session.Start(uid, req.Date, tmpl, now)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.db.InsertSession(r.Context(), sess); err != nil {
		if errors.Is(err, storage.ErrSessionExists) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(sess, now))
}

func (s *Server) findTemplate(r *http.Request, uid int, id string) (*models.WorkoutTemplate, error) {
	defaults, err := s.db.QueryDefaultTemplates(r.Context())
	if err != nil {
		return nil, err
	}
	customs, err := s.db.QueryUserTemplates(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	for _, t := range catalog.ResolveTemplates(defaults, customs) {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	date := chi.URLParam(r, "date")

	sess, err := s.db.GetSession(r.Context(), uid, date)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	sets, err := s.db.QuerySets(r.Context(), uid, date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": viewOf(sess, time.Now()),
		"sets":    sets,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	ok, err := s.db.DeleteSession(r.Context(), uid, chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	s.transitionSession(w, r, session.Pause)
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	s.transitionSession(w, r, session.Resume)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	s.transitionSession(w, r, session.Complete)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.transitionSession(w, r, session.Cancel)
}

// transitionSession loads the session, applies one lifecycle transition,
// and persists the result. Invalid transitions map to 409.
func (s *Server) transitionSession(w http.ResponseWriter, r *http.Request, apply func(*models.WorkoutSession, time.Time) error) {
	uid := userIDFromContext(r)
	date := chi.URLParam(r, "date")

	sess, err := s.db.GetSession(r.Context(), uid, date)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	now := time.Now()
	if err := apply(sess, now); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err := s.db.UpdateSession(r.Context(), sess); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess, now))
}

// handleLogSet appends one set to an in-progress session and evaluates it
// against the personal record for its (exercise, equipment) pair. A record
// write failure is reported but does not roll back the set.
func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	date := chi.URLParam(r, "date")

	var set models.SetEntry
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if set.Exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise is required"})
		return
	}
	if set.Reps <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must be positive"})
		return
	}
	if set.Weight < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight cannot be negative"})
		return
	}

	sess, err := s.db.GetSession(r.Context(), uid, date)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sess.Status() != models.StatusInProgress {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "session is not in progress"})
		return
	}

	set.UserID = uid
	set.SessionDate = date
	if set.SetNumber == 0 {
		existing, err := s.db.QuerySets(r.Context(), uid, date)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		set.SetNumber = nextSetNumber(existing, set.Exercise)
	}

	status, body := storeSet(r.Context(), s.db, s.log, set)
	writeJSON(w, status, body)
}

// setStore is the slice of the storage layer that set logging touches.
// *storage.DB satisfies it.
type setStore interface {
	InsertSets(ctx context.Context, rows []models.SetEntry) (int64, error)
	GetPersonalRecord(ctx context.Context, userID int, exercise, equipment string) (*models.PersonalRecord, error)
	UpsertPersonalRecord(ctx context.Context, rec *models.PersonalRecord) error
}

// storeSet persists one set and evaluates it against the personal record
// for its (exercise, equipment) pair. The insert is ON CONFLICT DO
// NOTHING; a replayed set number is a conflict and is never evaluated
// against records, since it was not stored.
func storeSet(ctx context.Context, db setStore, log *slog.Logger, set models.SetEntry) (int, any) {
	inserted, err := db.InsertSets(ctx, []models.SetEntry{set})
	if err != nil {
		return http.StatusInternalServerError, map[string]string{"error": err.Error()}
	}
	if inserted == 0 {
		return http.StatusConflict, map[string]string{"error": "set already logged for this exercise and set number"}
	}

	rec, err := db.GetPersonalRecord(ctx, set.UserID, set.Exercise, set.Equipment)
	if err != nil {
		log.Error("record lookup failed", "user_id", set.UserID, "exercise", set.Exercise, "error", err)
		return http.StatusOK, map[string]any{"set": set, "record_error": err.Error()}
	}

	updates := records.Apply(rec, set)
	if updates.Any() {
		if err := db.UpsertPersonalRecord(ctx, rec); err != nil {
			log.Error("record write failed", "user_id", set.UserID, "exercise", set.Exercise, "error", err)
			return http.StatusOK, map[string]any{"set": set, "record_updates": updates, "record_error": err.Error()}
		}
	}

	return http.StatusCreated, map[string]any{
		"set":            set,
		"record_updates": updates,
		"record":         rec,
	}
}

// handleQuerySets returns logged sets across sessions in a date range,
// optionally filtered by exercise name.
func (s *Server) handleQuerySets(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	start, end, err := parseDayRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sets, err := s.db.QuerySetsRange(r.Context(), uid, start, end, r.URL.Query().Get("exercise"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func nextSetNumber(existing []models.SetEntry, exercise string) int {
	n := 0
	for _, e := range existing {
		if e.Exercise == exercise && e.SetNumber > n {
			n = e.SetNumber
		}
	}
	return n + 1
}
