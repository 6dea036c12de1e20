package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleExerciseCatalog returns the merged per-user catalog: defaults with
// overrides applied, plus customs, minus hidden entries.
func (s *Server) handleExerciseCatalog(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	writeJSON(w, http.StatusOK, s.catalog.Load(r.Context(), uid))
}

func (s *Server) handleCreateCustomExercise(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var e models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	catalog.Normalize(&e)
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.IsCustom = true

	if err := s.db.InsertCustomExercise(r.Context(), uid, e); err != nil {
		s.log.Error("create custom exercise failed", "user_id", uid, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateCustomExercise(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var e models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	e.ID = chi.URLParam(r, "id")
	catalog.Normalize(&e)

	ok, err := s.db.UpdateCustomExercise(r.Context(), uid, e)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "custom exercise not found"})
		return
	}
	e.IsCustom = true
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteCustomExercise(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	ok, err := s.db.DeleteCustomExercise(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "custom exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// overrideID picks the row id for an override: an explicit id from the
// body wins, then the default's id from the route, then a slug of the
// original name for legacy name-keyed overrides. Empty means the caller
// gave us nothing to key on.
func overrideID(o models.ExerciseOverride) string {
	if o.ID != "" {
		return o.ID
	}
	if o.OriginalID != "" {
		return o.OriginalID
	}
	if o.OriginalName != "" {
		return catalog.Slug(o.OriginalName)
	}
	return ""
}

// handleUpsertOverride stores an edit of a default exercise as an override
// row. The id-keyed route references the default directly; the bare route
// keys the override by original name, for defaults that predate stable
// ids. The default itself is never touched.
func (s *Server) handleUpsertOverride(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var o models.ExerciseOverride
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		o.OriginalID = id
	}
	o.ID = overrideID(o)
	if o.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "override needs an id or original_name"})
		return
	}

	if err := s.db.UpsertExerciseOverride(r.Context(), uid, o); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	ok, err := s.db.DeleteExerciseOverride(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "override not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reverted"})
}

// handleHideExercise records a suppression marker. The exercise stays in
// storage and reappears when the marker is deleted.
func (s *Server) handleHideExercise(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var h models.HiddenMarker
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if h.ExerciseID == "" && h.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_id or name is required"})
		return
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	if err := s.db.InsertHiddenExercise(r.Context(), uid, h); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleUnhideExercise(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	ok, err := s.db.DeleteHiddenExercise(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "hidden marker not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unhidden"})
}
