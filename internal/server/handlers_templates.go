package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleTemplates returns the merged template list: defaults with user
// overrides applied, plus custom templates, minus hidden ones.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	defaults, err := s.db.QueryDefaultTemplates(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	customs, err := s.db.QueryUserTemplates(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, catalog.ResolveTemplates(defaults, customs))
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var t models.WorkoutTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if t.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.IsCustom = true

	if err := s.db.UpsertUserTemplate(r.Context(), uid, t); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// handleUpdateTemplate upserts a user template row. Saving under a default
// template's ID (or with override_of set) shadows that default without
// mutating it.
func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var t models.WorkoutTemplate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	t.ID = chi.URLParam(r, "id")
	t.IsCustom = true

	if err := s.db.UpsertUserTemplate(r.Context(), uid, t); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	ok, err := s.db.DeleteUserTemplate(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
