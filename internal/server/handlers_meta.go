package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	items, err := s.db.QueryEquipment(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUpsertEquipment(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var e models.Equipment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		e.ID = id
	}
	if e.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	if err := s.db.UpsertEquipment(r.Context(), uid, e); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	ok, err := s.db.DeleteEquipment(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "equipment not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	locs, err := s.db.QueryLocations(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// handleNearestLocation resolves lat/lon coordinates to the closest saved
// location within its radius, for auto-tagging logged sets.
func (s *Server) handleNearestLocation(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng parameters are required"})
		return
	}

	locs, err := s.db.QueryLocations(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	nearest := models.NearestLocation(locs, lat, lng)
	if nearest == nil {
		writeJSON(w, http.StatusOK, map[string]any{"location": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"location": nearest})
}

func (s *Server) handleUpsertLocation(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var l models.Location
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		l.ID = id
	}
	if l.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	if err := s.db.UpsertLocation(r.Context(), uid, l); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	ok, err := s.db.DeleteLocation(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "location not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
