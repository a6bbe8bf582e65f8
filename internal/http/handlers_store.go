package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"spesa/internal/log"
)

type storeRequest struct {
	Name string `json:"name"`
}

type storeListResponse struct {
	Stores []string `json:"stores"`
}

func (s *Server) handleListStores(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, storeListResponse{Stores: s.tracker.Registry.List()})
}

func (s *Server) handleAddStore(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.tracker.Registry.Add(r.Context(), req.Name) {
		writeError(w, http.StatusConflict, "store already exists or name is empty")
		return
	}
	writeJSON(w, http.StatusCreated, storeListResponse{Stores: s.tracker.Registry.List()})
}

func (s *Server) handleRenameStore(w http.ResponseWriter, r *http.Request) {
	oldName := chi.URLParam(r, "name")

	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.tracker.Registry.Rename(r.Context(), oldName, req.Name) {
		writeError(w, http.StatusConflict, "store not found or new name unavailable")
		return
	}

	s.logger.InfoContext(r.Context(), "Store renamed",
		log.FieldStore, req.Name, log.FieldOperation, log.OpRename)
	writeJSON(w, http.StatusOK, storeListResponse{Stores: s.tracker.Registry.List()})
}

func (s *Server) handleRemoveStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.tracker.Registry.Remove(r.Context(), name) {
		writeError(w, http.StatusNotFound, "store not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
