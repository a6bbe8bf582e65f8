package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"spesa/internal/core"
	"spesa/internal/tracker"
)

type referenceResponse struct {
	Name string `json:"name"`
	tracker.ReferenceEntry
}

func (s *Server) handleReferenceLookup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := s.tracker.Archive.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "no reference price for product")
		return
	}
	writeJSON(w, http.StatusOK, referenceResponse{Name: name, ReferenceEntry: entry})
}

type compareResponse struct {
	Name         string     `json:"name"`
	CurrentPrice core.Money `json:"currentPrice"`
	tracker.Comparison
}

// handleReferenceCompare relates ?price= to the recorded minimum for the
// product in the URL.
func (s *Server) handleReferenceCompare(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	cents, err := core.ParseDecimalToCents(r.URL.Query().Get("price"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}
	current := core.Money{Cents: cents}

	cmp, ok := s.tracker.Archive.CompareToReference(name, current)
	if !ok {
		writeError(w, http.StatusNotFound, "no reference price for product")
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{Name: name, CurrentPrice: current, Comparison: cmp})
}
