package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"spesa/internal/core"
	"spesa/internal/tracker"
)

type cartResponse struct {
	Items []tracker.CartItem `json:"items"`
	Total core.Money         `json:"total"`
}

func (s *Server) cartState() cartResponse {
	return cartResponse{
		Items: s.tracker.Cart.Items(),
		Total: s.tracker.Cart.Total(),
	}
}

func (s *Server) handleGetCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) handleClearCart(w http.ResponseWriter, _ *http.Request) {
	s.tracker.Cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCartAddItem(w http.ResponseWriter, r *http.Request) {
	var item core.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := s.tracker.Cart.AddItem(r.Context(), item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleCartUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var item core.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.tracker.Cart.UpdateItem(id, item)
	if errors.Is(err, tracker.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "cart item not found")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCartRemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.tracker.Cart.RemoveItem(id) {
		writeError(w, http.StatusNotFound, "cart item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type pendingRequest struct {
	Store string   `json:"store"`
	Date  core.Day `json:"date"`
}

func (s *Server) handleCartSetPending(w http.ResponseWriter, r *http.Request) {
	var req pendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.tracker.Cart.SetPending(req.Store, req.Date)
	w.WriteHeader(http.StatusNoContent)
}

type checkoutRequest struct {
	Store string   `json:"store"`
	Date  core.Day `json:"date"`
}

// handleCheckout commits the cart. The body is optional: an empty body
// falls back entirely to the pending store/date selection.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := s.tracker.Cart.Checkout(r.Context(), req.Store, req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	checkouts.Inc()
	expensesCreated.Inc()
	writeJSON(w, http.StatusCreated, expense)
}
