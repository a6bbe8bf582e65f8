package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"spesa/internal/core"
	"spesa/internal/log"
)

type expenseRequest struct {
	Store    string          `json:"store"`
	Date     core.Day        `json:"date"`
	Products []core.LineItem `json:"products"`
}

type expenseListResponse struct {
	Expenses []core.Expense `json:"expenses"`
	Count    int            `json:"count"`
}

// handleListExpenses returns the ledger, optionally filtered by
// ?period=day|week|month|year and ?date=YYYY-MM-DD. An absent or
// unrecognized period returns the full ledger.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := s.tracker.Ledger.Expenses()

	if period, ok := parsePeriod(r.URL.Query().Get("period")); ok {
		ref, err := parseRefDate(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		expenses = core.FilterByPeriod(expenses, period, ref)
	}

	writeJSON(w, http.StatusOK, expenseListResponse{Expenses: expenses, Count: len(expenses)})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := s.tracker.Ledger.Add(r.Context(), req.Store, req.Date, req.Products)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	expensesCreated.Inc()
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	expense, ok := s.tracker.Ledger.FindByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.tracker.Ledger.Remove(r.Context(), id) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	expensesRemoved.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	s.tracker.Ledger.Clear(r.Context())
	s.logger.InfoContext(r.Context(), "Ledger cleared", log.FieldOperation, log.OpClear)
	w.WriteHeader(http.StatusNoContent)
}

type replaceProductsRequest struct {
	Products []core.LineItem `json:"products"`
}

func (s *Server) handleReplaceProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req replaceProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.tracker.Ledger.ReplaceProducts(r.Context(), id, req.Products) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	expense, _ := s.tracker.Ledger.FindByID(id)
	writeJSON(w, http.StatusOK, expense)
}
