package http

import (
	"net/http"

	"budgethero/internal/log"
)

const budgetNotFound = "Budget not found"

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.ledger.GetBudget(r.Context())
	if err != nil {
		writeServiceError(w, r, err, log.OpRead, budgetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// handleUpdateBudget replaces the budget limit. Spent is left alone.
func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "budget_id")
	if err != nil {
		writeServiceError(w, r, err, log.OpUpdate, budgetNotFound)
		return
	}
	amount, err := moneyParam(r, "amount")
	if err != nil {
		writeServiceError(w, r, err, log.OpUpdate, budgetNotFound)
		return
	}

	budget, err := s.ledger.UpdateBudget(r.Context(), id, amount)
	if err != nil {
		writeServiceError(w, r, err, log.OpUpdate, budgetNotFound)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Budget updated",
		log.NewFields().WithBudget(budget.ID, budget.Amount.Cents, budget.Spent.Cents).ToSlice()...)
	writeJSON(w, http.StatusOK, budget)
}
