package http

import (
	"net/http"
	"strings"

	"budgethero/internal/core"
	"budgethero/internal/log"
)

// transactionRequest uses pointers so absent fields can be told apart
// from zero values.
type transactionRequest struct {
	Category    *string     `json:"category"`
	Amount      *core.Money `json:"amount"`
	Description *string     `json:"description"`
	Date        *string     `json:"date"`
	Type        *string     `json:"type"`
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	switch {
	case req.Category == nil:
		return core.Transaction{}, core.MissingField("category")
	case req.Amount == nil:
		return core.Transaction{}, core.MissingField("amount")
	case req.Description == nil:
		return core.Transaction{}, core.MissingField("description")
	case req.Date == nil:
		return core.Transaction{}, core.MissingField("date")
	case req.Type == nil:
		return core.Transaction{}, core.MissingField("type")
	}
	return core.Transaction{
		Category:    strings.TrimSpace(*req.Category),
		Amount:      *req.Amount,
		Description: strings.TrimSpace(*req.Description),
		Date:        strings.TrimSpace(*req.Date),
		Type:        strings.TrimSpace(*req.Type),
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, log.OpParse, "")
		return
	}
	t, err := req.toTransaction()
	if err != nil {
		writeServiceError(w, r, err, log.OpParse, "")
		return
	}

	created, err := s.ledger.CreateTransaction(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err, log.OpCreate, "")
		return
	}

	s.events.LogTransactionCreated(r.Context(), created.ID, created.Amount.Cents, created.Category, created.Type)
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.ledger.ListTransactions(r.Context())
	if err != nil {
		writeServiceError(w, r, err, log.OpList, "")
		return
	}
	if list == nil {
		list = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, list)
}
