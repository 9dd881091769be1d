package core

import (
	"errors"
	"fmt"
)

type (
	// Budget is the spending limit and the running total consumed by transactions.
	Budget struct {
		ID     int64 `json:"id"`
		Amount Money `json:"amount"`
		Spent  Money `json:"spent"`
	}

	// Transaction is an immutable ledger entry. Date and Type are free text.
	Transaction struct {
		ID          int64  `json:"id"`
		Category    string `json:"category"`
		Amount      Money  `json:"amount"`
		Description string `json:"description"`
		Date        string `json:"date"`
		Type        string `json:"type"`
	}

	// WishlistItem is a savings goal.
	WishlistItem struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Price Money  `json:"price"`
		Saved Money  `json:"saved"`
		Image string `json:"image"`
	}
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrMissingField  = errors.New("field required")
)

// DefaultBudgetAmount is the limit given to the budget created at bootstrap.
var DefaultBudgetAmount = Money{Cents: 500_00}

// MissingField reports a required input field that was absent.
func MissingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// ClampSaved returns min(saved+delta, price). Delta may be negative.
// Storage applies the same rule in SQL; its tests check against this.
func ClampSaved(saved, delta, price Money) Money {
	next := saved.Add(delta)
	if next.Cents > price.Cents {
		return price
	}
	return next
}
