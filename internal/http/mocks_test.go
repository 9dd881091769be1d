package http

import (
	"context"

	"budgethero/internal/core"
)

type fakeLedger struct {
	getBudgetFunc          func(ctx context.Context) (core.Budget, error)
	updateBudgetFunc       func(ctx context.Context, id int64, amount core.Money) (core.Budget, error)
	createTransactionFunc  func(ctx context.Context, t core.Transaction) (core.Transaction, error)
	listTransactionsFunc   func(ctx context.Context) ([]core.Transaction, error)
	createWishlistItemFunc func(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error)
	listWishlistItemsFunc  func(ctx context.Context) ([]core.WishlistItem, error)
	updateWishlistItemFunc func(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error)
	readyFunc              func(ctx context.Context) error
}

func (f *fakeLedger) GetBudget(ctx context.Context) (core.Budget, error) {
	if f.getBudgetFunc != nil {
		return f.getBudgetFunc(ctx)
	}
	return core.Budget{}, core.ErrNotFound
}

func (f *fakeLedger) UpdateBudget(ctx context.Context, id int64, amount core.Money) (core.Budget, error) {
	if f.updateBudgetFunc != nil {
		return f.updateBudgetFunc(ctx, id, amount)
	}
	return core.Budget{}, core.ErrNotFound
}

func (f *fakeLedger) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if f.createTransactionFunc != nil {
		return f.createTransactionFunc(ctx, t)
	}
	t.ID = 1
	return t, nil
}

func (f *fakeLedger) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if f.listTransactionsFunc != nil {
		return f.listTransactionsFunc(ctx)
	}
	return nil, nil
}

func (f *fakeLedger) CreateWishlistItem(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error) {
	if f.createWishlistItemFunc != nil {
		return f.createWishlistItemFunc(ctx, item)
	}
	item.ID = 1
	return item, nil
}

func (f *fakeLedger) ListWishlistItems(ctx context.Context) ([]core.WishlistItem, error) {
	if f.listWishlistItemsFunc != nil {
		return f.listWishlistItemsFunc(ctx)
	}
	return nil, nil
}

func (f *fakeLedger) UpdateWishlistItem(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error) {
	if f.updateWishlistItemFunc != nil {
		return f.updateWishlistItemFunc(ctx, id, delta)
	}
	return core.WishlistItem{}, core.ErrNotFound
}

func (f *fakeLedger) Ready(ctx context.Context) error {
	if f.readyFunc != nil {
		return f.readyFunc(ctx)
	}
	return nil
}
