package services

import (
	"context"

	"budgethero/internal/core"
)

type mockStore struct {
	EnsureDefaultBudgetFunc func(ctx context.Context, amount core.Money) (bool, error)
	GetBudgetFunc           func(ctx context.Context) (core.Budget, error)
	UpdateBudgetAmountFunc  func(ctx context.Context, id int64, amount core.Money) (core.Budget, error)
	CreateTransactionFunc   func(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListTransactionsFunc    func(ctx context.Context) ([]core.Transaction, error)
	CreateWishlistItemFunc  func(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error)
	ListWishlistItemsFunc   func(ctx context.Context) ([]core.WishlistItem, error)
	AddWishlistSavedFunc    func(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error)
	PingFunc                func(ctx context.Context) error
	CloseFunc               func() error
}

func (m *mockStore) EnsureDefaultBudget(ctx context.Context, amount core.Money) (bool, error) {
	if m.EnsureDefaultBudgetFunc != nil {
		return m.EnsureDefaultBudgetFunc(ctx, amount)
	}
	return false, nil
}

func (m *mockStore) GetBudget(ctx context.Context) (core.Budget, error) {
	if m.GetBudgetFunc != nil {
		return m.GetBudgetFunc(ctx)
	}
	return core.Budget{}, nil
}

func (m *mockStore) UpdateBudgetAmount(ctx context.Context, id int64, amount core.Money) (core.Budget, error) {
	if m.UpdateBudgetAmountFunc != nil {
		return m.UpdateBudgetAmountFunc(ctx, id, amount)
	}
	return core.Budget{}, nil
}

func (m *mockStore) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(ctx, t)
	}
	return t, nil
}

func (m *mockStore) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx)
	}
	return []core.Transaction{}, nil
}

func (m *mockStore) CreateWishlistItem(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error) {
	if m.CreateWishlistItemFunc != nil {
		return m.CreateWishlistItemFunc(ctx, item)
	}
	return item, nil
}

func (m *mockStore) ListWishlistItems(ctx context.Context) ([]core.WishlistItem, error) {
	if m.ListWishlistItemsFunc != nil {
		return m.ListWishlistItemsFunc(ctx)
	}
	return []core.WishlistItem{}, nil
}

func (m *mockStore) AddWishlistSaved(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error) {
	if m.AddWishlistSavedFunc != nil {
		return m.AddWishlistSavedFunc(ctx, id, delta)
	}
	return core.WishlistItem{}, nil
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *mockStore) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

type mockPublisher struct {
	published []int64
	err       error
	closeErr  error
}

func (m *mockPublisher) PublishTransactionSync(_ context.Context, id int64) error {
	m.published = append(m.published, id)
	return m.err
}

func (m *mockPublisher) Close() error {
	return m.closeErr
}
