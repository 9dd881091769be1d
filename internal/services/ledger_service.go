package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgethero/internal/core"
)

// Store is the persistence the ledger needs. *storage.SQLiteRepository satisfies it.
type Store interface {
	EnsureDefaultBudget(ctx context.Context, amount core.Money) (bool, error)
	GetBudget(ctx context.Context) (core.Budget, error)
	UpdateBudgetAmount(ctx context.Context, id int64, amount core.Money) (core.Budget, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateWishlistItem(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error)
	ListWishlistItems(ctx context.Context) ([]core.WishlistItem, error)
	AddWishlistSaved(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error)
	Ping(ctx context.Context) error
	Close() error
}

// SyncPublisher announces new transactions to downstream mirrors.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id int64) error
	Close() error
}

// LedgerService orchestrates budget, transaction and wishlist operations
// across SQLite and AMQP.
type LedgerService struct {
	store     Store
	publisher SyncPublisher
}

// NewLedgerService builds the service. publisher may be nil to disable events.
func NewLedgerService(store Store, publisher SyncPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// Bootstrap makes sure a budget exists. Safe to call on every start.
func (s *LedgerService) Bootstrap(ctx context.Context, defaultAmount core.Money) error {
	created, err := s.store.EnsureDefaultBudget(ctx, defaultAmount)
	if err != nil {
		return fmt.Errorf("bootstrap budget: %w", err)
	}
	if !created {
		slog.DebugContext(ctx, "Budget already present, bootstrap skipped")
	}
	return nil
}

func (s *LedgerService) GetBudget(ctx context.Context) (core.Budget, error) {
	b, err := s.store.GetBudget(ctx)
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// UpdateBudget replaces the budget limit. Spent is kept.
func (s *LedgerService) UpdateBudget(ctx context.Context, id int64, amount core.Money) (core.Budget, error) {
	b, err := s.store.UpdateBudgetAmount(ctx, id, amount)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	return b, nil
}

// CreateTransaction saves a transaction locally and publishes a sync message.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSyncMessage(ctx, saved.ID); err != nil {
		// The transaction is stored; the mirror catches up on the next message.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", saved.ID, "error", err)
	}

	return saved, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *LedgerService) CreateWishlistItem(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error) {
	saved, err := s.store.CreateWishlistItem(ctx, item)
	if err != nil {
		return core.WishlistItem{}, fmt.Errorf("save wishlist item: %w", err)
	}
	return saved, nil
}

func (s *LedgerService) ListWishlistItems(ctx context.Context) ([]core.WishlistItem, error) {
	items, err := s.store.ListWishlistItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	return items, nil
}

// UpdateWishlistItem adds delta to the saved amount, never past the price.
func (s *LedgerService) UpdateWishlistItem(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error) {
	item, err := s.store.AddWishlistSaved(ctx, id, delta)
	if err != nil {
		return core.WishlistItem{}, fmt.Errorf("update wishlist item: %w", err)
	}
	return item, nil
}

// Ready reports whether the database answers.
func (s *LedgerService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *LedgerService) publishSyncMessage(ctx context.Context, id int64) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping sync message", "id", id)
		return nil
	}
	return s.publisher.PublishTransactionSync(ctx, id)
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close ledger service: %w", err)
	}
	return nil
}
