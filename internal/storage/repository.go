package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budgethero/internal/core"

	_ "modernc.org/sqlite"
)

// maxTotalCents bounds stored running totals. With inputs capped at
// core.MaxAmount the SQL additions stay within int64.
const maxTotalCents int64 = 1_000_000_000_000_000_000

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// NewSQLiteRepository opens (creating if needed) the database file at dbPath
// and applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// EnsureDefaultBudget creates the budget row when none exists.
func (r *SQLiteRepository) EnsureDefaultBudget(ctx context.Context, amount core.Money) (bool, error) {
	created, err := r.queries.InsertDefaultBudget(ctx, amount.Cents)
	if err != nil {
		return false, fmt.Errorf("insert default budget: %w", err)
	}
	if created {
		slog.InfoContext(ctx, "Default budget created", "amount", amount.String())
	}
	return created, nil
}

// GetBudget returns the current budget, the row with the lowest id.
func (r *SQLiteRepository) GetBudget(ctx context.Context) (core.Budget, error) {
	b, err := r.queries.GetFirstBudget(ctx)
	if err != nil {
		return core.Budget{}, notFound(err, "get budget")
	}
	return toCoreBudget(b), nil
}

// UpdateBudgetAmount sets the spending limit of budget id. Spent is untouched.
func (r *SQLiteRepository) UpdateBudgetAmount(ctx context.Context, id int64, amount core.Money) (core.Budget, error) {
	b, err := r.queries.UpdateBudgetAmount(ctx, UpdateBudgetAmountParams{
		AmountCents: amount.Cents,
		ID:          id,
	})
	if err != nil {
		return core.Budget{}, notFound(err, fmt.Sprintf("update budget %d", id))
	}

	slog.InfoContext(ctx, "Budget amount updated",
		"id", b.ID,
		"amount_cents", b.AmountCents,
		"spent_cents", b.SpentCents)

	return toCoreBudget(b), nil
}

// CreateTransaction inserts t and adds its amount to the current budget in a
// single database transaction. Without a budget row only the insert happens.
// A new spent total beyond maxTotalCents fails with core.ErrInvalidAmount and
// nothing is written.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)

	budget, err := q.AddBudgetSpent(ctx, AddBudgetSpentParams{
		DeltaCents: t.Amount.Cents,
		MinCents:   -maxTotalCents,
		MaxCents:   maxTotalCents,
	})
	budgetFound := true
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, fmt.Errorf("add budget spent: %w", err)
		}
		n, err := q.CountBudgets(ctx)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("count budgets: %w", err)
		}
		if n > 0 {
			return core.Transaction{}, fmt.Errorf("add budget spent: %w: budget spent out of range", core.ErrInvalidAmount)
		}
		budgetFound = false
	}

	row, err := q.CreateTransaction(ctx, CreateTransactionParams{
		Category:    t.Category,
		AmountCents: t.Amount.Cents,
		Description: t.Description,
		Date:        t.Date,
		Type:        t.Type,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit transaction: %w", err)
	}

	if budgetFound {
		slog.InfoContext(ctx, "Transaction saved to SQLite",
			"id", row.ID,
			"amount_cents", row.AmountCents,
			"category", row.Category,
			"budget_id", budget.ID,
			"budget_spent_cents", budget.SpentCents)
	} else {
		slog.WarnContext(ctx, "Transaction saved without a budget to update",
			"id", row.ID,
			"amount_cents", row.AmountCents)
	}

	return toCoreTransaction(row), nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, notFound(err, fmt.Sprintf("get transaction %d", id))
	}
	return toCoreTransaction(row), nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		out[i] = toCoreTransaction(row)
	}
	return out, nil
}

// CreateWishlistItem stores item as given; saved is not clamped here.
func (r *SQLiteRepository) CreateWishlistItem(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error) {
	row, err := r.queries.CreateWishlistItem(ctx, CreateWishlistItemParams{
		Name:       item.Name,
		PriceCents: item.Price.Cents,
		SavedCents: item.Saved.Cents,
		Image:      item.Image,
	})
	if err != nil {
		return core.WishlistItem{}, fmt.Errorf("insert wishlist item: %w", err)
	}

	slog.InfoContext(ctx, "Wishlist item saved to SQLite",
		"id", row.ID,
		"name", row.Name,
		"price_cents", row.PriceCents)

	return toCoreWishlistItem(row), nil
}

func (r *SQLiteRepository) GetWishlistItem(ctx context.Context, id int64) (core.WishlistItem, error) {
	row, err := r.queries.GetWishlistItem(ctx, id)
	if err != nil {
		return core.WishlistItem{}, notFound(err, fmt.Sprintf("get wishlist item %d", id))
	}
	return toCoreWishlistItem(row), nil
}

func (r *SQLiteRepository) ListWishlistItems(ctx context.Context) ([]core.WishlistItem, error) {
	rows, err := r.queries.ListWishlistItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	out := make([]core.WishlistItem, len(rows))
	for i, row := range rows {
		out[i] = toCoreWishlistItem(row)
	}
	return out, nil
}

// AddWishlistSaved sets saved = min(saved + delta, price) for item id.
func (r *SQLiteRepository) AddWishlistSaved(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error) {
	row, err := r.queries.AddWishlistSaved(ctx, AddWishlistSavedParams{
		DeltaCents: delta.Cents,
		ID:         id,
		MinCents:   -maxTotalCents,
	})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return core.WishlistItem{}, fmt.Errorf("update wishlist item %d: %w", id, err)
		}
		// No row: either the item is missing or the guard rejected the delta.
		if _, err := r.GetWishlistItem(ctx, id); err != nil {
			return core.WishlistItem{}, err
		}
		return core.WishlistItem{}, fmt.Errorf("update wishlist item %d: %w: saved out of range", id, core.ErrInvalidAmount)
	}

	slog.InfoContext(ctx, "Wishlist saving updated",
		"id", row.ID,
		"delta_cents", delta.Cents,
		"saved_cents", row.SavedCents,
		"price_cents", row.PriceCents)

	return toCoreWishlistItem(row), nil
}

// notFound maps sql.ErrNoRows to core.ErrNotFound and wraps everything else.
func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toCoreBudget(b Budget) core.Budget {
	return core.Budget{
		ID:     b.ID,
		Amount: core.Money{Cents: b.AmountCents},
		Spent:  core.Money{Cents: b.SpentCents},
	}
}

func toCoreTransaction(t Transaction) core.Transaction {
	return core.Transaction{
		ID:          t.ID,
		Category:    t.Category,
		Amount:      core.Money{Cents: t.AmountCents},
		Description: t.Description,
		Date:        t.Date,
		Type:        t.Type,
	}
}

func toCoreWishlistItem(w WishlistItem) core.WishlistItem {
	return core.WishlistItem{
		ID:    w.ID,
		Name:  w.Name,
		Price: core.Money{Cents: w.PriceCents},
		Saved: core.Money{Cents: w.SavedCents},
		Image: w.Image,
	}
}
