package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"budgethero/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func cents(c int64) core.Money { return core.Money{Cents: c} }

func TestEnsureDefaultBudgetIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.EnsureDefaultBudget(ctx, core.DefaultBudgetAmount)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureDefaultBudget(ctx, cents(100))
	require.NoError(t, err)
	assert.False(t, created)

	n, err := repo.queries.CountBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	b, err := repo.GetBudget(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, core.DefaultBudgetAmount, b.Amount)
	assert.Equal(t, cents(0), b.Spent)
}

func TestGetBudgetEmpty(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetBudget(context.Background())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateBudgetAmount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureDefaultBudget(ctx, core.DefaultBudgetAmount)
	require.NoError(t, err)

	_, err = repo.CreateTransaction(ctx, core.Transaction{
		Category: "Food", Amount: cents(25_50), Description: "Groceries", Date: "2024-05-01", Type: "expense",
	})
	require.NoError(t, err)

	b, err := repo.UpdateBudgetAmount(ctx, 1, cents(800_00))
	require.NoError(t, err)
	assert.Equal(t, cents(800_00), b.Amount)
	assert.Equal(t, cents(25_50), b.Spent, "spent must not change")

	_, err = repo.UpdateBudgetAmount(ctx, 99, cents(1))
	assert.ErrorIs(t, err, core.ErrNotFound)

	b, err = repo.GetBudget(ctx)
	require.NoError(t, err)
	assert.Equal(t, cents(800_00), b.Amount)
}

func TestCreateTransactionAccumulatesSpent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureDefaultBudget(ctx, core.DefaultBudgetAmount)
	require.NoError(t, err)

	first, err := repo.CreateTransaction(ctx, core.Transaction{
		Category: "Food", Amount: cents(25_50), Description: "Groceries", Date: "2024-05-01", Type: "expense",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = repo.CreateTransaction(ctx, core.Transaction{
		Category: "Salary", Amount: cents(-10_00), Description: "refund", Date: "2024-05-02", Type: "income",
	})
	require.NoError(t, err)

	b, err := repo.GetBudget(ctx)
	require.NoError(t, err)
	assert.Equal(t, cents(15_50), b.Spent)

	list, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0])
	assert.Equal(t, "income", list[1].Type)

	got, err := repo.GetTransaction(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = repo.GetTransaction(ctx, 42)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateTransactionWithoutBudget(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx, err := repo.CreateTransaction(ctx, core.Transaction{
		Category: "Food", Amount: cents(5_00), Description: "Snack", Date: "2024-05-01", Type: "expense",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tx.ID)

	n, err := repo.queries.CountBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCreateTransactionConcurrent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureDefaultBudget(ctx, core.DefaultBudgetAmount)
	require.NoError(t, err)

	const n = 20
	amount := cents(2_50)

	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateTransaction(ctx, core.Transaction{
				Category: "Food", Amount: amount, Description: "Coffee", Date: "2024-05-01", Type: "expense",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	b, err := repo.GetBudget(ctx)
	require.NoError(t, err)
	assert.Equal(t, cents(n*amount.Cents), b.Spent)

	list, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestCreateTransactionSpentOutOfRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureDefaultBudget(ctx, core.DefaultBudgetAmount)
	require.NoError(t, err)
	_, err = repo.db.ExecContext(ctx, `UPDATE budgets SET spent_cents = ?`, maxTotalCents-10)
	require.NoError(t, err)

	_, err = repo.CreateTransaction(ctx, core.Transaction{
		Category: "Boat", Amount: core.MaxAmount, Description: "Yacht", Date: "2024-05-01", Type: "expense",
	})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	list, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected transaction must not be stored")

	b, err := repo.GetBudget(ctx)
	require.NoError(t, err)
	assert.Equal(t, cents(maxTotalCents-10), b.Spent)

	_, err = repo.CreateTransaction(ctx, core.Transaction{
		Category: "Food", Amount: cents(10), Description: "Gum", Date: "2024-05-01", Type: "expense",
	})
	require.NoError(t, err)

	b, err = repo.GetBudget(ctx)
	require.NoError(t, err)
	assert.Equal(t, cents(maxTotalCents), b.Spent)
}

func TestListEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	txs, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)

	items, err := repo.ListWishlistItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAddWishlistSaved(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item, err := repo.CreateWishlistItem(ctx, core.WishlistItem{
		Name: "Bike", Price: cents(300_00), Saved: cents(0), Image: "bike.png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)

	tests := []struct {
		name  string
		delta core.Money
		want  core.Money
	}{
		{"partial", cents(120_00), cents(120_00)},
		{"more", cents(100_00), cents(220_00)},
		{"clamped at price", cents(500_00), cents(300_00)},
		{"negative", cents(-50_00), cents(250_00)},
		{"zero", cents(0), cents(250_00)},
		{"below zero", cents(-400_00), cents(-150_00)},
	}
	prev := item
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.AddWishlistSaved(ctx, item.ID, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Saved)
			assert.Equal(t, core.ClampSaved(prev.Saved, tt.delta, prev.Price), got.Saved)
			assert.Equal(t, cents(300_00), got.Price)
			prev = got
		})
	}
}

func TestAddWishlistSavedClampsOverfundedItem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item, err := repo.CreateWishlistItem(ctx, core.WishlistItem{
		Name: "Book", Price: cents(10_00), Saved: cents(15_00), Image: "book.jpg",
	})
	require.NoError(t, err)

	got, err := repo.AddWishlistSaved(ctx, item.ID, cents(0))
	require.NoError(t, err)
	assert.Equal(t, core.ClampSaved(item.Saved, cents(0), item.Price), got.Saved)
	assert.Equal(t, cents(10_00), got.Saved)
}

func TestAddWishlistSavedOutOfRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item, err := repo.CreateWishlistItem(ctx, core.WishlistItem{
		Name: "Car", Price: cents(100_00), Saved: cents(0), Image: "car.png",
	})
	require.NoError(t, err)
	_, err = repo.db.ExecContext(ctx, `UPDATE wishlist_items SET saved_cents = ? WHERE id = ?`, -maxTotalCents+5, item.ID)
	require.NoError(t, err)

	_, err = repo.AddWishlistSaved(ctx, item.ID, cents(-10))
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.NotErrorIs(t, err, core.ErrNotFound)

	got, err := repo.GetWishlistItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, cents(-maxTotalCents+5), got.Saved)

	got, err = repo.AddWishlistSaved(ctx, item.ID, cents(-5))
	require.NoError(t, err)
	assert.Equal(t, cents(-maxTotalCents), got.Saved)
}

func TestAddWishlistSavedNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item, err := repo.CreateWishlistItem(ctx, core.WishlistItem{
		Name: "Lamp", Price: cents(40_00), Saved: cents(10_00), Image: "",
	})
	require.NoError(t, err)

	_, err = repo.AddWishlistSaved(ctx, item.ID+1, cents(5_00))
	assert.ErrorIs(t, err, core.ErrNotFound)

	items, err := repo.ListWishlistItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item, items[0])
}

func TestCreateWishlistItemKeepsSavedAsGiven(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item, err := repo.CreateWishlistItem(ctx, core.WishlistItem{
		Name: "Book", Price: cents(10_00), Saved: cents(15_00), Image: "book.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, cents(15_00), item.Saved)

	got, err := repo.GetWishlistItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	_, err = repo.EnsureDefaultBudget(ctx, core.DefaultBudgetAmount)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	created, err := repo.EnsureDefaultBudget(ctx, core.DefaultBudgetAmount)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, repo.Ping(ctx))
}
