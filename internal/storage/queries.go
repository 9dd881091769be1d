package storage

import (
	"context"
)

const getFirstBudget = `SELECT id, amount_cents, spent_cents FROM budgets ORDER BY id LIMIT 1`

func (q *Queries) GetFirstBudget(ctx context.Context) (Budget, error) {
	row := q.db.QueryRowContext(ctx, getFirstBudget)
	var i Budget
	err := row.Scan(&i.ID, &i.AmountCents, &i.SpentCents)
	return i, err
}

const countBudgets = `SELECT COUNT(*) FROM budgets`

func (q *Queries) CountBudgets(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countBudgets)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertDefaultBudget = `INSERT INTO budgets (amount_cents, spent_cents)
SELECT ?, 0
WHERE NOT EXISTS (SELECT 1 FROM budgets)`

// InsertDefaultBudget inserts a budget only when the table is empty and
// reports whether a row was written.
func (q *Queries) InsertDefaultBudget(ctx context.Context, amountCents int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, insertDefaultBudget, amountCents)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const updateBudgetAmount = `UPDATE budgets SET amount_cents = ?
WHERE id = ?
RETURNING id, amount_cents, spent_cents`

type UpdateBudgetAmountParams struct {
	AmountCents int64
	ID          int64
}

func (q *Queries) UpdateBudgetAmount(ctx context.Context, arg UpdateBudgetAmountParams) (Budget, error) {
	row := q.db.QueryRowContext(ctx, updateBudgetAmount, arg.AmountCents, arg.ID)
	var i Budget
	err := row.Scan(&i.ID, &i.AmountCents, &i.SpentCents)
	return i, err
}

const addBudgetSpent = `UPDATE budgets SET spent_cents = spent_cents + ?
WHERE id = (SELECT id FROM budgets ORDER BY id LIMIT 1)
  AND spent_cents + ? BETWEEN ? AND ?
RETURNING id, amount_cents, spent_cents`

type AddBudgetSpentParams struct {
	DeltaCents int64
	MinCents   int64
	MaxCents   int64
}

// AddBudgetSpent increments the first budget's spent total in one statement.
// It returns sql.ErrNoRows when no budget exists or the new total would fall
// outside [MinCents, MaxCents].
func (q *Queries) AddBudgetSpent(ctx context.Context, arg AddBudgetSpentParams) (Budget, error) {
	row := q.db.QueryRowContext(ctx, addBudgetSpent, arg.DeltaCents, arg.DeltaCents, arg.MinCents, arg.MaxCents)
	var i Budget
	err := row.Scan(&i.ID, &i.AmountCents, &i.SpentCents)
	return i, err
}

const createTransaction = `INSERT INTO transactions (category, amount_cents, description, date, type)
VALUES (?, ?, ?, ?, ?)
RETURNING id, category, amount_cents, description, date, type`

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.Category,
		arg.AmountCents,
		arg.Description,
		arg.Date,
		arg.Type,
	)
	var i Transaction
	err := row.Scan(&i.ID, &i.Category, &i.AmountCents, &i.Description, &i.Date, &i.Type)
	return i, err
}

const getTransaction = `SELECT id, category, amount_cents, description, date, type
FROM transactions WHERE id = ?`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	var i Transaction
	err := row.Scan(&i.ID, &i.Category, &i.AmountCents, &i.Description, &i.Date, &i.Type)
	return i, err
}

const listTransactions = `SELECT id, category, amount_cents, description, date, type
FROM transactions ORDER BY id`

func (q *Queries) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(&i.ID, &i.Category, &i.AmountCents, &i.Description, &i.Date, &i.Type); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createWishlistItem = `INSERT INTO wishlist_items (name, price_cents, saved_cents, image)
VALUES (?, ?, ?, ?)
RETURNING id, name, price_cents, saved_cents, image`

func (q *Queries) CreateWishlistItem(ctx context.Context, arg CreateWishlistItemParams) (WishlistItem, error) {
	row := q.db.QueryRowContext(ctx, createWishlistItem,
		arg.Name,
		arg.PriceCents,
		arg.SavedCents,
		arg.Image,
	)
	var i WishlistItem
	err := row.Scan(&i.ID, &i.Name, &i.PriceCents, &i.SavedCents, &i.Image)
	return i, err
}

const getWishlistItem = `SELECT id, name, price_cents, saved_cents, image
FROM wishlist_items WHERE id = ?`

func (q *Queries) GetWishlistItem(ctx context.Context, id int64) (WishlistItem, error) {
	row := q.db.QueryRowContext(ctx, getWishlistItem, id)
	var i WishlistItem
	err := row.Scan(&i.ID, &i.Name, &i.PriceCents, &i.SavedCents, &i.Image)
	return i, err
}

const listWishlistItems = `SELECT id, name, price_cents, saved_cents, image
FROM wishlist_items ORDER BY id`

func (q *Queries) ListWishlistItems(ctx context.Context) ([]WishlistItem, error) {
	rows, err := q.db.QueryContext(ctx, listWishlistItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []WishlistItem{}
	for rows.Next() {
		var i WishlistItem
		if err := rows.Scan(&i.ID, &i.Name, &i.PriceCents, &i.SavedCents, &i.Image); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const addWishlistSaved = `UPDATE wishlist_items SET saved_cents = MIN(saved_cents + ?, price_cents)
WHERE id = ? AND saved_cents + ? >= ?
RETURNING id, name, price_cents, saved_cents, image`

type AddWishlistSavedParams struct {
	DeltaCents int64
	ID         int64
	MinCents   int64
}

// AddWishlistSaved applies a clamped saving delta in one statement. It
// returns sql.ErrNoRows when the item is missing or saved would drop below
// MinCents.
func (q *Queries) AddWishlistSaved(ctx context.Context, arg AddWishlistSavedParams) (WishlistItem, error) {
	row := q.db.QueryRowContext(ctx, addWishlistSaved, arg.DeltaCents, arg.ID, arg.DeltaCents, arg.MinCents)
	var i WishlistItem
	err := row.Scan(&i.ID, &i.Name, &i.PriceCents, &i.SavedCents, &i.Image)
	return i, err
}
