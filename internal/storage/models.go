package storage

type Budget struct {
	ID          int64
	AmountCents int64
	SpentCents  int64
}

type Transaction struct {
	ID          int64
	Category    string
	AmountCents int64
	Description string
	Date        string
	Type        string
}

type WishlistItem struct {
	ID         int64
	Name       string
	PriceCents int64
	SavedCents int64
	Image      string
}

type CreateTransactionParams struct {
	Category    string
	AmountCents int64
	Description string
	Date        string
	Type        string
}

type CreateWishlistItemParams struct {
	Name       string
	PriceCents int64
	SavedCents int64
	Image      string
}
