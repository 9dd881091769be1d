package http

import (
	"net/http"
	"strings"

	"budgethero/internal/core"
	"budgethero/internal/log"
)

const itemNotFound = "Item not found"

type wishlistRequest struct {
	Name  *string     `json:"name"`
	Price *core.Money `json:"price"`
	Saved *core.Money `json:"saved"`
	Image *string     `json:"image"`
}

func (req wishlistRequest) toItem() (core.WishlistItem, error) {
	switch {
	case req.Name == nil:
		return core.WishlistItem{}, core.MissingField("name")
	case req.Price == nil:
		return core.WishlistItem{}, core.MissingField("price")
	case req.Image == nil:
		return core.WishlistItem{}, core.MissingField("image")
	}
	item := core.WishlistItem{
		Name:  strings.TrimSpace(*req.Name),
		Price: *req.Price,
		Image: strings.TrimSpace(*req.Image),
	}
	if req.Saved != nil {
		item.Saved = *req.Saved
	}
	return item, nil
}

func (s *Server) handleCreateWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, log.OpParse, itemNotFound)
		return
	}
	item, err := req.toItem()
	if err != nil {
		writeServiceError(w, r, err, log.OpParse, itemNotFound)
		return
	}

	created, err := s.ledger.CreateWishlistItem(r.Context(), item)
	if err != nil {
		writeServiceError(w, r, err, log.OpCreate, itemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListWishlistItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.ledger.ListWishlistItems(r.Context())
	if err != nil {
		writeServiceError(w, r, err, log.OpList, itemNotFound)
		return
	}
	if items == nil {
		items = []core.WishlistItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleUpdateWishlistItem adds saved_amount to the item's savings, capped at its price.
func (s *Server) handleUpdateWishlistItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "item_id")
	if err != nil {
		writeServiceError(w, r, err, log.OpUpdate, itemNotFound)
		return
	}
	delta, err := moneyParam(r, "saved_amount")
	if err != nil {
		writeServiceError(w, r, err, log.OpUpdate, itemNotFound)
		return
	}

	item, err := s.ledger.UpdateWishlistItem(r.Context(), id, delta)
	if err != nil {
		writeServiceError(w, r, err, log.OpUpdate, itemNotFound)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Wishlist item updated",
		log.NewFields().WithWishlistItem(item.ID, item.Price.Cents, item.Saved.Cents).ToSlice()...)
	writeJSON(w, http.StatusOK, item)
}
