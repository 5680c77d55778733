package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrBasketNotFound = errors.New("basket not found")
	ErrEmptyBasket    = errors.New("basket is empty")
	// ErrNotOwner covers both cancel and complete: only the owning customer
	// may transition an order.
	ErrNotOwner = errors.New("cannot modify another user's order")

	ErrCancelCompleted   = errors.New("completed orders cannot be cancelled")
	ErrAlreadyCancelled  = errors.New("order is already cancelled")
	ErrAlreadyCompleted  = errors.New("order is already completed")
	ErrCompleteCancelled = errors.New("cannot complete a cancelled order")

	// ErrConflict means another writer touched a product row between our
	// read and write. Nothing was persisted; the caller should retry.
	ErrConflict = errors.New("order could not be created due to a concurrent stock update, please retry")
)

// StockShortage describes one under-stocked basket line.
type StockShortage struct {
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// InsufficientStockError aggregates every shortage found during a
// create-order check, not just the first, so the client can fix the whole
// basket in one pass.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: requested %d, available %d", s.ProductName, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}
