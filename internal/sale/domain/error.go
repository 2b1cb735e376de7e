package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not_found")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrMissingSeller   = errors.New("missing_seller")
	ErrConflict        = errors.New("conflict")
)

// InsufficientStockError rejects a sale that would drive stock below
// zero. It names the product and its current stock so the message can
// be surfaced to the seller as-is.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available", e.ProductName, e.Available)
}
