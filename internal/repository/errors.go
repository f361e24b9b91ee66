// Package repository defines error values shared across repositories.
// These sentinels let handlers distinguish failure scenarios without
// inspecting SQL errors: a duplicate SKU maps to HTTP 409, a missing
// product to 404, and so on.  Insufficient stock carries data (the
// quantity still available) and is therefore a typed error rather than
// a sentinel; match it with errors.As.
package repository

import (
	"errors"
	"fmt"
)

// ErrUsernameExists is returned when registering a username that is
// already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrProductNotFound is returned when a product reference does not
// resolve to an existing row.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateSKU is returned when creating or updating a product with a
// non-empty SKU that already belongs to a different product.
var ErrDuplicateSKU = errors.New("sku already exists")

// ErrInvalidQuantity is returned when a sale or restock quantity is not a
// positive integer.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// InsufficientStockError is returned when a sale requests more units than
// are on hand.  Available reports the stock level at the time of the
// check so the caller can surface it to the user.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}
