package inventory

import (
	"errors"
	"fmt"
)

// ErrInsufficientStock is the sentinel behind InsufficientStockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError is returned by a ledger reservation that asked for
// more than the warehouse holds. Available is the live amount at the time of
// the failed attempt; the ledger is left unchanged.
type InsufficientStockError struct {
	Key       StockKey
	Requested int
	Available int
}

func NewInsufficientStockError(key StockKey, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{Key: key, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %s requested %d, available %d", ErrInsufficientStock, e.Key, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
