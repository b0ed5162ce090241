package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors of the placeOrder flow. Each phase surfaces exactly one
// category; the orchestrator never retries on its own.
var (
	ErrValidation         = errors.New("invalid order request")
	ErrStockUnavailable   = errors.New("stock unavailable")
	ErrPriceNotFound      = errors.New("price not found")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// StockUnavailableError names every product whose stock check came back
// negative. Matches ErrStockUnavailable via errors.Is.
type StockUnavailableError struct {
	ProductIDs []int64
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("stock unavailable for products %v", e.ProductIDs)
}

func (e *StockUnavailableError) Is(target error) bool {
	return target == ErrStockUnavailable
}

// PriceNotFoundError means a requested product no longer exists in the
// product catalog. Matches ErrPriceNotFound via errors.Is.
type PriceNotFoundError struct {
	ProductID int64
}

func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("price not found for product %d", e.ProductID)
}

func (e *PriceNotFoundError) Is(target error) bool {
	return target == ErrPriceNotFound
}
