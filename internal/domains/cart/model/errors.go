package model

import (
	"errors"
	"fmt"
)

var (
	ErrCartLineNotFound = errors.New("item not found in cart")
	ErrEmptyCart        = errors.New("cart is empty")
)

// InsufficientStockError carries the available stock so the HTTP layer
// can state the limit in the error payload.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d item(s) in stock", e.Available)
}

// QuantityLimitError is returned when a request exceeds the fixed
// per-line quantity cap.
type QuantityLimitError struct {
	Limit int
}

func (e *QuantityLimitError) Error() string {
	return fmt.Sprintf("maximum quantity per item is %d", e.Limit)
}
