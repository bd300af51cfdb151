package model

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyOrder       = errors.New("cart is empty")
	ErrCartNotOrderable = errors.New("cart contains items that cannot be ordered")
)
