package model

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrSizeNotFound      = errors.New("size not found")
	ErrSelectionNotFound = errors.New("selection not found")
)
