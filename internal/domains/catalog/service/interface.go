package service

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/catalog/model"
)

// CurrencyConverter is the slice of the currency domain the catalog
// needs. Implemented by *currency.Converter.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, targetCurrency string) (decimal.Decimal, error)
	BaseCurrency() string
}

type ServiceInterface interface {
	// GetProduct resolves a product by slug and converts the whole price
	// tree (base, variants, sizes) to the display currency.
	GetProduct(ctx context.Context, slug, currency string) (*model.ProductView, error)
}
