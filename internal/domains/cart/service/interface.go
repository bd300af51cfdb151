package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
)

// CurrencyConverter is the slice of the currency domain the cart
// needs. Implemented by *currency.Converter.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, targetCurrency string) (decimal.Decimal, error)
	Supports(ctx context.Context, targetCurrency string) (bool, error)
	BaseCurrency() string
}

type ServiceInterface interface {
	// AddItem adds or replaces a selection in the user's cart. The
	// stored quantity is the requested quantity, never a sum; qty 0
	// removes the line.
	AddItem(ctx context.Context, userID uuid.UUID, req model.AddToCartRequest, qty int) (*model.CartResponse, error)

	// UpdateQuantity sets the quantity of an existing line; <= 0
	// removes it.
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req model.UpdateQuantityRequest) (*model.CartResponse, error)

	// RemoveItem deletes the line identified by slug plus the optional
	// variant/size scope.
	RemoveItem(ctx context.Context, userID uuid.UUID, slug string, req model.RemoveItemRequest) (*model.CartResponse, error)

	// GetQuantity returns the stored quantity for a name-scoped
	// selection, 0 when the line is absent.
	GetQuantity(ctx context.Context, userID uuid.UUID, slug, color, size string) (int, error)

	// GetLine returns the stored line for a name-scoped selection.
	GetLine(ctx context.Context, userID uuid.UUID, slug, color, size string) (*model.CartLine, error)

	// GetLines returns the user's raw cart lines.
	GetLines(ctx context.Context, userID uuid.UUID) (model.Lines, error)

	// PriceLines produces the priced view of arbitrary lines: every
	// line re-resolved against current catalog state, quantities
	// clamped to stock, amounts converted to the target currency, and
	// country eligibility applied when a country is given.
	PriceLines(ctx context.Context, lines model.Lines, currency, country string) (*model.PricedCart, error)

	// PriceUserCart loads the user's cart and prices it.
	PriceUserCart(ctx context.Context, userID uuid.UUID, currency, country string) (*model.PricedCart, error)

	// MergeGuestCart folds a guest cart into the persisted cart.
	// Quantities for matching identity keys are ADDED (capped by stock
	// and the per-line limit), unlike a plain upsert which replaces.
	MergeGuestCart(ctx context.Context, userID uuid.UUID, guest model.Lines) (model.Lines, error)

	// ClearCart removes every line from the user's cart.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
