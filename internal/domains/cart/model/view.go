package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSummary is the slice of catalog data a priced line carries for
// display.
type ProductSummary struct {
	Name   string   `json:"product_name"`
	Slug   string   `json:"slug"`
	Image  string   `json:"image"`
	Sizes  []string `json:"sizes,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// PricedLine is one cart line re-resolved against current catalog
// state and converted to the display currency. Quantity is the
// stock-clamped quantity; OverStock records that the requested quantity
// exceeded stock at read time.
type PricedLine struct {
	Slug      string     `json:"slug"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`

	Quantity  int  `json:"quantity"`
	Requested int  `json:"requested_quantity"`
	OverStock bool `json:"over_stock"`
	InStock   bool `json:"in_stock"`
	Stock     int  `json:"stock"`
	Eligible  bool `json:"eligible"`

	PriceBase decimal.Decimal `json:"price_aed"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`

	Product ProductSummary `json:"product"`
}

// ExclusionReason tags why a line was left out of the priced view.
type ExclusionReason string

const (
	// ExcludedProductRemoved: the slug no longer resolves to a product.
	ExcludedProductRemoved ExclusionReason = "product_removed"
	// ExcludedSelectionRemoved: the product exists but the referenced
	// variant or size does not.
	ExcludedSelectionRemoved ExclusionReason = "selection_removed"
)

// ExcludedLine records a stale cart reference that was dropped from the
// priced view. Reads never fail over someone else's missing data; they
// degrade and annotate instead.
type ExcludedLine struct {
	Slug      string          `json:"slug"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID      `json:"size_id,omitempty"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Reason    ExclusionReason `json:"reason"`
}

// PricedCart is the derived, never-persisted view of a cart in a target
// currency. Lines keep their input order. NonEligible lines are priced
// but excluded from the subtotal; Excluded lines vanished from the
// catalog since they were added.
type PricedCart struct {
	Currency     string          `json:"currency"`
	Count        int             `json:"count"`
	SubtotalBase decimal.Decimal `json:"price_aed"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Total        decimal.Decimal `json:"total_price"`

	Lines       []PricedLine   `json:"data"`
	NonEligible []PricedLine   `json:"non_eligible,omitempty"`
	Excluded    []ExcludedLine `json:"excluded,omitempty"`
}

// CartResponse is returned by mutation endpoints: the raw saved lines
// plus a message.
type CartResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Cart    Lines  `json:"cart"`
}
