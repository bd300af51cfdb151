package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductView is the product read model with every price converted to
// the requested display currency.
type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"product_name"`
	Slug        string    `json:"slug"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	SubCategory string    `json:"sub_category"`

	Price    decimal.Decimal  `json:"price"`
	OldPrice *decimal.Decimal `json:"old_price,omitempty"`
	Stock    int              `json:"stock"`

	Image    string        `json:"image"`
	Gallery  []string      `json:"gallery,omitempty"`
	Variants []VariantView `json:"variants"`

	SellGlobally        bool     `json:"sell_globally"`
	RestrictedCountries []string `json:"restricted_countries,omitempty"`
	AllowedCountries    []string `json:"allowed_countries,omitempty"`

	DeliveryDays int    `json:"delivery_days"`
	Currency     string `json:"currency"`
}

type VariantView struct {
	ID     uuid.UUID        `json:"id"`
	Color  string           `json:"color"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Stock  *int             `json:"stock,omitempty"`
	Images []string         `json:"images,omitempty"`
	Sizes  []SizeView       `json:"sizes,omitempty"`
}

type SizeView struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"name"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Stock  *int             `json:"stock,omitempty"`
	Images []string         `json:"images,omitempty"`
}
