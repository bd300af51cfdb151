package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Size is a purchasable size inside a variant. Price and Stock are
// overrides; nil means "inherit from the variant or product".
type Size struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"name"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Stock  *int             `json:"stock,omitempty"`
	Images []string         `json:"images,omitempty"`
}

// Variant groups sizes under a color. Price and Stock are overrides
// with the same inherit-when-nil semantics as Size.
type Variant struct {
	ID     uuid.UUID        `json:"id"`
	Color  string           `json:"color"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Stock  *int             `json:"stock,omitempty"`
	Images []string         `json:"images,omitempty"`
	Sizes  []Size           `json:"sizes,omitempty"`
}

// Product is the catalog entity. Prices are stored in the base currency.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"product_name" db:"product_name"`
	Slug        string    `json:"slug" db:"slug"`
	Brand       string    `json:"brand" db:"brand"`
	Category    string    `json:"category" db:"category"`
	SubCategory string    `json:"sub_category" db:"sub_category"`

	Price    decimal.Decimal  `json:"price" db:"price"`
	OldPrice *decimal.Decimal `json:"old_price,omitempty" db:"old_price"`
	Stock    int              `json:"stock" db:"stock"`

	Image    string         `json:"image" db:"main_image"`
	Gallery  pq.StringArray `json:"gallery" db:"gallery"`
	Variants []Variant      `json:"variants" db:"variants"`

	// Sale eligibility policy. SellGlobally=true means "everywhere except
	// RestrictedCountries"; false means "only AllowedCountries".
	SellGlobally        bool           `json:"sell_globally" db:"sell_globally"`
	RestrictedCountries pq.StringArray `json:"restricted_countries" db:"restricted_countries"`
	AllowedCountries    pq.StringArray `json:"allowed_countries" db:"allowed_countries"`

	DeliveryDays int       `json:"delivery_days" db:"delivery_days"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Colors lists the variant colors, in variant order.
func (p *Product) Colors() []string {
	colors := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		colors = append(colors, v.Color)
	}
	return colors
}

// FindVariant returns the variant with the given id, or nil.
func (p *Product) FindVariant(id uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// FindSize returns the size with the given id, or nil.
func (v *Variant) FindSize(id uuid.UUID) *Size {
	for i := range v.Sizes {
		if v.Sizes[i].ID == id {
			return &v.Sizes[i]
		}
	}
	return nil
}

// FindSizeByName returns the size with the given name, or nil.
func (v *Variant) FindSizeByName(name string) *Size {
	for i := range v.Sizes {
		if v.Sizes[i].Name == name {
			return &v.Sizes[i]
		}
	}
	return nil
}
