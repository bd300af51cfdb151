package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Selector identifies a purchasable configuration of a product.
// Either the id pair (authoritative, used by authenticated cart
// operations) or the color/size name pair (guest and display lookups)
// may be set; all fields are optional.
type Selector struct {
	VariantID *uuid.UUID
	SizeID    *uuid.UUID
	Color     string
	Size      string
}

// IsZero reports whether the selector constrains nothing.
func (s Selector) IsZero() bool {
	return s.VariantID == nil && s.SizeID == nil && s.Color == "" && s.Size == ""
}

// Resolved is the effective price/stock/image for a selection, after
// walking the size -> variant -> product fallback chain. Variant and
// Size point into the product when the selection matched one.
type Resolved struct {
	Price   decimal.Decimal
	Stock   int
	Image   string
	Variant *Variant
	Size    *Size
}

// VariantID returns the matched variant id, or Nil.
func (r *Resolved) VariantID() uuid.UUID {
	if r.Variant == nil {
		return uuid.Nil
	}
	return r.Variant.ID
}

// SizeID returns the matched size id, or Nil.
func (r *Resolved) SizeID() uuid.UUID {
	if r.Size == nil {
		return uuid.Nil
	}
	return r.Size.ID
}

// Resolve determines the effective unit price, stock and image for the
// selector. Id lookups that reference a variant or size not present on
// the product fail with ErrVariantNotFound / ErrSizeNotFound. A
// name-based lookup that matches no variant returns (nil, nil), "no
// selection", and the caller decides between product-level fallback
// and not-found.
func (p *Product) Resolve(sel Selector) (*Resolved, error) {
	var variant *Variant
	var size *Size

	switch {
	case sel.VariantID != nil:
		variant = p.FindVariant(*sel.VariantID)
		if variant == nil {
			return nil, ErrVariantNotFound
		}
		if sel.SizeID != nil {
			size = variant.FindSize(*sel.SizeID)
			if size == nil {
				return nil, ErrSizeNotFound
			}
		}

	case sel.Color != "" || sel.Size != "":
		variant = p.matchVariantByName(sel.Color, sel.Size)
		if variant == nil {
			return nil, nil
		}
		if sel.Size != "" {
			size = variant.FindSizeByName(sel.Size)
		}
	}

	return p.resolveFields(variant, size), nil
}

// matchVariantByName finds a variant whose color matches (when given)
// and which carries a size of the given name (when given). Both
// constraints are optional and checked independently.
func (p *Product) matchVariantByName(color, sizeName string) *Variant {
	for i := range p.Variants {
		v := &p.Variants[i]
		if color != "" && v.Color != color {
			continue
		}
		if sizeName != "" && v.FindSizeByName(sizeName) == nil {
			continue
		}
		return v
	}
	return nil
}

// resolveFields walks the fallback chain for each field independently:
// a variant may override price but inherit stock.
func (p *Product) resolveFields(variant *Variant, size *Size) *Resolved {
	r := &Resolved{
		Price:   p.Price,
		Stock:   p.Stock,
		Image:   p.Image,
		Variant: variant,
		Size:    size,
	}

	if variant != nil {
		if variant.Price != nil {
			r.Price = *variant.Price
		}
		if variant.Stock != nil {
			r.Stock = *variant.Stock
		}
		if len(variant.Images) > 0 {
			r.Image = variant.Images[0]
		}
	}

	if size != nil {
		if size.Price != nil {
			r.Price = *size.Price
		}
		if size.Stock != nil {
			r.Stock = *size.Stock
		}
		if len(size.Images) > 0 {
			r.Image = size.Images[0]
		}
	}

	if r.Stock < 0 {
		r.Stock = 0
	}

	return r
}
