package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// AddToCartRequest adds or replaces a selection. Quantity comes from
// the ?qty= query parameter; 0 deletes the line.
type AddToCartRequest struct {
	Slug      string     `json:"slug"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`
}

func (r AddToCartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
			validation.Length(1, 255),
		),
	)
}

// Line builds the cart line for this selection.
func (r AddToCartRequest) Line(quantity int) CartLine {
	return CartLine{
		Slug:      r.Slug,
		VariantID: r.VariantID,
		SizeID:    r.SizeID,
		Color:     r.Color,
		Size:      r.Size,
		Quantity:  quantity,
	}
}

// UpdateQuantityRequest sets the quantity of an existing line.
type UpdateQuantityRequest struct {
	Slug      string     `json:"slug"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`
	Quantity  *int       `json:"quantity"`
}

func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
		),
		validation.Field(&r.Quantity,
			validation.NotNil.Error("quantity is required"),
		),
	)
}

func (r UpdateQuantityRequest) Key() LineKey {
	return CartLine{
		Slug:      r.Slug,
		VariantID: r.VariantID,
		SizeID:    r.SizeID,
		Color:     r.Color,
		Size:      r.Size,
	}.Key()
}

// RemoveItemRequest scopes a removal to a variant/size of the slug.
type RemoveItemRequest struct {
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`
}

// GuestCartPayload is the guest cart a client posts for pricing,
// validation or merging. The boundary normalizes it into typed lines
// before it reaches any core function.
type GuestCartPayload struct {
	Items []GuestLine `json:"items"`
}

type GuestLine struct {
	Slug      string     `json:"slug"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`
	Quantity  int        `json:"quantity"`
}

func (p GuestCartPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Items, validation.Each(validation.By(func(value interface{}) error {
			line, _ := value.(GuestLine)
			return validation.ValidateStruct(&line,
				validation.Field(&line.Slug, validation.Required.Error("slug is required")),
				validation.Field(&line.Quantity, validation.Min(0)),
			)
		}))),
	)
}

// Lines converts the payload into cart lines, dropping empty entries.
func (p GuestCartPayload) Lines() Lines {
	lines := make(Lines, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Slug == "" || item.Quantity <= 0 {
			continue
		}
		lines = append(lines, CartLine{
			Slug:      item.Slug,
			VariantID: item.VariantID,
			SizeID:    item.SizeID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return lines
}
