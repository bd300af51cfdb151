package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateOrderRequest places an order from the authenticated user's
// cart. Amounts are never part of the request; the server reprices the
// cart at placement time.
type CreateOrderRequest struct {
	Customer Customer `json:"customer"`
	Currency string   `json:"currency,omitempty"`
}

func (r CreateOrderRequest) Validate() error {
	if err := validation.ValidateStruct(&r.Customer,
		validation.Field(&r.Customer.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Customer.Email,
			validation.Required.Error("email is required"),
			is.Email,
		),
		validation.Field(&r.Customer.Phone,
			validation.Required.Error("phone is required"),
			validation.Length(5, 32),
		),
		validation.Field(&r.Customer.FullAddress,
			validation.Required.Error("address is required"),
			validation.Length(1, 1024),
		),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Currency, validation.Length(3, 3)),
	)
}
