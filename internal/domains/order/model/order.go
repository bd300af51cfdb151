package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusOrdered        OrderStatus = "ordered"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

func (os OrderStatus) IsValid() bool {
	switch os {
	case OrderStatusOrdered, OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (os OrderStatus) String() string {
	return string(os)
}

// Customer is the contact/delivery snapshot stored with the order.
type Customer struct {
	FullName    string `json:"full_name" db:"full_name"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	FullAddress string `json:"full_address" db:"full_address"`
}

// Order is a placed order. Amounts are snapshots taken at placement
// time in the order's display currency; the base-currency subtotal is
// kept alongside for reporting.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderNumber string    `json:"order_number" db:"order_number"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`

	Customer Customer `json:"customer"`

	Currency     string          `json:"currency" db:"currency"`
	SubtotalBase decimal.Decimal `json:"subtotal_base" db:"subtotal_base"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee" db:"delivery_fee"`
	Total        decimal.Decimal `json:"total" db:"total"`

	Status OrderStatus `json:"status" db:"status"`

	Items []OrderItem `json:"items"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OrderItem is a line snapshot: name, selection and unit price at the
// moment the order was placed.
type OrderItem struct {
	ID      uuid.UUID `json:"id" db:"id"`
	OrderID uuid.UUID `json:"order_id" db:"order_id"`

	Slug        string     `json:"slug" db:"slug"`
	ProductName string     `json:"product_name" db:"product_name"`
	VariantID   *uuid.UUID `json:"variant_id,omitempty" db:"variant_id"`
	SizeID      *uuid.UUID `json:"size_id,omitempty" db:"size_id"`
	Color       string     `json:"color,omitempty" db:"color"`
	Size        string     `json:"size,omitempty" db:"size_name"`

	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Subtotal decimal.Decimal `json:"subtotal" db:"subtotal"`
}
