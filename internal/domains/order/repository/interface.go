package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
)

type RepositoryInterface interface {
	// NextOrderNumber reserves the next sequence value for the given
	// day and returns it. Sequences restart at 1 each day.
	NextOrderNumber(ctx context.Context, day time.Time) (int, error)

	// CreateOrder inserts the order and its items in one transaction.
	CreateOrder(ctx context.Context, order *model.Order) error

	// GetByID returns the order with its items, or (nil, nil) when
	// absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser returns the user's orders, newest first, without
	// items.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}
