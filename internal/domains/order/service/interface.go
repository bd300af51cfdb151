package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"storefront-backend/internal/domains/order/model"
)

// TaskEnqueuer is the slice of asynq the order flow needs. Implemented
// by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ServiceInterface interface {
	// CreateOrder places an order from the user's persisted cart. The
	// cart is repriced at placement time; client-sent amounts are never
	// trusted. Fails when the cart is empty or contains lines that are
	// excluded, out of stock, over stock, or not eligible for the
	// given country.
	CreateOrder(ctx context.Context, userID uuid.UUID, req model.CreateOrderRequest, country string) (*model.Order, error)

	// GetOrder returns the user's order by id.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}
