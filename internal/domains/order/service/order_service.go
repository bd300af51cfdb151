package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	cartService "storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"
)

type OrderService struct {
	repository repository.RepositoryInterface
	cart       cartService.ServiceInterface
	enqueuer   TaskEnqueuer

	now func() time.Time
}

func NewOrderService(r repository.RepositoryInterface, cart cartService.ServiceInterface, enqueuer TaskEnqueuer) ServiceInterface {
	return &OrderService{
		repository: r,
		cart:       cart,
		enqueuer:   enqueuer,
		now:        time.Now,
	}
}

// CreateOrder implements ServiceInterface.CreateOrder
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req model.CreateOrderRequest, country string) (*model.Order, error) {
	priced, err := s.cart.PriceUserCart(ctx, userID, req.Currency, country)
	if err != nil {
		return nil, err
	}

	if len(priced.Lines) == 0 {
		return nil, model.ErrEmptyOrder
	}
	if len(priced.Excluded) > 0 || len(priced.NonEligible) > 0 {
		return nil, model.ErrCartNotOrderable
	}
	for _, line := range priced.Lines {
		if !line.InStock || line.OverStock {
			return nil, model.ErrCartNotOrderable
		}
	}

	number, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:           uuid.New(),
		OrderNumber:  number,
		UserID:       userID,
		Customer:     req.Customer,
		Currency:     priced.Currency,
		SubtotalBase: priced.SubtotalBase,
		Subtotal:     priced.Subtotal,
		DeliveryFee:  priced.DeliveryFee,
		Total:        priced.Total,
		Status:       model.OrderStatusOrdered,
	}

	for _, line := range priced.Lines {
		order.Items = append(order.Items, model.OrderItem{
			ID:          uuid.New(),
			Slug:        line.Slug,
			ProductName: line.Product.Name,
			VariantID:   line.VariantID,
			SizeID:      line.SizeID,
			Color:       line.Color,
			Size:        line.Size,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Subtotal:    line.Subtotal,
		})
	}

	if err := s.repository.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.enqueueConfirmation(order)

	// The cart served its purpose; a failed clear never undoes the
	// placed order.
	if err := s.cart.ClearCart(ctx, userID); err != nil {
		logger.Warn("Failed to clear cart after order placement", map[string]interface{}{
			"orderNumber": order.OrderNumber,
			"error":       err.Error(),
		})
	}

	return order, nil
}

func (s *OrderService) nextOrderNumber(ctx context.Context) (string, error) {
	day := s.now().UTC()
	seq, err := s.repository.NextOrderNumber(ctx, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), seq), nil
}

func (s *OrderService) enqueueConfirmation(order *model.Order) {
	payload, err := json.Marshal(shared.OrderConfirmationPayload{OrderID: order.ID})
	if err != nil {
		logger.Error("Failed to marshal order confirmation payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeSendOrderConfirmation, payload)
	if _, err := s.enqueuer.Enqueue(task, asynq.MaxRetry(5), asynq.Queue("default")); err != nil {
		logger.Warn("Failed to enqueue order confirmation email", map[string]interface{}{
			"orderNumber": order.OrderNumber,
			"error":       err.Error(),
		})
	}
}

// GetOrder implements ServiceInterface.GetOrder
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Hide other users' orders behind not-found.
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders implements ServiceInterface.ListOrders
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.repository.ListByUser(ctx, userID)
}
