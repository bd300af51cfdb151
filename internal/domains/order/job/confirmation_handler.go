package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/domains/order/repository"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared"
)

// SendOrderConfirmationHandler mails the confirmation for a placed
// order. The payload is id-only; the order is reloaded so retries see
// current data.
type SendOrderConfirmationHandler struct {
	orderRepo    repository.RepositoryInterface
	emailService email.EmailService
}

func NewSendOrderConfirmationHandler(orderRepo repository.RepositoryInterface, emailService email.EmailService) *SendOrderConfirmationHandler {
	return &SendOrderConfirmationHandler{
		orderRepo:    orderRepo,
		emailService: emailService,
	}
}

func (h *SendOrderConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal OrderConfirmation payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	order, err := h.orderRepo.GetByID(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		// Gone since enqueue; retrying will not bring it back.
		log.Warn().Str("orderId", payload.OrderID.String()).Msg("Order vanished before confirmation email")
		return nil
	}

	if err := h.emailService.SendOrderConfirmation(ctx, order); err != nil {
		log.Error().Err(err).Str("orderNumber", order.OrderNumber).Msg("Failed to send order confirmation")
		return fmt.Errorf("send order confirmation: %w", err)
	}

	log.Info().
		Str("orderNumber", order.OrderNumber).
		Str("email", order.Customer.Email).
		Msg("Order confirmation sent")

	return nil
}
