package main

import (
	"github.com/hibiken/asynq"

	orderJob "storefront-backend/internal/domains/order/job"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	sendOrderConfirmation *orderJob.SendOrderConfirmationHandler
}

// initializeHandlers creates all job handlers with their dependencies.
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom, cfg.AdminEmail)

	return &HandlerRegistry{
		sendOrderConfirmation: orderJob.NewSendOrderConfirmationHandler(c.OrderRepo, emailSvc),
	}
}

// RegisterHandlers wires each task type to its handler.
func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeSendOrderConfirmation, r.sendOrderConfirmation)
}
