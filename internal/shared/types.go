package shared

import "github.com/google/uuid"

// Task type names routed through asynq.
const (
	TypeSendOrderConfirmation = "email:order_confirmation"
)

// OrderConfirmationPayload identifies the order the worker should send
// a confirmation email for. The worker reloads the order; the payload
// stays id-only so a retried task always sees current data.
type OrderConfirmationPayload struct {
	OrderID uuid.UUID `json:"orderId"`
}
